package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/linkudp/linkudp-cli/core"
)

// formatError renders an error the way the pages present it: validation
// failures become one line per field, everything else prints as-is.
func formatError(err error) string {
	switch err := err.(type) {
	case validator.ValidationErrors:
		lines := make([]string, 0, len(err))
		for _, vErr := range err {
			lines = append(lines, fmt.Sprintf("%s: %s", vErr.Field(), vErr.Translate(core.Translator)))
		}
		sort.Strings(lines)
		return strings.Join(lines, "\n")
	case *core.ValidationError:
		if len(err.Fields) > 0 {
			lines := make([]string, 0, len(err.Fields))
			for _, fErr := range err.Fields {
				lines = append(lines, fmt.Sprintf("%s: %s", fErr.Field, fErr.Error))
			}
			sort.Strings(lines)
			return strings.Join(lines, "\n")
		}
		return err.Error()
	default:
		return err.Error()
	}
}
