package tutoring

import (
	"github.com/go-playground/validator/v10"

	"github.com/linkudp/linkudp-cli/core"
)

var (
	timeOrderTag  = "timeorder"
	timeOrderText = "end time must be after start time"
)

func init() {
	core.Validate.RegisterStructValidation(newTutoringStructValidation, NewTutoring{})
	core.RegisterCustomTranslation(timeOrderTag, timeOrderText)
}

// newTutoringStructValidation checks that the session window is non-empty.
func newTutoringStructValidation(sl validator.StructLevel) {
	nt := sl.Current().Interface().(NewTutoring)
	if nt.StartTime != "" && nt.EndTime != "" && nt.EndTime <= nt.StartTime {
		sl.ReportError(nt.EndTime, "end_time", "EndTime", timeOrderTag, "")
	}
}
