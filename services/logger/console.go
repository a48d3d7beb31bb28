package logsvc

import (
	"fmt"
	"log"
	"strings"

	"github.com/linkudp/linkudp-cli/core"
)

// ConsoleLogger writes to a standard logger. Debug lines are dropped unless
// enabled.
type ConsoleLogger struct {
	std   *log.Logger
	debug bool
}

var _ core.Logger = (*ConsoleLogger)(nil)

func NewConsoleLogger(std *log.Logger, debug bool) *ConsoleLogger {
	return &ConsoleLogger{std: std, debug: debug}
}

// format renders alternating key/value args after the message.
func format(msg string, args []interface{}) string {
	if len(args) == 0 {
		return msg
	}
	var b strings.Builder
	b.WriteString(msg)
	for i := 0; i < len(args); i += 2 {
		if i+1 < len(args) {
			fmt.Fprintf(&b, " %v=%v", args[i], args[i+1])
		} else {
			fmt.Fprintf(&b, " %v", args[i])
		}
	}
	return b.String()
}

func (l ConsoleLogger) Debug(msg string, args ...interface{}) {
	if l.debug {
		l.std.Println("DEBUG " + format(msg, args))
	}
}

func (l ConsoleLogger) Info(msg string, args ...interface{}) {
	l.std.Println("INFO  " + format(msg, args))
}

func (l ConsoleLogger) Warn(msg string, args ...interface{}) {
	l.std.Println("WARN  " + format(msg, args))
}

func (l ConsoleLogger) Error(msg string, args ...interface{}) {
	l.std.Println("ERROR " + format(msg, args))
}

func (l ConsoleLogger) Fatal(msg string, args ...interface{}) {
	l.std.Fatal("FATAL " + format(msg, args))
}
