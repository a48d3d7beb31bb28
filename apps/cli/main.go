// linkudp is the terminal client of the LinkUDP tutoring marketplace. Each
// command corresponds to one page of the web client and talks to the same
// REST backend.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/linkudp/linkudp-cli/core"
	logsvc "github.com/linkudp/linkudp-cli/services/logger"
)

func main() {
	conf := core.LoadConfig()

	std := log.New(os.Stderr, "", log.LstdFlags)
	var logger core.Logger
	if conf.RollbarToken != "" {
		logger = logsvc.NewRollbarLogger(std, conf)
	} else {
		logger = logsvc.NewConsoleLogger(std, conf.Debug)
	}

	a, err := newApp(conf, logger, os.Stdout, os.Stdin)
	if err != nil {
		logger.Fatal("startup failed", "error", err)
	}

	if err := newRootCmd(a).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", formatError(err))
		os.Exit(1)
	}
}
