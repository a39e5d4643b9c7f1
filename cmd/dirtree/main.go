package main

import (
	"fmt"
	"os"

	"github.com/tyemirov/dirtree/internal/cli"
	"github.com/tyemirov/dirtree/internal/utils"
)

// main is the entry point for the dirtree command.
func main() {
	loggerInstance, loggerInitializationError := utils.NewApplicationLogger(false)
	if loggerInitializationError != nil {
		panic(fmt.Errorf(utils.LoggerInitializationFailedMessageFormat, loggerInitializationError))
	}
	if applicationExecutionError := cli.Execute(); applicationExecutionError != nil {
		loggerInstance.Error(fmt.Sprintf(utils.ErrorLogFormat, applicationExecutionError))
		_ = loggerInstance.Sync()
		os.Exit(utils.ExitCodeFailure)
	}
	_ = loggerInstance.Sync()
}
