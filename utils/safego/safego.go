package safego

import (
	"os"
	"runtime/debug"
	"strings"

	"github.com/dataline-io/tap-autopilot/utils/logger"
)

// Recovery converts a panic into logged stack lines; when exit is set the
// process terminates with a non-zero code.
func Recovery(exit bool) {
	if err := recover(); err != nil {
		logger.Error(err)
		// capture stack trace
		for _, str := range strings.Split(string(debug.Stack()), "\n") {
			logger.Error(strings.ReplaceAll(str, "\t", ""))
		}

		if exit {
			os.Exit(1)
		}
	}
}

// Run runs a new goroutine with a panic handler
func Run(f func()) {
	go func() {
		defer Recovery(false)
		f()
	}()
}
