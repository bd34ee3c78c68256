package hspicewave

import (
	"fmt"

	charmlog "github.com/charmbracelet/log"
)

// logger is the package-level diagnostic sink every decode/convert entry
// point reports through. Callers that never call SetLogLevel get
// charmbracelet/log's default level (info).
var logger = charmlog.Default()

// traceKey tags trace-level records, since charmbracelet/log has no
// native trace level below debug.
const traceKey = "trace"

// SetLogLevel configures the package's diagnostic verbosity. Accepted
// values are "trace", "debug", "info", "warn", and "error"; trace maps to
// charmbracelet/log's debug level with an extra marker field, since the
// library itself stops at debug.
func SetLogLevel(level string) error {
	switch level {
	case "trace":
		logger.SetLevel(charmlog.DebugLevel)
		logger = logger.With(traceKey, true)
	case "debug":
		logger.SetLevel(charmlog.DebugLevel)
	case "info":
		logger.SetLevel(charmlog.InfoLevel)
	case "warn":
		logger.SetLevel(charmlog.WarnLevel)
	case "error":
		logger.SetLevel(charmlog.ErrorLevel)
	default:
		return fmt.Errorf("hspicewave: unknown log level %q", level)
	}
	return nil
}
