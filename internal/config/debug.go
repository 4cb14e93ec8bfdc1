package config

// debugLogger is a function that logs debug messages when debug mode is enabled.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for config loading.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}
