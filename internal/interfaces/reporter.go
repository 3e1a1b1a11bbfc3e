package interfaces

// Reporter receives leveled diagnostics. The plain methods go to the log
// channel only; the ToUser variants and Success are always shown.
type Reporter interface {
	Info(format string, args ...any)
	Warning(format string, args ...any)
	Error(format string, args ...any)

	InfoToUser(format string, args ...any)
	WarningToUser(format string, args ...any)
	ErrorToUser(format string, args ...any)
	Success(format string, args ...any)
}
