package core

// Logger is any service that can log leveled application events.
// Implementations may inspect args for well-known types (eg. an auth identity)
// to enrich the report.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
