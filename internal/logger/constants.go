// Package logger provides logging functionality for the application.
package logger

// Default configuration values.
const (
	// DefaultLevel is the default logging level.
	DefaultLevel = InfoLevel
	// DefaultEncoding is the default log encoding format.
	DefaultEncoding = "console"
	// DefaultMaxSize is the default rotated file size in megabytes.
	DefaultMaxSize = 10
	// DefaultMaxBackups is the default number of rotated files kept.
	DefaultMaxBackups = 3
	// DefaultMaxAge is the default retention in days.
	DefaultMaxAge = 7
)

// DefaultOutputPaths is the default list of paths to write log output to.
// Picker output (the configuration JSON) goes to stdout, so logs default to stderr.
var DefaultOutputPaths = []string{"stderr"}
