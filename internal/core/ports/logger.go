package ports

import "io"

// Logger is the application-wide logging interface.
//
//go:generate mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	// Info logs an informational message.
	Info(msg string)

	// Warn logs a warning message.
	Warn(msg string)

	// Error logs an error, rendering its cause chain.
	Error(err error)

	// SetOutput redirects log output. Used by tests and the CLI.
	SetOutput(w io.Writer)

	// SetJSON toggles structured JSON output.
	SetJSON(enable bool)
}
