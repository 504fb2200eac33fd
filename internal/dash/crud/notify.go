package crud

import "log/slog"

// Notifier receives the user-facing feedback produced by controller
// operations. Interactive consumers render these as toasts; the CLI prints
// them. No controller failure escapes as an uncaught error, every one ends
// up here instead.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// LogNotifier routes notifications to a structured logger. Useful default
// for headless consumers and tests.
type LogNotifier struct {
	Logger *slog.Logger
}

// Success implements Notifier.
func (n LogNotifier) Success(msg string) {
	n.logger().Info(msg)
}

// Error implements Notifier.
func (n LogNotifier) Error(msg string) {
	n.logger().Error(msg)
}

func (n LogNotifier) logger() *slog.Logger {
	if n.Logger != nil {
		return n.Logger
	}
	return slog.Default()
}
