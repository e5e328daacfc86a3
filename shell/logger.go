package shell

// Logger is the logging seam used by command handlers, mainly to report
// integrity faults as defects. It is slog-shaped, so *slog.Logger satisfies
// it directly.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}
