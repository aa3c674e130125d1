// Package logger provides structured logging functionality for the
// application: slog setup from configuration and propagation of
// request-scoped loggers through context.Context.
package logger
