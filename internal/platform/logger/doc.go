// Package logger provides structured logging functionality for the application.
//
// It utilizes Go's standard library log/slog package to implement structured JSON logging
// with configurable log levels. Logs go to stderr or to a file so that they
// never mix with the interactive output on stdout.
package logger
