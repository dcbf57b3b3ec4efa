// Package ctxhelper provides helper functions for working with the context
package ctxhelper

import (
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

var (
	// KeyRequestID is the context key for storing the ID assigned to the current HTTP request
	KeyRequestID = ctxKey("requestId")
	// KeyLogger is the context key for storing the logger in the context
	KeyLogger = ctxKey("logger")
)

// internal context key
type ctxKey string

// RequestID returns the ID of the current request or an empty string if there is none
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(KeyRequestID).(string); ok {
		return id
	}
	return ""
}

// Logger returns the logger from the current context. If no logger is available, it panics
func Logger(ctx context.Context) *logrus.Entry {
	logger, ok := ctx.Value(KeyLogger).(*logrus.Entry)
	if ok {
		return logger
	}
	panic("No logger in context")
}

// LoggerOr returns the logger from the current context, falling back to the given one
func LoggerOr(ctx context.Context, fallback *logrus.Entry) *logrus.Entry {
	if logger, ok := ctx.Value(KeyLogger).(*logrus.Entry); ok {
		return logger
	}
	return fallback
}
