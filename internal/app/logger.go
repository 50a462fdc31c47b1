package app

import (
	"io"

	"courier-dispatch/internal/logx"
)

// NewLogger returns the JSON logger used by both binaries.
func NewLogger(w io.Writer, level string) logx.Logger {
	return logx.NewJSON(w, level).With(logx.String("service", "courier-dispatch"))
}
