package logging

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
)

// sensitiveFields are the payload keys whose values are masked before any
// log line is written. The list is the redaction policy; nothing else in the
// codebase is allowed to scrub log output.
var sensitiveFields = map[string]bool{
	"password":        true,
	"newpassword":     true,
	"currentpassword": true,
	"code":            true,
	"token":           true,
	"idtoken":         true,
	"refreshtoken":    true,
	"email":           true,
	"newemail":        true,
}

const mask = "[REDACTED]"

// Logger carries the request ID so service-level log lines can be correlated
// with the request middleware output.
type Logger struct {
	requestID string
}

type requestIDKey struct{}

// WithRequestID stores a request ID in a standard context.
func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, rid)
}

// RequestID extracts the request ID from a standard context.
func RequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey{}).(string); ok {
		return rid
	}
	return ""
}

// NewLogger creates a logger bound to the request in ctx.
func NewLogger(ctx context.Context) *Logger {
	requestID := RequestID(ctx)
	if requestID == "" {
		requestID = "unknown"
	}
	return &Logger{requestID: requestID}
}

// Fields is an ordered-for-output set of structured log fields. Values for
// keys on the sensitive list are masked when rendered.
type Fields map[string]interface{}

func (f Fields) render() string {
	if len(f) == 0 {
		return ""
	}
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		v := f[k]
		if sensitiveFields[strings.ToLower(k)] {
			v = mask
		}
		fmt.Fprintf(&b, " %s=%v", k, v)
	}
	return b.String()
}

func (l *Logger) LogInfo(operation, message string, fields ...Fields) {
	l.write("info", operation, message, fields)
}

func (l *Logger) LogWarn(operation, message string, fields ...Fields) {
	l.write("warn", operation, message, fields)
}

func (l *Logger) LogError(operation string, err error, fields ...Fields) {
	l.write("error", operation, fmt.Sprintf("error=%v", err), fields)
}

func (l *Logger) LogInfof(operation, format string, args ...interface{}) {
	l.write("info", operation, fmt.Sprintf(format, args...), nil)
}

func (l *Logger) LogWarnf(operation, format string, args ...interface{}) {
	l.write("warn", operation, fmt.Sprintf(format, args...), nil)
}

func (l *Logger) write(level, operation, message string, fields []Fields) {
	var extra string
	for _, f := range fields {
		extra += f.render()
	}
	log.Printf("[%s] request_id=%s operation=%s %s%s", level, l.requestID, operation, message, extra)
}

// Redacted returns a copy of fields with sensitive values masked. Useful when
// a payload map has to be embedded in a message rather than logged as fields.
func Redacted(fields map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		if sensitiveFields[strings.ToLower(k)] {
			out[k] = mask
			continue
		}
		out[k] = v
	}
	return out
}
