package logkafka

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go_trial/foodhub/middleware"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const TraceHeader = "X-Trace-ID"

type LogEntry struct {
	Level     string            `json:"level"`
	Module    string            `json:"module"`
	Message   string            `json:"message"`
	TraceID   string            `json:"trace_id"`
	Env       string            `json:"env"`
	Timestamp string            `json:"timestamp"`
	Extra     map[string]string `json:"extra"`
}

// RequestLogger emits one entry per request, to Kafka when a writer is set and to logrus otherwise.
type RequestLogger struct {
	writer EntryWriter
	env    string
	now    func() time.Time
}

func NewRequestLogger(writer EntryWriter, env string) *RequestLogger {
	return &RequestLogger{writer: writer, env: env, now: time.Now}
}

func (l *RequestLogger) Close() error {
	if l.writer != nil {
		return l.writer.Close()
	}
	return nil
}

func (l *RequestLogger) Log(ctx context.Context, level, module, message, traceID string, extra map[string]string) {
	entry := LogEntry{
		Level:     level,
		Module:    module,
		Message:   message,
		TraceID:   traceID,
		Env:       l.env,
		Timestamp: l.now().UTC().Format(time.RFC3339),
		Extra:     extra,
	}
	if l.writer == nil {
		fields := logrus.Fields{"module": module, "trace_id": traceID}
		for k, v := range extra {
			fields[k] = v
		}
		logrus.WithFields(fields).Info(message)
		return
	}
	b, err := json.Marshal(entry)
	if err != nil {
		logrus.WithError(err).Warn("encode request log")
		return
	}
	if err := writeEntry(ctx, l.writer, b); err != nil {
		logrus.WithError(err).Warn("ship request log")
	}
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{w, http.StatusOK}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// Middleware logs every request once the handler chain has finished.
func (l *RequestLogger) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := l.now()

		traceID := r.Header.Get(TraceHeader)
		if traceID == "" {
			traceID = uuid.New().String()
		}
		w.Header().Set(TraceHeader, traceID)
		// only RequireAuth may set the user id
		r.Header.Del(middleware.UserIDHeader)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)
		duration := l.now().Sub(start)

		userID := r.Header.Get(middleware.UserIDHeader)
		if userID == "" {
			userID = "anonymous"
		}
		extra := map[string]string{
			"user_id":     userID,
			"ip":          clientIP(r),
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      strconv.Itoa(rw.statusCode),
			"duration_ms": strconv.FormatInt(duration.Milliseconds(), 10),
			"user_agent":  r.UserAgent(),
		}

		l.Log(context.Background(), "info", "http", "request completed", traceID, extra)
	})
}
