package server

import (
	"log/slog"
	"net/http"

	"github.com/felixge/httpsnoop"
)

// requestLogger logs every shard request. The query string carries keys and
// values, so only its length is logged. Client errors are logged at warn
// level and server errors at error level.
func requestLogger(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			m := httpsnoop.CaptureMetrics(next, w, r)

			level := slog.LevelInfo
			switch {
			case m.Code >= 500:
				level = slog.LevelError
			case m.Code >= 400:
				level = slog.LevelWarn
			}

			logger.Log(r.Context(), level, r.Method+" "+r.URL.Path,
				"response_code", m.Code,
				"duration", m.Duration,
				"bytes_sent", m.Written,
				"query_len", len(r.URL.RawQuery),
				"remote_addr", r.RemoteAddr,
			)
		}
		return http.HandlerFunc(fn)
	}
}
