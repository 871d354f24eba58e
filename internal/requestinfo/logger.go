// logger.go provides the access-log middleware: one structured line per
// request with method, path, status, duration, and the Collect metadata.
package requestinfo

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// statusRecorder captures the response code for the log line.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Logger returns middleware that emits one access-log entry per request.
func Logger(log *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			info := Collect(r)
			log.Infow("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"dur_ms", time.Since(start).Milliseconds(),
				"ip", info.IP,
				"browser", info.UA.Browser,
				"os", info.UA.OS,
				"device", info.UA.Device,
				"bot", info.UA.IsBot,
				"country", info.Geo.CountryISO,
			)
		})
	}
}
