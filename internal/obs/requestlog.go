package obs

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	applog "stadslab/internal/log"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

// RequestLog tags the request context with a request id, so every log line
// written while serving it carries the id, and logs the finished request at
// debug level. An incoming X-Request-ID is reused.
func RequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		r = r.WithContext(applog.With(r.Context(), "request_id", id))
		recorder := NewStatusRecorder(w)
		start := time.Now()
		next.ServeHTTP(recorder, r)

		applog.Debug(r.Context(), "request served",
			"method", r.Method,
			"route", r.Pattern,
			"status", recorder.Status(),
			"duration_ms", DurationMillis(time.Since(start)),
		)
	})
}
