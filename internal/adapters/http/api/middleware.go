package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/KrishalDhungana/NBABrain/pkg/metrics"
)

// MetricsMiddleware records request count, latency and, for 4xx/5xx
// responses, an error tagged with the code the handler reported.
func MetricsMiddleware(next http.HandlerFunc, endpoint string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		status := strconv.Itoa(rec.status)
		metrics.RecordHTTPRequest(endpoint, r.Method, status)
		metrics.RecordHTTPRequestDuration(endpoint, r.Method, status, float64(time.Since(start).Milliseconds()))
		if rec.status >= http.StatusBadRequest {
			metrics.RecordErrorByComponent("http", rec.errorCode())
		}
	}
}

// statusRecorder captures the status and the error code written through writeError.
type statusRecorder struct {
	http.ResponseWriter
	status int
	code   string
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

// errorCode prefers the code set by writeError. Responses written by the
// mux itself, such as http.NotFound, fall back to one derived from the status.
func (rec *statusRecorder) errorCode() string {
	if rec.code != "" {
		return rec.code
	}
	switch {
	case rec.status == http.StatusNotFound:
		return "not_found"
	case rec.status >= http.StatusInternalServerError:
		return "internal_error"
	default:
		return "bad_request"
	}
}

// tagError attaches code to w when w is wrapped by MetricsMiddleware.
func tagError(w http.ResponseWriter, code string) {
	if rec, ok := w.(*statusRecorder); ok {
		rec.code = code
	}
}
