package middleware

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
)

// MetricsCollector counts requests, errors and requests in flight.
type MetricsCollector struct {
	requests atomic.Int64
	errors   atomic.Int64
	inFlight atomic.Int64
}

func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{}
}

// Middleware counts requests; 4xx and 5xx responses count as errors.
func (mc *MetricsCollector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mc.requests.Add(1)
		mc.inFlight.Add(1)
		defer mc.inFlight.Add(-1)

		rw := newStatusRecorder(w)
		next.ServeHTTP(rw, r)

		if rw.status >= http.StatusBadRequest {
			mc.errors.Add(1)
		}
	})
}

func (mc *MetricsCollector) Requests() int64 { return mc.requests.Load() }
func (mc *MetricsCollector) Errors() int64   { return mc.errors.Load() }
func (mc *MetricsCollector) InFlight() int64 { return mc.inFlight.Load() }

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
