// VibeMatch - AI Date Spot Recommendations
// Copyright 2026 JennePenne (JennePenne123)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/JennePenne123/vibematch

package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/JennePenne123/vibematch/internal/metrics"
)

// Prometheus returns middleware that records request duration and in-flight
// counts for every API request.
func Prometheus(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.APIActiveRequests.Inc()
		defer metrics.APIActiveRequests.Dec()

		start := time.Now()

		wrapper := &statusResponseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapper, r)

		metrics.APIRequestDuration.WithLabelValues(
			r.Method,
			r.URL.Path,
			strconv.Itoa(wrapper.statusCode),
		).Observe(time.Since(start).Seconds())
	})
}

// statusResponseWriter wraps http.ResponseWriter to capture the status code.
type statusResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

// WriteHeader captures the status code.
func (rw *statusResponseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
