// VibeMatch - AI Date Spot Recommendations
// Copyright 2026 JennePenne (JennePenne123)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/JennePenne123/vibematch

package middleware

import (
	"net/http"

	"github.com/JennePenne123/vibematch/internal/logging"
)

// RequestIDHeader is the header carrying the request ID, inbound and outbound.
const RequestIDHeader = "X-Request-ID"

// RequestID returns middleware that ensures every request has a request ID.
// An inbound X-Request-ID header is honored so callers can correlate retries;
// otherwise a new ID is generated. The ID is placed in the logging context
// and echoed on the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = logging.GenerateRequestID()
		}

		ctx := logging.ContextWithRequestID(r.Context(), id)
		w.Header().Set(RequestIDHeader, id)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
