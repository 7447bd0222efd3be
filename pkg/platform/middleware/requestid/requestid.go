// Package requestid stamps every request with an ID and a receive time so
// handlers and services log and timestamp consistently.
package requestid

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"migflow/pkg/requestcontext"
)

const Header = "X-Request-Id"

// RequestID propagates an inbound request ID or mints one, echoes it on the
// response, and records the receive time in the context.
// This middleware should be applied early in the chain.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(Header)
		if id == "" {
			id = uuid.NewString()
		}

		ctx := requestcontext.WithRequestID(r.Context(), id)
		ctx = requestcontext.WithTime(ctx, time.Now().UTC())

		w.Header().Set(Header, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
