package httpserver

import (
	"net/http"
	"time"
)

// New builds an HTTP server with defaults sized for aggregation queries,
// which can fan out several upstream calls before responding.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       time.Minute,
	}
}
