// Package web serves the keep-alive endpoint used by container hosts
// that idle out services without inbound HTTP traffic.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

// KeepAlive is a minimal liveness HTTP server
type KeepAlive struct {
	server *http.Server
}

// NewKeepAlive creates a keep-alive server listening on the given port
func NewKeepAlive(port int) *KeepAlive {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "Bot is online")
	})

	return &KeepAlive{
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Start serves in a goroutine; listen failures are logged, not fatal
func (k *KeepAlive) Start() {
	go func() {
		if err := k.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("Keep-alive server error: %v", err)
		}
	}()
}

// Shutdown stops the server gracefully
func (k *KeepAlive) Shutdown(ctx context.Context) error {
	return k.server.Shutdown(ctx)
}
