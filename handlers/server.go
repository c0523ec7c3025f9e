package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"pantherasmp/core/log"
)

const shutdownTimeout = 5 * time.Second

// ListenAndServe runs server until ctx is cancelled, then shuts it down gracefully.
func ListenAndServe(ctx context.Context, server *http.Server) error {
	serveErr := make(chan error, 1)
	go func() {
		log.Info("✅ Listening on http://localhost%s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err, ok := <-serveErr:
		if ok {
			log.Error("❌ Server error: %v", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("🛑 Shutdown signal received, stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("❌ Server shutdown error: %v", err)
		return err
	}

	log.Info("✅ Server stopped gracefully")
	return nil
}
