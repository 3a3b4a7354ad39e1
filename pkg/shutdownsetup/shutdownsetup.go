package shutdownsetup

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pr-poehali-dev/food-delivery-django/pkg/logger"
)

// ShutdownTimeout bounds how long in-flight requests may run after a
// shutdown signal before the server is closed forcefully.
const ShutdownTimeout = 10 * time.Second

// SetupGracefulShutdown blocks until SIGINT or SIGTERM, then drains the
// HTTP server.
func SetupGracefulShutdown(server *http.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	log.Info("Shutdown signal received", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Graceful shutdown failed, forcing close", "error", err)
		if err := server.Close(); err != nil {
			log.Error("Failed to close server", "error", err)
		}
		return
	}

	log.Info("Server stopped gracefully")
}
