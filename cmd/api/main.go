// Command api runs the Book Space HTTP server.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"

	"github.com/bookspace/bookspace-server/internal/di"
	"github.com/bookspace/bookspace-server/internal/di/providers"
	"github.com/bookspace/bookspace-server/internal/logger"
)

func main() {
	injector := di.NewContainer()
	if err := di.Bootstrap(injector); err != nil {
		fmt.Fprintf(os.Stderr, "bootstrap failed: %v\n", err)
		os.Exit(1)
	}

	log := do.MustInvoke[*logger.Logger](injector)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")

	// The container drains providers in reverse dependency order, which
	// stops the HTTP server before anything it depends on.
	if err := injector.Shutdown(); err != nil {
		log.Error("Shutdown error", "error", err)
	}

	// Badger and bleve hold on-disk state; close them explicitly so a
	// failed container shutdown can't leave them open.
	if store, err := do.Invoke[*providers.StoreHandle](injector); err == nil {
		if err := store.Shutdown(); err != nil {
			log.Error("Failed to close database", "error", err)
		} else {
			log.Info("Closed database")
		}
	}
	if search, err := do.Invoke[*providers.SearchIndexHandle](injector); err == nil {
		if err := search.Shutdown(); err != nil {
			log.Error("Failed to close search index", "error", err)
		} else {
			log.Info("Closed search index")
		}
	}

	log.Info("Happy reading. Goodbye.")
}
