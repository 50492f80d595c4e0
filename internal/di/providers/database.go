package providers

import (
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/bookspace/bookspace-server/internal/config"
	"github.com/bookspace/bookspace-server/internal/logger"
	"github.com/bookspace/bookspace-server/internal/store"
)

// StoreHandle owns the badger store so the container can close it.
type StoreHandle struct {
	*store.Store
}

func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore opens the document store under <data>/db.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	dbPath := filepath.Join(cfg.Data.BasePath, "db")
	db, err := store.New(dbPath, log.Logger)
	if err != nil {
		return nil, err
	}
	log.Info("Database initialized", "path", dbPath)

	return &StoreHandle{Store: db}, nil
}
