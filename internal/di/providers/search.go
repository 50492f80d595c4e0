package providers

import (
	"github.com/samber/do/v2"

	"github.com/bookspace/bookspace-server/internal/config"
	"github.com/bookspace/bookspace-server/internal/logger"
	"github.com/bookspace/bookspace-server/internal/search"
)

// SearchIndexHandle owns the bleve index so the container can close it.
type SearchIndexHandle struct {
	*search.SearchIndex
}

func (h *SearchIndexHandle) Shutdown() error {
	return h.Close()
}

// ProvideSearchIndex opens the catalog index and hooks it into the store,
// so every book write updates the index in the same call.
func ProvideSearchIndex(i do.Injector) (*SearchIndexHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)

	index, err := search.NewSearchIndex(search.Options{
		DataPath: cfg.Data.BasePath,
		Logger:   log.Logger,
	})
	if err != nil {
		return nil, err
	}
	storeHandle.SetSearchIndexer(index)

	docCount, _ := index.DocumentCount()
	log.Info("Search index initialized", "documents", docCount)

	return &SearchIndexHandle{SearchIndex: index}, nil
}
