package search

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/blevesearch/bleve/v2"

	"github.com/bookspace/bookspace-server/internal/domain"
)

// mappingVersion is bumped whenever the document mapping changes. A version
// mismatch on startup throws the old index away and rebuilds from scratch,
// since bleve can't migrate a mapping in place.
const mappingVersion = "1"

// SearchIndex is the bleve index over the book catalog. All methods are safe
// for concurrent use; Rebuild takes the write lock and blocks everything else
// while it swaps the underlying index.
type SearchIndex struct {
	mu     sync.RWMutex
	index  bleve.Index
	path   string
	logger *slog.Logger
}

// Options configures where the index lives and where it logs.
type Options struct {
	DataPath string
	Logger   *slog.Logger
}

// NewSearchIndex opens the catalog index under DataPath, creating it when
// missing and recreating it when the stored mapping version doesn't match or
// the index won't open.
func NewSearchIndex(opts Options) (*SearchIndex, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	indexPath := filepath.Join(opts.DataPath, "search.bleve")
	versionPath := filepath.Join(opts.DataPath, "search.version")

	index, err := openOrCreate(indexPath, versionPath, logger)
	if err != nil {
		return nil, err
	}

	return &SearchIndex{index: index, path: indexPath, logger: logger}, nil
}

func openOrCreate(indexPath, versionPath string, logger *slog.Logger) (bleve.Index, error) {
	if _, err := os.Stat(indexPath); err == nil {
		if stale := staleReason(versionPath); stale != "" {
			logger.Info("Discarding search index", "reason", stale, "mapping_version", mappingVersion)
		} else {
			index, err := bleve.Open(indexPath)
			if err == nil {
				logger.Info("Opened search index", "path", indexPath)
				return index, nil
			}
			logger.Warn("Search index failed to open, recreating", "path", indexPath, "error", err)
		}
		if err := os.RemoveAll(indexPath); err != nil {
			return nil, fmt.Errorf("remove stale index: %w", err)
		}
	}

	index, err := bleve.New(indexPath, buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create index: %w", err)
	}
	if err := os.WriteFile(versionPath, []byte(mappingVersion), 0644); err != nil {
		logger.Warn("Failed to write search version file", "error", err)
	}
	logger.Info("Created search index", "path", indexPath, "mapping_version", mappingVersion)
	return index, nil
}

// staleReason reports why an existing index can't be reused, or "" if it can.
func staleReason(versionPath string) string {
	stored, err := os.ReadFile(versionPath)
	if err != nil {
		return "missing version file"
	}
	if string(stored) != mappingVersion {
		return "mapping version changed from " + string(stored)
	}
	return ""
}

// IndexBook indexes a catalog book. This is the store's indexer hook.
func (s *SearchIndex) IndexBook(_ context.Context, book *domain.Book) error {
	return s.IndexDocument(BookToSearchDocument(book))
}

// DeleteBook removes a book from the index. The store's indexer hook.
func (s *SearchIndex) DeleteBook(_ context.Context, bookID string) error {
	return s.DeleteDocument(bookID)
}

// Close releases the index.
func (s *SearchIndex) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index.Close()
}

// IndexDocument indexes one document.
func (s *SearchIndex) IndexDocument(doc *SearchDocument) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	// Field names must match the lowercase mapping, hence the map form.
	return s.index.Index(doc.ID, doc.ToMap())
}

// IndexDocuments indexes documents in batches of 500, which is far faster
// than one-at-a-time for bulk loads and keeps memory flat on big catalogs.
func (s *SearchIndex) IndexDocuments(docs []*SearchDocument) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	const batchSize = 500
	for start := 0; start < len(docs); start += batchSize {
		end := min(start+batchSize, len(docs))

		batch := s.index.NewBatch()
		for _, doc := range docs[start:end] {
			if err := batch.Index(doc.ID, doc.ToMap()); err != nil {
				return fmt.Errorf("batch index %s: %w", doc.ID, err)
			}
		}
		if err := s.index.Batch(batch); err != nil {
			return fmt.Errorf("commit batch %d-%d: %w", start, end, err)
		}
	}
	return nil
}

// DeleteDocument removes one document.
func (s *SearchIndex) DeleteDocument(id string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.Delete(id)
}

// DeleteDocuments removes documents as a single batch.
func (s *SearchIndex) DeleteDocuments(ids []string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	batch := s.index.NewBatch()
	for _, id := range ids {
		batch.Delete(id)
	}
	return s.index.Batch(batch)
}

// DocumentCount returns how many documents are indexed.
func (s *SearchIndex) DocumentCount() (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.DocCount()
}

// Rebuild drops the index and creates an empty one with the current mapping.
// Callers reindex the catalog afterwards. Blocks all searches while running.
func (s *SearchIndex) Rebuild() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.index.Close(); err != nil {
		return fmt.Errorf("close index: %w", err)
	}
	if err := os.RemoveAll(s.path); err != nil {
		return fmt.Errorf("remove index: %w", err)
	}

	index, err := bleve.New(s.path, buildIndexMapping())
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	s.index = index

	s.logger.Info("Rebuilt search index", "path", s.path)
	return nil
}
