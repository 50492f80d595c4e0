package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/dgraph-io/badger/v4"
)

// Collection provides typed CRUD over a key prefix. Documents are stored as
// JSON under prefix+id; each secondary index stores prefix+"idx:"+name+":"+
// value -> id, and index values are unique across the collection.
type Collection[T any] struct {
	store   *Store
	prefix  string
	indexes []secondaryIndex[T]
}

type secondaryIndex[T any] struct {
	name      string
	keys      func(*T) []string
	normalize func(string) string // applied to lookup values when set
}

// NewCollection creates a collection for type T under the given key prefix.
func NewCollection[T any](s *Store, prefix string) *Collection[T] {
	return &Collection[T]{store: s, prefix: prefix}
}

// WithIndex adds a unique secondary index. keys returns the index values a
// document claims; a second document claiming the same value is rejected.
func (c *Collection[T]) WithIndex(name string, keys func(*T) []string) *Collection[T] {
	c.indexes = append(c.indexes, secondaryIndex[T]{name: name, keys: keys})
	return c
}

// WithIndexTransform is WithIndex plus a normalization applied to lookup
// values, for things like case-insensitive email matching. keys must emit
// already-normalized values.
func (c *Collection[T]) WithIndexTransform(name string, keys func(*T) []string, normalize func(string) string) *Collection[T] {
	c.indexes = append(c.indexes, secondaryIndex[T]{name: name, keys: keys, normalize: normalize})
	return c
}

func (c *Collection[T]) primaryKey(id string) []byte {
	return []byte(c.prefix + id)
}

func (c *Collection[T]) indexKey(name, value string) []byte {
	return []byte(c.prefix + "idx:" + name + ":" + value)
}

// Create stores a new document. Returns ErrAlreadyExists when the ID or any
// index value is already claimed.
func (c *Collection[T]) Create(ctx context.Context, id string, doc *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	return c.store.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(c.primaryKey(id)); err == nil {
			return ErrAlreadyExists
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("check primary key: %w", err)
		}

		if err := c.claimIndexValues(txn, doc, nil); err != nil {
			return err
		}
		return c.writeDocument(txn, id, data, doc)
	})
}

// Get fetches a document by ID. Returns ErrNotFound when absent.
func (c *Collection[T]) Get(ctx context.Context, id string) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var doc *T
	err := c.store.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(c.primaryKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get primary key: %w", err)
		}
		doc, err = decodeItem[T](item)
		return err
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// GetByIndex resolves value through the named index, then fetches the
// document it points at.
func (c *Collection[T]) GetByIndex(ctx context.Context, name, value string) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, idx := range c.indexes {
		if idx.name == name && idx.normalize != nil {
			value = idx.normalize(value)
			break
		}
	}

	var id string
	err := c.store.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(c.indexKey(name, value))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			id = string(val)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return c.Get(ctx, id)
}

// Update replaces an existing document, moving its index entries to the new
// values. Returns ErrNotFound when absent, ErrAlreadyExists when a new index
// value is claimed by another document.
func (c *Collection[T]) Update(ctx context.Context, id string, doc *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	return c.store.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(c.primaryKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get primary key: %w", err)
		}

		previous, err := decodeItem[T](item)
		if err != nil {
			return err
		}
		if err := c.dropIndexValues(txn, previous); err != nil {
			return err
		}

		// Values the old version held stay claimable by the new one.
		held := make(map[string]bool)
		for _, idx := range c.indexes {
			for _, value := range idx.keys(previous) {
				held[idx.name+":"+value] = true
			}
		}
		if err := c.claimIndexValues(txn, doc, held); err != nil {
			return err
		}

		return c.writeDocument(txn, id, data, doc)
	})
}

// Delete removes a document and its index entries. Deleting an absent
// document is a no-op.
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return c.store.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(c.primaryKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("get primary key: %w", err)
		}

		doc, err := decodeItem[T](item)
		if err != nil {
			return err
		}
		if err := c.dropIndexValues(txn, doc); err != nil {
			return err
		}
		if err := txn.Delete(c.primaryKey(id)); err != nil {
			return fmt.Errorf("delete primary key: %w", err)
		}
		return nil
	})
}

// List iterates all documents in the collection, skipping index entries.
func (c *Collection[T]) List(ctx context.Context) iter.Seq2[*T, error] {
	return func(yield func(*T, error) bool) {
		c.store.db.View(func(txn *badger.Txn) error {
			opts := badger.DefaultIteratorOptions
			opts.Prefix = []byte(c.prefix)

			it := txn.NewIterator(opts)
			defer it.Close()

			for it.Seek([]byte(c.prefix)); it.ValidForPrefix([]byte(c.prefix)); it.Next() {
				if err := ctx.Err(); err != nil {
					yield(nil, err)
					return err
				}

				key := string(it.Item().Key())
				if strings.HasPrefix(key[len(c.prefix):], "idx:") {
					continue
				}

				doc, err := decodeItem[T](it.Item())
				if err != nil {
					yield(nil, err)
					return err
				}
				if !yield(doc, nil) {
					return nil
				}
			}
			return nil
		})
	}
}

// claimIndexValues verifies and writes the index entries for doc. Values in
// held are treated as already owned by this document.
func (c *Collection[T]) claimIndexValues(txn *badger.Txn, doc *T, held map[string]bool) error {
	for _, idx := range c.indexes {
		for _, value := range idx.keys(doc) {
			if held[idx.name+":"+value] {
				continue
			}
			if _, err := txn.Get(c.indexKey(idx.name, value)); err == nil {
				return fmt.Errorf("index %s value %s taken: %w", idx.name, value, ErrAlreadyExists)
			} else if !errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("check index %s: %w", idx.name, err)
			}
		}
	}
	return nil
}

// dropIndexValues removes the index entries the document currently claims.
func (c *Collection[T]) dropIndexValues(txn *badger.Txn, doc *T) error {
	for _, idx := range c.indexes {
		for _, value := range idx.keys(doc) {
			if err := txn.Delete(c.indexKey(idx.name, value)); err != nil {
				return fmt.Errorf("drop index %s: %w", idx.name, err)
			}
		}
	}
	return nil
}

// writeDocument sets the primary key and all index entries for doc.
func (c *Collection[T]) writeDocument(txn *badger.Txn, id string, data []byte, doc *T) error {
	if err := txn.Set(c.primaryKey(id), data); err != nil {
		return fmt.Errorf("set primary key: %w", err)
	}
	for _, idx := range c.indexes {
		for _, value := range idx.keys(doc) {
			if err := txn.Set(c.indexKey(idx.name, value), []byte(id)); err != nil {
				return fmt.Errorf("set index %s: %w", idx.name, err)
			}
		}
	}
	return nil
}

func decodeItem[T any](item *badger.Item) (*T, error) {
	var doc T
	err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &doc)
	})
	if err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}
	return &doc, nil
}
