package store

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/reel/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketPages = []byte("pages")
)

// keySep separates the query from the page number in a key.
// Queries come from a single-line text input and never contain it.
const keySep = "\x00"

// PageStore implements domain.PageStore using BoltDB.
type PageStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string][]byte
}

// NewPageStore opens (or creates) the page cache for a source.
// An empty baseCacheDir selects memory-only mode.
func NewPageStore(baseCacheDir, sourceID string) (*PageStore, error) {
	if baseCacheDir == "" {
		// Memory-only mode (no persistence)
		return &PageStore{cache: make(map[string][]byte)}, nil
	}

	dir := baseCacheDir
	if sourceID != "" {
		dir = filepath.Join(baseCacheDir, hashSourceID(sourceID))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "reel.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketPages)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &PageStore{db: db, cache: make(map[string][]byte)}, nil
}

func hashSourceID(sourceID string) string {
	normalized := strings.TrimRight(strings.ToLower(sourceID), "/")
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:6])
}

func (s *PageStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func pageKey(query string, number int) string {
	return fmt.Sprintf("%s%s%06d", query, keySep, number)
}

func queryPrefix(query string) string {
	return query + keySep
}

// === Generic helpers ===

func (s *PageStore) get(key string, dest interface{}) bool {
	// Check memory cache first
	s.mu.RLock()
	if data, ok := s.cache[key]; ok {
		s.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketPages)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[key] = data
	s.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

func (s *PageStore) set(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.cache[key] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketPages).Put([]byte(key), data)
	})
}

func (s *PageStore) deletePrefix(prefix string) {
	s.mu.Lock()
	for k := range s.cache {
		if strings.HasPrefix(k, prefix) {
			delete(s.cache, k)
		}
	}
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketPages)
		if b == nil {
			return nil
		}
		c := b.Cursor()
		prefixBytes := []byte(prefix)
		// Collect first: deleting while iterating skips keys in bbolt
		var keys [][]byte
		for k, _ := c.Seek(prefixBytes); k != nil && bytes.HasPrefix(k, prefixBytes); k, _ = c.Next() {
			keys = append(keys, append([]byte(nil), k...))
		}
		for _, k := range keys {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

// === Pages ===

func (s *PageStore) GetPage(query string, number int) (domain.CachedPage, bool) {
	var entry domain.CachedPage
	ok := s.get(pageKey(query, number), &entry)
	return entry, ok
}

func (s *PageStore) SavePage(entry domain.CachedPage) error {
	if entry.Page.Number < 1 {
		return fmt.Errorf("save page %d: %w", entry.Page.Number, domain.ErrPageOutOfRange)
	}
	return s.set(pageKey(entry.Query, entry.Page.Number), entry)
}

// === Invalidation ===

// InvalidateQuery wipes every cached page for a query
func (s *PageStore) InvalidateQuery(query string) {
	s.deletePrefix(queryPrefix(query))
}

func (s *PageStore) InvalidateAll() {
	s.mu.Lock()
	s.cache = make(map[string][]byte)
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucketPages); err != nil && err != bolt.ErrBucketNotFound {
			return err
		}
		_, err := tx.CreateBucket(bucketPages)
		return err
	})
}

// fetchedAt decodes only the timestamp of a stored entry
func fetchedAt(data []byte) (time.Time, bool) {
	var stamp struct {
		FetchedAt time.Time `json:"fetched_at"`
	}
	if err := json.Unmarshal(data, &stamp); err != nil {
		return time.Time{}, false
	}
	return stamp.FetchedAt, true
}

func (s *PageStore) Prune(before time.Time) int {
	expired := func(data []byte) bool {
		ts, ok := fetchedAt(data)
		return !ok || ts.Before(before)
	}

	removed := make(map[string]struct{})

	s.mu.Lock()
	for k, data := range s.cache {
		if expired(data) {
			delete(s.cache, k)
			removed[k] = struct{}{}
		}
	}
	s.mu.Unlock()

	if s.db != nil {
		s.db.Update(func(tx *bolt.Tx) error {
			b := tx.Bucket(bucketPages)
			if b == nil {
				return nil
			}
			var keys [][]byte
			b.ForEach(func(k, v []byte) error {
				if expired(v) {
					keys = append(keys, append([]byte(nil), k...))
				}
				return nil
			})
			for _, k := range keys {
				if err := b.Delete(k); err != nil {
					return err
				}
				removed[string(k)] = struct{}{}
			}
			return nil
		})
	}

	return len(removed)
}
