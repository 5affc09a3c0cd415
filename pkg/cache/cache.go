// Package cache stores compiled trees on disk so unchanged documents need
// not be parsed again. Entries are keyed by a hash of the content and of
// the parser settings that shaped the tree.
package cache

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	bolt "go.etcd.io/bbolt"

	"github.com/yaklabco/gomdmark/pkg/mdast"
)

// schemaVersion changes whenever the stored encoding or the compiler
// output changes; a mismatch empties the cache.
const schemaVersion = "1"

// openTimeout bounds how long Open waits for another process's lock.
const openTimeout = 2 * time.Second

var (
	bucketTrees = []byte("trees")
	bucketMeta  = []byte("meta")
	keyVersion  = []byte("version")
)

//nolint:gochecknoglobals // Stateless codec, safe for concurrent use.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrClosed is returned by operations on a closed cache.
var ErrClosed = errors.New("cache: closed")

// Cache is a persistent map from Key to tree. Get and Put may be called
// from multiple goroutines; Close must come after all of them return.
type Cache struct {
	db   *bolt.DB
	path string
}

// Key identifies a tree: the content hash combined with a fingerprint of
// the parser settings.
type Key [sha256.Size]byte

// NewKey derives a key from a content hash and a settings fingerprint.
func NewKey(contentHash [32]byte, fingerprint string) Key {
	h := sha256.New()
	h.Write(contentHash[:])
	h.Write([]byte{0})
	h.Write([]byte(fingerprint))

	var k Key
	copy(k[:], h.Sum(nil))
	return k
}

// Fingerprint joins the settings that influence the tree into one string.
// Order matters; callers pass settings in a fixed order.
func Fingerprint(settings ...[]string) string {
	parts := make([]string, 0, len(settings)+1)
	parts = append(parts, schemaVersion)
	for _, s := range settings {
		parts = append(parts, strings.Join(s, ","))
	}
	return strings.Join(parts, "|")
}

// Open opens or creates the cache database at path, creating parent
// directories as needed.
func Open(path string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, fmt.Errorf("open cache %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		meta, err := tx.CreateBucketIfNotExists(bucketMeta)
		if err != nil {
			return fmt.Errorf("create meta bucket: %w", err)
		}
		if string(meta.Get(keyVersion)) != schemaVersion {
			if err := tx.DeleteBucket(bucketTrees); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
				return fmt.Errorf("drop stale trees: %w", err)
			}
			if err := meta.Put(keyVersion, []byte(schemaVersion)); err != nil {
				return fmt.Errorf("write version: %w", err)
			}
		}
		if _, err := tx.CreateBucketIfNotExists(bucketTrees); err != nil {
			return fmt.Errorf("create trees bucket: %w", err)
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize cache %s: %w", path, err)
	}

	return &Cache{db: db, path: path}, nil
}

// Path returns the database file path.
func (c *Cache) Path() string {
	return c.path
}

// Get returns the tree stored under key. The boolean is false on a miss.
// Nodes of the returned tree have no File set.
func (c *Cache) Get(key Key) (*mdast.Node, bool, error) {
	var data []byte
	err := c.view(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketTrees).Get(key[:]); v != nil {
			// v is only valid inside the transaction.
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil || data == nil {
		return nil, false, err
	}

	var encoded mdast.Encoded
	if err := json.Unmarshal(data, &encoded); err != nil {
		return nil, false, fmt.Errorf("decode cached tree: %w", err)
	}
	root, err := mdast.Decode(&encoded)
	if err != nil {
		return nil, false, fmt.Errorf("decode cached tree: %w", err)
	}
	return root, true, nil
}

// Put stores the tree under key, replacing any previous entry.
func (c *Cache) Put(key Key, root *mdast.Node) error {
	data, err := json.Marshal(mdast.Encode(root, true))
	if err != nil {
		return fmt.Errorf("encode tree: %w", err)
	}
	return c.update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketTrees).Put(key[:], data)
	})
}

// Len returns the number of stored trees.
func (c *Cache) Len() (int, error) {
	var n int
	err := c.view(func(tx *bolt.Tx) error {
		n = tx.Bucket(bucketTrees).Stats().KeyN
		return nil
	})
	return n, err
}

// Clear removes every stored tree.
func (c *Cache) Clear() error {
	return c.update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucketTrees); err != nil {
			return fmt.Errorf("drop trees: %w", err)
		}
		_, err := tx.CreateBucket(bucketTrees)
		return err
	})
}

// Close releases the database. Further calls return ErrClosed.
func (c *Cache) Close() error {
	if c.db == nil {
		return ErrClosed
	}
	err := c.db.Close()
	c.db = nil
	return err
}

func (c *Cache) view(fn func(*bolt.Tx) error) error {
	if c.db == nil {
		return ErrClosed
	}
	return c.db.View(fn)
}

func (c *Cache) update(fn func(*bolt.Tx) error) error {
	if c.db == nil {
		return ErrClosed
	}
	return c.db.Update(fn)
}
