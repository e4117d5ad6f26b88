package statement

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cache memoizes Compute by the content of the raw rows, so repeated
// renders of an unchanged upload never recompute. Statements are immutable
// once uploaded, so entries never go stale and nothing is evicted.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*Statement
	group   singleflight.Group
}

// NewCache returns an empty compute cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]*Statement)}
}

// Fingerprint returns a stable content hash of the statement's raw columns.
// Derived columns are excluded so a raw and an already-augmented copy of the
// same table share an entry.
func Fingerprint(st *Statement) string {
	h := sha256.New()
	for _, r := range st.Rows {
		h.Write([]byte(r.Name))
		h.Write([]byte{0})
		h.Write([]byte(strconv.FormatFloat(r.Prior, 'g', -1, 64)))
		h.Write([]byte{0})
		h.Write([]byte(strconv.FormatFloat(r.Current, 'g', -1, 64)))
		h.Write([]byte{0xff})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Compute returns the derived statement for st, computing it at most once
// per distinct content. Concurrent calls for the same content share a single
// computation.
func (c *Cache) Compute(st *Statement) (*Statement, error) {
	key := Fingerprint(st)

	c.mu.RLock()
	cached, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return cached, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		computed, err := Compute(st)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[key] = computed
		c.mu.Unlock()
		return computed, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Statement), nil
}

// Len reports the number of cached computations.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
