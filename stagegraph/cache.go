package stagegraph

import (
	"sync"

	"github.com/katalvlaran/geotour/core"
	"github.com/katalvlaran/geotour/cost"
)

// pair is an ordered (from, to) vertex pair.
type pair struct {
	from, to core.NodeID
}

// Cache memoizes edge costs between sample pairs for one query.
//
// Entries are write-once: samples never move and the cost model never
// changes during a query, so a stored cost is valid for the query's lifetime
// and is never invalidated.
type Cache struct {
	mu sync.RWMutex
	m  map[pair]cost.Cost
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{m: make(map[pair]cost.Cost)}
}

// Get returns the cached cost of from→to.
func (c *Cache) Get(from, to core.NodeID) (cost.Cost, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.m[pair{from, to}]

	return v, ok
}

// Put stores v for from→to unless an entry exists, and returns the stored value.
func (c *Cache) Put(from, to core.NodeID, v cost.Cost) cost.Cost {
	c.mu.Lock()
	defer c.mu.Unlock()
	k := pair{from, to}
	if old, ok := c.m[k]; ok {
		return old
	}
	c.m[k] = v

	return v
}

// Len returns the number of cached pairs.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.m)
}
