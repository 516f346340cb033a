package docxsdt

import (
	"crypto/sha256"
	"time"

	"github.com/dgraph-io/ristretto"
)

// DocumentCache memoizes the scan+index pass (components B-E) by content
// hash, so repeated Map/Strip/Describe calls against the same template
// bytes skip straight to the Substitution Writer or Stripper. Admission
// and eviction are cost-based rather than simple LRU, since parts vary
// enormously in size.
type DocumentCache struct {
	cache *ristretto.Cache
	ttl   time.Duration
}

// NewDocumentCache builds a DocumentCache from the global configuration.
func NewDocumentCache() (*DocumentCache, error) {
	config := GetGlobalConfig()
	return NewDocumentCacheWithConfig(config)
}

// NewDocumentCacheWithConfig builds a DocumentCache sized per config.
// ristretto rejects a MaxCost of 0, so this returns an error for it; New
// and NewWithConfig treat any error here as running without a cache.
func NewDocumentCacheWithConfig(config *Config) (*DocumentCache, error) {
	maxCost := config.CacheMaxCost
	numCounters := maxCost / 256
	if numCounters < 100 {
		numCounters = 100
	}
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: numCounters,
		MaxCost:     maxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &DocumentCache{cache: c, ttl: config.CacheTTL}, nil
}

// partCacheKey hashes a part's raw bytes into a cache key; content
// addressing means identical parts across different archives, or repeated
// calls against the same archive, share one scan.
func partCacheKey(part []byte) string {
	sum := sha256.Sum256(part)
	return string(sum[:])
}

// Get returns the indexed DocumentData for part's bytes, if present.
func (dc *DocumentCache) Get(part []byte) (*DocumentData, bool) {
	v, ok := dc.cache.Get(partCacheKey(part))
	if !ok {
		return nil, false
	}
	data, ok := v.(*DocumentData)
	return data, ok
}

// Set stores data under part's content hash, costed by its event count.
func (dc *DocumentCache) Set(part []byte, data *DocumentData) {
	cost := int64(len(data.Events))
	if dc.ttl > 0 {
		dc.cache.SetWithTTL(partCacheKey(part), data, cost, dc.ttl)
	} else {
		dc.cache.Set(partCacheKey(part), data, cost)
	}
	dc.cache.Wait()
}

// Close releases the cache's background goroutines.
func (dc *DocumentCache) Close() {
	dc.cache.Close()
}
