package mvnorm

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/adalundhe/alphasim/core/covariance"
)

const defaultFactorCacheSize = 64

type factorKey struct {
	items int
	corr  float64
}

// FactorCache caches Samplers by (itemCount, correlation). The reference
// grid has 40 unique covariance matrices shared across 5 sample sizes each;
// caching the factorizations avoids recomputing them per condition.
//
// The underlying LRU is safe for concurrent use, so workers may share one
// cache.
type FactorCache struct {
	cache *lru.Cache[factorKey, *Sampler]
}

// NewFactorCache creates a cache holding up to size factorizations.
// size <= 0 falls back to a default large enough for the reference grid.
func NewFactorCache(size int) (*FactorCache, error) {
	if size <= 0 {
		size = defaultFactorCacheSize
	}
	cache, err := lru.New[factorKey, *Sampler](size)
	if err != nil {
		return nil, err
	}
	return &FactorCache{cache: cache}, nil
}

// Get returns the Sampler for the equicorrelated covariance with the given
// item count and correlation, building and caching it on first use.
func (c *FactorCache) Get(itemCount int, correlation float64) (*Sampler, error) {
	key := factorKey{items: itemCount, corr: correlation}
	if s, ok := c.cache.Get(key); ok {
		return s, nil
	}

	sigma, err := covariance.Equicorrelated(itemCount, correlation)
	if err != nil {
		return nil, err
	}
	s, err := NewSampler(sigma)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, s)
	return s, nil
}

// Len returns the number of cached factorizations.
func (c *FactorCache) Len() int {
	return c.cache.Len()
}
