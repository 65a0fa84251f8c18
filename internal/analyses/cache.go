package analyses

import (
	"encoding/json"

	lru "github.com/hashicorp/golang-lru/v2"
)

// ResultCache memoizes engine output by tool and input hash. The engine is
// pure, so a hit is exactly what a fresh run would produce.
type ResultCache struct {
	entries *lru.Cache[string, json.RawMessage]
}

// NewResultCache returns a cache holding up to size results, or nil when
// size is zero. A nil cache never hits.
func NewResultCache(size int) (*ResultCache, error) {
	if size <= 0 {
		return nil, nil
	}
	entries, err := lru.New[string, json.RawMessage](size)
	if err != nil {
		return nil, err
	}
	return &ResultCache{entries: entries}, nil
}

func cacheKey(tool Tool, engineVersion, inputHash string) string {
	return string(tool) + "|" + engineVersion + "|" + inputHash
}

// Get returns a copy of the cached result.
func (c *ResultCache) Get(key string) (json.RawMessage, bool) {
	if c == nil {
		return nil, false
	}
	v, ok := c.entries.Get(key)
	if !ok {
		return nil, false
	}
	return append(json.RawMessage(nil), v...), true
}

// Add stores result under key.
func (c *ResultCache) Add(key string, result json.RawMessage) {
	if c == nil {
		return
	}
	c.entries.Add(key, append(json.RawMessage(nil), result...))
}

// Len reports the number of cached results.
func (c *ResultCache) Len() int {
	if c == nil {
		return 0
	}
	return c.entries.Len()
}
