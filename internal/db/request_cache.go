package db

// RequestCache memoizes gateway reads for the lifetime of one request.
// It is not safe for concurrent use and must not be shared across requests.
type RequestCache struct {
	entries map[string]any
	hits    int
}

func NewRequestCache() *RequestCache {
	return &RequestCache{entries: make(map[string]any)}
}

func (cache *RequestCache) Get(key string) (any, bool) {
	if cache == nil {
		return nil, false
	}
	value, ok := cache.entries[key]
	if ok {
		cache.hits++
	}
	return value, ok
}

func (cache *RequestCache) Put(key string, value any) {
	if cache == nil {
		return
	}
	cache.entries[key] = value
}

// Reset drops every entry. Called after writes and rollbacks.
func (cache *RequestCache) Reset() {
	if cache == nil {
		return
	}
	clear(cache.entries)
}

func (cache *RequestCache) Len() int {
	if cache == nil {
		return 0
	}
	return len(cache.entries)
}

func (cache *RequestCache) Hits() int {
	if cache == nil {
		return 0
	}
	return cache.hits
}
