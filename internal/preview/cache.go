package preview

import "sync"

// Cache memoizes resolution results per URL for the lifetime of a run,
// failures included. Concurrent lookups of the same URL share one
// resolution.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	done    chan struct{}
	preview *Preview
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]*entry)}
}

// Get returns a finished result. found is false when the URL was never
// resolved or is still in flight.
func (c *Cache) Get(url string) (p *Preview, found bool) {
	c.mu.Lock()
	e, ok := c.entries[url]
	c.mu.Unlock()
	if !ok {
		return nil, false
	}
	select {
	case <-e.done:
		return e.preview, true
	default:
		return nil, false
	}
}

// do returns the cached result for url, calling fn exactly once per URL.
// Callers arriving while fn runs wait for its result.
func (c *Cache) do(url string, fn func() *Preview) *Preview {
	c.mu.Lock()
	if e, ok := c.entries[url]; ok {
		c.mu.Unlock()
		<-e.done
		return e.preview
	}
	e := &entry{done: make(chan struct{})}
	c.entries[url] = e
	c.mu.Unlock()

	defer close(e.done)
	e.preview = fn()
	return e.preview
}

// Len returns the number of URLs resolved or in flight.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Snapshot returns every successfully resolved preview keyed by URL.
func (c *Cache) Snapshot() map[string]*Preview {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]*Preview, len(c.entries))
	for url, e := range c.entries {
		select {
		case <-e.done:
			if e.preview != nil {
				out[url] = e.preview
			}
		default:
		}
	}
	return out
}
