package blit

// cacheEntry tracks one shared texture and how many holders it has.
// An entry exists only while used >= 1.
type cacheEntry struct {
	tex  *Texture
	used int
}

// textureCache deduplicates texture loads by identity. Lookups are an
// identity-keyed map; lifetime is governed purely by use counts, never
// by eviction. Single-threaded by the package's platform contract.
type textureCache struct {
	entries map[string]*cacheEntry
}

func newTextureCache() textureCache {
	return textureCache{entries: make(map[string]*cacheEntry)}
}

// lookup returns the shared texture for identity, bumping its use count,
// or nil when the identity has not been loaded.
func (c *textureCache) lookup(identity string) *Texture {
	e, ok := c.entries[identity]
	if !ok {
		return nil
	}
	e.used++
	return e.tex
}

// insert registers a freshly loaded texture with a use count of 1.
func (c *textureCache) insert(t *Texture) {
	c.entries[t.identity] = &cacheEntry{tex: t, used: 1}
}

// release drops one use of t. found reports whether t was tracked at
// all; dead reports that the count reached zero and the entry was
// removed, transferring destruction to the caller.
func (c *textureCache) release(t *Texture) (found, dead bool) {
	e, ok := c.entries[t.identity]
	if !ok || e.tex != t {
		return false, false
	}
	e.used--
	if e.used > 0 {
		return true, false
	}
	delete(c.entries, t.identity)
	return true, true
}

// leaks returns the entries still alive, for shutdown diagnostics.
func (c *textureCache) leaks() map[string]int {
	if len(c.entries) == 0 {
		return nil
	}
	out := make(map[string]int, len(c.entries))
	for id, e := range c.entries {
		out[id] = e.used
	}
	return out
}
