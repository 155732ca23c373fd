package texture

import (
	"fmt"
	"sync"
)

// Catalog resolves texture names to decoded textures, loading each once.
type Catalog struct {
	mu     sync.RWMutex
	specs  map[string]Spec
	items  map[string]*Texture
	source Source
}

// NewCatalog creates a catalog over the given specs. A nil source yields
// textures without image data, which is enough for material bookkeeping.
func NewCatalog(specs []Spec, source Source) *Catalog {
	c := &Catalog{
		specs:  make(map[string]Spec, len(specs)),
		items:  make(map[string]*Texture),
		source: source,
	}
	for _, s := range specs {
		c.specs[s.Name] = s
	}
	return c
}

// Has reports whether name is in the catalog.
func (c *Catalog) Has(name string) bool {
	_, ok := c.specs[name]
	return ok
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int {
	return len(c.specs)
}

// Get loads and caches a texture by name.
func (c *Catalog) Get(name string) (*Texture, error) {
	spec, ok := c.specs[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}

	// Fast path: read lock
	c.mu.RLock()
	if tex, exists := c.items[name]; exists {
		c.mu.RUnlock()
		return tex, nil
	}
	c.mu.RUnlock()

	tex := &Texture{Spec: spec}
	if c.source != nil && spec.Path != "" {
		rc, err := c.source.Open(spec.Path)
		if err != nil {
			return nil, fmt.Errorf("opening texture %s: %w", name, err)
		}
		img, err := Decode(rc, spec.Path)
		rc.Close()
		if err != nil {
			return nil, err
		}
		tex.Image = img
	}

	// Write lock with double-check
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, exists := c.items[name]; exists {
		return existing, nil
	}
	c.items[name] = tex
	return tex, nil
}
