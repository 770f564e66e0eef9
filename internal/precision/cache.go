package precision

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Cache maps exchange symbols to price precision. Entries are only ever added; a
// racing duplicate Set stores the same value and is harmless.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]int32
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]int32)}
}

// NewSeededCache returns a cache pre-populated with seed.
func NewSeededCache(seed map[string]int32) *Cache {
	c := NewCache()
	for sym, p := range seed {
		c.Set(sym, p)
	}
	return c
}

func (c *Cache) Get(symbol string) (int32, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.entries[cacheKey(symbol)]
	return p, ok
}

func (c *Cache) Set(symbol string, precision int32) {
	key := cacheKey(symbol)
	if key == "" || precision < 0 {
		return
	}
	c.mu.Lock()
	c.entries[key] = precision
	c.mu.Unlock()
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func cacheKey(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// seedFile is the on-disk shape of a precision seed:
//
//	symbols:
//	  BTCUSDT: 1
//	  DOGEUSDT: 5
type seedFile struct {
	Symbols map[string]int32 `yaml:"symbols"`
}

// LoadSeed reads a YAML seed file. Unknown top-level keys are rejected.
func LoadSeed(path string) (map[string]int32, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read precision seed failed: %w", err)
	}
	var file seedFile
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("parse precision seed failed: %w", err)
	}
	out := make(map[string]int32, len(file.Symbols))
	for sym, p := range file.Symbols {
		if p < 0 {
			return nil, fmt.Errorf("precision seed %s: negative precision %d", sym, p)
		}
		out[cacheKey(sym)] = p
	}
	return out, nil
}
