package object

import (
	"fmt"
	"iter"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache memoizes decoded objects in front of a Source. Objects are
// immutable, so cached values never go stale. Failures are not cached.
type Cache struct {
	src Source
	lru *lru.Cache[Hash, Object]
}

// NewCache wraps src with an LRU holding up to size decoded objects.
func NewCache(src Source, size int) (*Cache, error) {
	c, err := lru.New[Hash, Object](size)
	if err != nil {
		return nil, fmt.Errorf("object cache: %w", err)
	}
	return &Cache{src: src, lru: c}, nil
}

// Read returns the cached object for h, reading through on a miss.
func (c *Cache) Read(h Hash) (Object, error) {
	if obj, ok := c.lru.Get(h); ok {
		return obj, nil
	}
	obj, err := c.src.Read(h)
	if err != nil {
		return nil, err
	}
	c.lru.Add(h, obj)
	return obj, nil
}

// Objects delegates enumeration to the wrapped source.
func (c *Cache) Objects() iter.Seq2[Hash, error] {
	return c.src.Objects()
}

// Len returns the number of cached objects.
func (c *Cache) Len() int {
	return c.lru.Len()
}

// Open returns a Source for the object directory root, memoized when
// cacheSize is positive.
func Open(root string, cacheSize int) (Source, error) {
	s := NewStore(root)
	if cacheSize <= 0 {
		return s, nil
	}
	c, err := NewCache(s, cacheSize)
	if err != nil {
		return nil, err
	}
	return c, nil
}
