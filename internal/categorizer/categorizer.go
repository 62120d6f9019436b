// Package categorizer classifies free-text descriptions into the fixed
// expense categories by keyword matching.
package categorizer

import (
	"strings"
	"time"

	"ledger/internal/cache"
	"ledger/internal/core"
)

// Classifier maps a description to a category.
type Classifier interface {
	Categorize(description string) core.Category
}

// Categorizer is stateless once built and safe to share.
type Categorizer struct {
	rules Rules
}

func New(rules Rules) *Categorizer {
	return &Categorizer{rules: rules}
}

// Default uses the built-in keyword table.
func Default() *Categorizer {
	return New(DefaultRules())
}

// Categorize lowercases the description and returns the category of the
// first rule with a keyword occurring anywhere in it, or Other.
func (c *Categorizer) Categorize(description string) core.Category {
	desc := strings.ToLower(description)
	for _, r := range c.rules {
		for _, k := range r.Keywords {
			if strings.Contains(desc, k) {
				return r.Category
			}
		}
	}
	return core.Other
}

func (c *Categorizer) Rules() Rules {
	return c.rules
}

// Cached memoizes another Classifier by lowercased description.
type Cached struct {
	next  Classifier
	cache cache.Cache[core.Category]
}

// NewCached memoizes next in an LRU of size entries living for ttl.
func NewCached(next Classifier, size int, ttl time.Duration) *Cached {
	return NewCachedWith(next, cache.NewLRUCache[core.Category](size, ttl))
}

func NewCachedWith(next Classifier, c cache.Cache[core.Category]) *Cached {
	return &Cached{next: next, cache: c}
}

func (c *Cached) Categorize(description string) core.Category {
	key := strings.ToLower(description)
	if cat, ok := c.cache.Get(key); ok {
		return cat
	}
	cat := c.next.Categorize(description)
	c.cache.Set(key, cat)
	return cat
}

func (c *Cached) Stats() cache.Stats {
	return c.cache.Stats()
}
