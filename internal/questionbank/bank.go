// Package questionbank stores multiple-choice items keyed by module and
// difficulty and draws them at random.
package questionbank

import (
	"fmt"
	"math/rand/v2"

	"github.com/samber/lo"

	"github.com/abhisek/learnbot/internal/curriculum"
)

// Catalog maps module to difficulty to items.
type Catalog map[curriculum.Module]map[curriculum.Difficulty][]Item

// Key identifies one pool of items.
type Key struct {
	Module     curriculum.Module
	Difficulty curriculum.Difficulty
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%s", k.Module, k.Difficulty)
}

// EmptyCatalogError is returned when a draw finds no items. A zero Module
// means the whole catalog is empty.
type EmptyCatalogError struct {
	Module     curriculum.Module
	Difficulty curriculum.Difficulty
}

func (e *EmptyCatalogError) Error() string {
	if e.Module == "" {
		return "question catalog has no items"
	}
	return fmt.Sprintf("no questions for %s/%s", e.Module, e.Difficulty)
}

// Bank is a validated, read-only catalog.
type Bank struct {
	items map[Key][]Item
}

// New validates every item in c and builds a Bank. A catalog with no items
// at all is a configuration error.
func New(c Catalog) (*Bank, error) {
	b := &Bank{items: make(map[Key][]Item)}
	for m, tiers := range c {
		if !m.Valid() {
			return nil, fmt.Errorf("catalog: unknown module %q", m)
		}
		for d, items := range tiers {
			if !d.Valid() {
				return nil, fmt.Errorf("catalog: unknown difficulty %q for %s", d, m)
			}
			for i, it := range items {
				if msg := it.check(); msg != "" {
					return nil, &InvalidItemError{Module: m, Difficulty: d, Index: i, Message: msg}
				}
			}
			if len(items) > 0 {
				b.items[Key{m, d}] = append([]Item(nil), items...)
			}
		}
	}
	if len(b.items) == 0 {
		return nil, &EmptyCatalogError{}
	}
	return b, nil
}

// Draw returns a uniformly random item for the key.
func (b *Bank) Draw(r *rand.Rand, m curriculum.Module, d curriculum.Difficulty) (Item, error) {
	items := b.items[Key{m, d}]
	if len(items) == 0 {
		return Item{}, &EmptyCatalogError{Module: m, Difficulty: d}
	}
	return items[r.IntN(len(items))], nil
}

// Count returns the number of items for the key.
func (b *Bank) Count(m curriculum.Module, d curriculum.Difficulty) int {
	return len(b.items[Key{m, d}])
}

// Keys returns every non-empty key in canonical module then difficulty order.
func (b *Bank) Keys() []Key {
	var keys []Key
	for _, m := range curriculum.AllModules() {
		for _, d := range curriculum.AllDifficulties() {
			if b.Count(m, d) > 0 {
				keys = append(keys, Key{m, d})
			}
		}
	}
	return keys
}

// Total returns the number of items across all keys.
func (b *Bank) Total() int {
	return lo.SumBy(lo.Values(b.items), func(items []Item) int { return len(items) })
}

// Catalog returns a copy of the bank's contents.
func (b *Bank) Catalog() Catalog {
	c := Catalog{}
	for k, items := range b.items {
		if c[k.Module] == nil {
			c[k.Module] = map[curriculum.Difficulty][]Item{}
		}
		c[k.Module][k.Difficulty] = append([]Item(nil), items...)
	}
	return c
}

// Merge returns a catalog holding the items of c followed by those of
// other. Items whose question text already exists under the same key are
// skipped.
func (c Catalog) Merge(other Catalog) Catalog {
	out := Catalog{}
	add := func(src Catalog) {
		for m, tiers := range src {
			if out[m] == nil {
				out[m] = map[curriculum.Difficulty][]Item{}
			}
			for d, items := range tiers {
				for _, it := range items {
					dup := lo.ContainsBy(out[m][d], func(x Item) bool { return x.Question == it.Question })
					if !dup {
						out[m][d] = append(out[m][d], it)
					}
				}
			}
		}
	}
	add(c)
	add(other)
	return out
}
