package repository

import "github.com/mesh-intelligence/wordbook/pkg/types"

// cache is an id-keyed map that iterates in insertion order. Replacing an
// existing id keeps its position. It is not safe for concurrent use; the
// Repository guards it with its mutex.
type cache struct {
	order []string
	items map[string]types.Vocabulary
}

func newCache() *cache {
	return &cache{items: make(map[string]types.Vocabulary)}
}

func (c *cache) put(v types.Vocabulary) {
	if _, ok := c.items[v.ID]; !ok {
		c.order = append(c.order, v.ID)
	}
	c.items[v.ID] = v
}

func (c *cache) get(id string) (types.Vocabulary, bool) {
	v, ok := c.items[id]
	return v, ok
}

func (c *cache) remove(id string) {
	if _, ok := c.items[id]; !ok {
		return
	}
	delete(c.items, id)
	for i, oid := range c.order {
		if oid == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

func (c *cache) removeIf(pred func(types.Vocabulary) bool) {
	kept := c.order[:0]
	for _, id := range c.order {
		if pred(c.items[id]) {
			delete(c.items, id)
			continue
		}
		kept = append(kept, id)
	}
	c.order = kept
}

func (c *cache) clear() {
	c.order = nil
	c.items = make(map[string]types.Vocabulary)
}

func (c *cache) len() int {
	return len(c.order)
}

// values returns a copy of the entries in insertion order. Never nil.
func (c *cache) values() []types.Vocabulary {
	out := make([]types.Vocabulary, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.items[id])
	}
	return out
}
