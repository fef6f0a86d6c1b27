package sectionmark

import (
	"sort"
	"sync"
)

// Collector accumulates the section marks seen across one batch.
//
// Every mark-shaped token is recorded, known or not; the report built from
// it is meant to be checked against the table by hand. A Collector belongs
// to a single batch and is safe for use from several goroutines.
type Collector struct {
	mu    sync.Mutex
	seen  map[string]struct{}
	order []string
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector {
	return &Collector{seen: make(map[string]struct{})}
}

// Collect records the marks found in raw (not yet normalized) lyrics and
// returns how many of them had not been seen before.
func (c *Collector) Collect(lyrics string) int {
	found := FindMarks(lyrics)
	if len(found) == 0 {
		return 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	added := 0
	for _, mark := range found {
		if _, ok := c.seen[mark]; ok {
			continue
		}
		c.seen[mark] = struct{}{}
		c.order = append(c.order, mark)
		added++
	}
	return added
}

// Len returns the number of distinct marks recorded.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.order)
}

// Marks returns the distinct marks in first-seen order.
func (c *Collector) Marks() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Sorted returns the distinct marks in byte-wise ascending order
// (digits, then upper case, then lower case).
func (c *Collector) Sorted() []string {
	out := c.Marks()
	sort.Strings(out)
	return out
}
