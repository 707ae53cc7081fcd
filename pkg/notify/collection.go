package notify

import (
	"slices"
	"sync"
)

// Collection is the shared, id-keyed set of pending notifications.
// A successful fetch replaces the contents wholesale; the caller
// toggles selection; the deletion worker removes ids as they are
// deleted. All methods are safe for concurrent use and each holds the
// lock only for the duration of its own mutation.
type Collection struct {
	mu      sync.RWMutex
	records map[uint64]*Record
}

// NewCollection creates an empty collection.
func NewCollection() *Collection {
	return &Collection{records: make(map[uint64]*Record)}
}

// ReplaceAll swaps the entire contents for the result of a fetch.
// Previous records, including their selection state, are discarded.
func (c *Collection) ReplaceAll(records map[uint64]*Record) {
	if records == nil {
		records = make(map[uint64]*Record)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = records
}

// Len returns the number of records.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

// Get returns a copy of the record with the given id.
func (c *Collection) Get(id uint64) (Record, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rec, ok := c.records[id]
	if !ok {
		return Record{}, false
	}
	return *rec, true
}

// SetSelected marks a single record for deletion (or unmarks it).
// Returns false if no record with that id exists.
func (c *Collection) SetSelected(id uint64, selected bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec, ok := c.records[id]
	if !ok {
		return false
	}
	rec.Selected = selected
	return true
}

// SelectAll sets the selection flag on every record.
func (c *Collection) SelectAll(selected bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, rec := range c.records {
		rec.Selected = selected
	}
}

// SelectedCount returns how many records are currently selected.
func (c *Collection) SelectedCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := 0
	for _, rec := range c.records {
		if rec.Selected {
			n++
		}
	}
	return n
}

// Remove deletes a record from the collection, typically after its
// deletion call succeeded. Returns false if the id is not present.
func (c *Collection) Remove(id uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.records[id]; !ok {
		return false
	}
	delete(c.records, id)
	return true
}

// Snapshot returns copies of all records sorted by id. The copies are
// detached: later mutations of the collection do not affect them.
func (c *Collection) Snapshot() []Record {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshotLocked(false)
}

// SelectedSnapshot returns copies of the selected records sorted by id.
func (c *Collection) SelectedSnapshot() []Record {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshotLocked(true)
}

func (c *Collection) snapshotLocked(selectedOnly bool) []Record {
	out := make([]Record, 0, len(c.records))
	for _, rec := range c.records {
		if selectedOnly && !rec.Selected {
			continue
		}
		out = append(out, *rec)
	}
	slices.SortFunc(out, func(a, b Record) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		default:
			return 0
		}
	})
	return out
}
