// Package history records the outcome of settled spins.
package history

import "fate/internal/wheel"

// Entry is one settled spin.
type Entry struct {
	Spin     int
	ItemID   int
	Label    string
	Rotation float64
	Ticks    int
}

// Row compares how often an item came up with its share of the wheel.
type Row struct {
	ID       int
	Label    string
	Color    string
	Count    int
	Observed float64
	Expected float64
}

// Tally keeps per-item counts for the whole session and the most recent
// entries up to a limit.
type Tally struct {
	recent []Entry
	counts map[int]int
	total  int
	limit  int
}

func New(limit int) *Tally {
	if limit <= 0 {
		limit = 10
	}
	return &Tally{
		counts: make(map[int]int),
		limit:  limit,
	}
}

func (t *Tally) Record(sel wheel.Selection, ticks int) Entry {
	t.total++
	t.counts[sel.Item.ID]++

	e := Entry{
		Spin:     t.total,
		ItemID:   sel.Item.ID,
		Label:    sel.Item.Label,
		Rotation: sel.Rotation,
		Ticks:    ticks,
	}
	t.recent = append(t.recent, e)
	if len(t.recent) > t.limit {
		t.recent = t.recent[len(t.recent)-t.limit:]
	}
	return e
}

func (t *Tally) Total() int {
	return t.total
}

func (t *Tally) Count(id int) int {
	return t.counts[id]
}

func (t *Tally) Last() (Entry, bool) {
	if len(t.recent) == 0 {
		return Entry{}, false
	}
	return t.recent[len(t.recent)-1], true
}

// Recent returns up to n entries, newest first.
func (t *Tally) Recent(n int) []Entry {
	n = max(0, min(n, len(t.recent)))
	out := make([]Entry, 0, n)
	for i := len(t.recent) - 1; i >= len(t.recent)-n; i-- {
		out = append(out, t.recent[i])
	}
	return out
}

// Rows lists every item of l in wheel order. Items no longer on the wheel
// keep their counts but are not listed.
func (t *Tally) Rows(l wheel.Layout) []Row {
	rows := make([]Row, 0, l.Len())
	for i, s := range l.Slices {
		count := t.counts[s.Item.ID]
		var observed float64
		if t.total > 0 {
			observed = float64(count) / float64(t.total)
		}
		rows = append(rows, Row{
			ID:       s.Item.ID,
			Label:    s.Item.Label,
			Color:    s.Color,
			Count:    count,
			Observed: observed,
			Expected: l.Share(i),
		})
	}
	return rows
}

func (t *Tally) Reset() {
	t.recent = nil
	t.counts = make(map[int]int)
	t.total = 0
}
