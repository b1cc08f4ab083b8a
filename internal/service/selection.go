package service

import "github.com/alexanderramin/tempo/internal/domain"

// Selection tracks which eligible entries the user has curated into the
// timesheet. Operations are pure set manipulation; the underlying entries
// are never touched.
type Selection struct {
	order    []string
	selected map[string]bool
}

// NewSelection creates a selection over the given entry ids with every
// entry selected, the default curation state.
func NewSelection(entryIDs []string) *Selection {
	s := &Selection{
		order:    make([]string, 0, len(entryIDs)),
		selected: make(map[string]bool, len(entryIDs)),
	}
	for _, id := range entryIDs {
		if _, seen := s.selected[id]; seen {
			continue
		}
		s.order = append(s.order, id)
		s.selected[id] = true
	}
	return s
}

// Toggle flips the selection state of id. Unknown ids are ignored.
func (s *Selection) Toggle(id string) {
	if _, ok := s.selected[id]; ok {
		s.selected[id] = !s.selected[id]
	}
}

// SelectAll marks every entry selected.
func (s *Selection) SelectAll() {
	for id := range s.selected {
		s.selected[id] = true
	}
}

// DeselectAll clears every selection.
func (s *Selection) DeselectAll() {
	for id := range s.selected {
		s.selected[id] = false
	}
}

// Selected reports whether id is currently selected.
func (s *Selection) Selected(id string) bool {
	return s.selected[id]
}

// SelectedIDs returns the selected ids in their original listing order.
func (s *Selection) SelectedIDs() []string {
	var ids []string
	for _, id := range s.order {
		if s.selected[id] {
			ids = append(ids, id)
		}
	}
	return ids
}

// Totals are running sums over the current selection, recomputed on every
// call so they can never go stale.
type Totals struct {
	TotalSeconds    int64
	BillableSeconds int64
}

// ComputeTotals sums the durations of the selected entries.
func ComputeTotals(entries []*domain.TimeEntry, sel *Selection) Totals {
	var t Totals
	for _, e := range entries {
		if !sel.Selected(e.ID) {
			continue
		}
		t.TotalSeconds += e.DurationSeconds
		if e.Billable {
			t.BillableSeconds += e.DurationSeconds
		}
	}
	return t
}
