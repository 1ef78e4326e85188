// Package selection holds the set of rows a user has marked on a list page.
package selection

import "github.com/alexisbeaulieu97/shelf/internal/domain"

// Set is an immutable, insertion-ordered set of ids. The zero value is empty.
// Every operation returns a new Set and leaves the receiver untouched.
type Set struct {
	order []domain.ID
}

// Of builds a set from ids, dropping duplicates but keeping first-seen order.
func Of(ids ...domain.ID) Set {
	var s Set
	for _, id := range ids {
		s = s.Add(id)
	}
	return s
}

// Len reports the number of selected ids.
func (s Set) Len() int { return len(s.order) }

// IsEmpty reports whether nothing is selected.
func (s Set) IsEmpty() bool { return len(s.order) == 0 }

// Has reports whether id is selected.
func (s Set) Has(id domain.ID) bool {
	for _, existing := range s.order {
		if existing == id {
			return true
		}
	}
	return false
}

// IDs returns a copy of the selected ids in insertion order.
func (s Set) IDs() []domain.ID {
	out := make([]domain.ID, len(s.order))
	copy(out, s.order)
	return out
}

// Single returns the only selected id when exactly one is selected.
func (s Set) Single() (domain.ID, bool) {
	if len(s.order) != 1 {
		return 0, false
	}
	return s.order[0], true
}

// Add returns a set that also contains id.
func (s Set) Add(id domain.ID) Set {
	if s.Has(id) {
		return s
	}
	next := make([]domain.ID, len(s.order), len(s.order)+1)
	copy(next, s.order)
	return Set{order: append(next, id)}
}

// Remove returns a set without id.
func (s Set) Remove(id domain.ID) Set {
	if !s.Has(id) {
		return s
	}
	next := make([]domain.ID, 0, len(s.order)-1)
	for _, existing := range s.order {
		if existing != id {
			next = append(next, existing)
		}
	}
	return Set{order: next}
}

// Toggle flips membership of id.
func (s Set) Toggle(id domain.ID) Set {
	if s.Has(id) {
		return s.Remove(id)
	}
	return s.Add(id)
}

// Prune keeps only the ids present in current, preserving selection order.
func (s Set) Prune(current []domain.ID) Set {
	if s.IsEmpty() {
		return s
	}
	alive := make(map[domain.ID]struct{}, len(current))
	for _, id := range current {
		alive[id] = struct{}{}
	}
	next := make([]domain.ID, 0, len(s.order))
	for _, id := range s.order {
		if _, ok := alive[id]; ok {
			next = append(next, id)
		}
	}
	return Set{order: next}
}

// CheckState is the tri-state of a select-all header checkbox.
type CheckState int

const (
	Unchecked CheckState = iota
	Indeterminate
	Checked
)

// HeaderState reports how the select-all checkbox over visible rows renders.
// It is checked only when every visible row is selected.
func (s Set) HeaderState(visible []domain.ID) CheckState {
	if len(visible) == 0 || s.IsEmpty() {
		return Unchecked
	}
	selected := 0
	for _, id := range visible {
		if s.Has(id) {
			selected++
		}
	}
	switch {
	case selected == len(visible):
		return Checked
	case selected > 0:
		return Indeterminate
	default:
		return Unchecked
	}
}
