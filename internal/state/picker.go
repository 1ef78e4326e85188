package state

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/alexisbeaulieu97/shelf/internal/domain"
)

// AuthorMode chooses how a book form names its author.
type AuthorMode int

const (
	// ModeSelect picks an existing author from the dropdown.
	ModeSelect AuthorMode = iota
	// ModeNew types a free-text name; the backend creates unknown authors.
	ModeNew
)

func (m AuthorMode) String() string {
	if m == ModeNew {
		return "new"
	}
	return "select"
}

// AuthorPicker is the author half of a book form. The name it submits is
// derived on demand by Effective rather than kept in sync.
type AuthorPicker struct {
	Mode       AuthorMode
	SelectedID domain.ID
	NewName    string
}

// SortedAuthors orders authors by name using locale-aware collation.
func SortedAuthors(authors []domain.Author) []domain.Author {
	out := slices.Clone(authors)
	c := collate.New(language.English)
	slices.SortStableFunc(out, func(a, b domain.Author) int {
		return c.CompareString(a.Name, b.Name)
	})
	return out
}

// Effective returns the author name a submit would send: the canonical
// stored name in select mode with a known author, otherwise the trimmed
// free text.
func (p AuthorPicker) Effective(authors []domain.Author) string {
	if p.Mode == ModeSelect {
		if author, ok := domain.Find(authors, p.SelectedID); ok {
			return author.Name
		}
	}
	return strings.TrimSpace(p.NewName)
}

// Reconcile adjusts the picker to the current author list: with no authors
// only create-new is possible, and select mode without a valid selection
// defaults to the first author alphabetically.
func (p AuthorPicker) Reconcile(authors []domain.Author) AuthorPicker {
	if len(authors) == 0 {
		p.Mode = ModeNew
		p.SelectedID = 0
		return p
	}
	if p.Mode == ModeSelect {
		if _, ok := domain.Find(authors, p.SelectedID); !ok {
			p.SelectedID = SortedAuthors(authors)[0].ID
		}
	}
	return p
}

// WithMode switches mode. Leaving select mode clears the dropdown choice but
// keeps typed text.
func (p AuthorPicker) WithMode(mode AuthorMode, authors []domain.Author) AuthorPicker {
	p.Mode = mode
	if mode == ModeNew {
		p.SelectedID = 0
		return p
	}
	return p.Reconcile(authors)
}

// Select chooses an existing author.
func (p AuthorPicker) Select(id domain.ID, authors []domain.Author) AuthorPicker {
	if _, ok := domain.Find(authors, id); !ok {
		return p
	}
	p.Mode = ModeSelect
	p.SelectedID = id
	return p
}

// Step moves the dropdown selection by delta positions in sorted order,
// clamping at both ends.
func (p AuthorPicker) Step(delta int, authors []domain.Author) AuthorPicker {
	sorted := SortedAuthors(authors)
	if len(sorted) == 0 || p.Mode != ModeSelect {
		return p
	}
	idx := slices.IndexFunc(sorted, func(a domain.Author) bool { return a.ID == p.SelectedID })
	if idx < 0 {
		idx = 0
	} else {
		idx = min(max(idx+delta, 0), len(sorted)-1)
	}
	p.SelectedID = sorted[idx].ID
	return p
}

// SeedPicker maps a stored author name onto the author list. A case-insensitive
// match selects that author; otherwise the picker falls back to create-new
// holding the stored name.
func SeedPicker(storedName string, authors []domain.Author) AuthorPicker {
	want := strings.ToLower(strings.TrimSpace(storedName))
	for _, author := range SortedAuthors(authors) {
		if strings.ToLower(strings.TrimSpace(author.Name)) == want {
			return AuthorPicker{Mode: ModeSelect, SelectedID: author.ID, NewName: author.Name}
		}
	}
	return AuthorPicker{Mode: ModeNew, NewName: storedName}
}
