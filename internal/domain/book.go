package domain

// Book is a title with a denormalized author name.
type Book struct {
	ID     ID     `json:"id" db:"id"`
	Title  string `json:"title" db:"title"`
	Author string `json:"author" db:"author"`
}

// EntityID implements Entity.
func (b Book) EntityID() ID { return b.ID }

// NewBook is the create payload for a book.
type NewBook struct {
	Title  string `json:"title" validate:"required,min=1,max=255"`
	Author string `json:"author" validate:"required,min=1,max=255"`
}

// BookPatch carries only the fields that change.
type BookPatch struct {
	Title  *string `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Author *string `json:"author,omitempty" validate:"omitempty,min=1,max=255"`
}

// IsEmpty reports whether the patch changes nothing.
func (p BookPatch) IsEmpty() bool {
	return p.Title == nil && p.Author == nil
}

// DiffBook builds a patch from trimmed form values against the stored book.
// Empty values and values equal to the stored ones are left out.
func DiffBook(current Book, title, author string) BookPatch {
	var patch BookPatch
	if title != "" && title != current.Title {
		patch.Title = &title
	}
	if author != "" && author != current.Author {
		patch.Author = &author
	}
	return patch
}
