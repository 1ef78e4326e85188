package domain

// Author is a named writer. Names are unique case-insensitively on the backend.
type Author struct {
	ID   ID     `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// EntityID implements Entity.
func (a Author) EntityID() ID { return a.ID }

// NewAuthor is the create payload for an author.
type NewAuthor struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
}

// AuthorPatch carries only the fields that change.
type AuthorPatch struct {
	Name *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
}

// IsEmpty reports whether the patch changes nothing.
func (p AuthorPatch) IsEmpty() bool {
	return p.Name == nil
}

// DiffAuthor builds a patch from the trimmed form value.
func DiffAuthor(current Author, name string) AuthorPatch {
	var patch AuthorPatch
	if name != "" && name != current.Name {
		patch.Name = &name
	}
	return patch
}
