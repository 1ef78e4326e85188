package domain

import "strconv"

// ID identifies a backend-owned record. The client never originates one.
type ID int64

// String renders the id the way it appears in messages and URLs.
func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// Entity is implemented by every record kind the admin manages.
type Entity interface {
	EntityID() ID
}

// Kind names an entity collection.
type Kind string

const (
	KindBook   Kind = "book"
	KindAuthor Kind = "author"
)

// Label returns the capitalised singular name used in headings.
func (k Kind) Label() string {
	switch k {
	case KindBook:
		return "Book"
	case KindAuthor:
		return "Author"
	default:
		return string(k)
	}
}

// Plural returns the lower-case collection name.
func (k Kind) Plural() string {
	return string(k) + "s"
}

// IDs collects the identifiers of the given records in order.
func IDs[T Entity](items []T) []ID {
	ids := make([]ID, len(items))
	for i, item := range items {
		ids[i] = item.EntityID()
	}
	return ids
}

// Find returns the record with the given id.
func Find[T Entity](items []T, id ID) (T, bool) {
	for _, item := range items {
		if item.EntityID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}
