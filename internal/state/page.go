package state

import "github.com/alexisbeaulieu97/shelf/internal/domain"

// Page identifies the screen the admin is showing.
type Page string

const (
	BooksList     Page = "BOOKS_LIST"
	BooksCreate   Page = "BOOKS_CREATE"
	BooksUpdate   Page = "BOOKS_UPDATE"
	BooksDelete   Page = "BOOKS_DELETE"
	AuthorsList   Page = "AUTHORS_LIST"
	AuthorsCreate Page = "AUTHORS_CREATE"
	AuthorsUpdate Page = "AUTHORS_UPDATE"
	AuthorsDelete Page = "AUTHORS_DELETE"
)

// Pages lists every page in sidebar order.
var Pages = []Page{
	BooksList, BooksCreate, BooksUpdate, BooksDelete,
	AuthorsList, AuthorsCreate, AuthorsUpdate, AuthorsDelete,
}

// Action is the operation a page performs on its entity.
type Action string

const (
	ActionList   Action = "list"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Kind returns the entity the page manages.
func (p Page) Kind() domain.Kind {
	switch p {
	case AuthorsList, AuthorsCreate, AuthorsUpdate, AuthorsDelete:
		return domain.KindAuthor
	default:
		return domain.KindBook
	}
}

// Action returns what the page does.
func (p Page) Action() Action {
	switch p {
	case BooksCreate, AuthorsCreate:
		return ActionCreate
	case BooksUpdate, AuthorsUpdate:
		return ActionUpdate
	case BooksDelete, AuthorsDelete:
		return ActionDelete
	default:
		return ActionList
	}
}

// IsForm reports whether the page edits text fields.
func (p Page) IsForm() bool {
	a := p.Action()
	return a == ActionCreate || a == ActionUpdate
}

// Title is the heading shown above the page.
func (p Page) Title() string {
	switch p {
	case BooksList:
		return "Books"
	case BooksCreate:
		return "Create book"
	case BooksUpdate:
		return "Update book"
	case BooksDelete:
		return "Delete books"
	case AuthorsList:
		return "Authors"
	case AuthorsCreate:
		return "Create author"
	case AuthorsUpdate:
		return "Update author"
	case AuthorsDelete:
		return "Delete authors"
	default:
		return string(p)
	}
}

// PageFor returns the page for a kind and action.
func PageFor(kind domain.Kind, action Action) Page {
	for _, p := range Pages {
		if p.Kind() == kind && p.Action() == action {
			return p
		}
	}
	return BooksList
}
