package state

import "github.com/alexisbeaulieu97/shelf/internal/domain"

// Effect is work a reducer asks the runtime to perform. Effects returned
// together run one after another, each feeding its result back as input.
type Effect interface {
	effect()
}

type (
	// LoadHealth fetches /health.
	LoadHealth struct{}
	// LoadBooks fetches the books snapshot.
	LoadBooks struct{}
	// LoadAuthors fetches the authors snapshot.
	LoadAuthors struct{}

	// CreateBook posts a new book.
	CreateBook struct{ Input domain.NewBook }
	// UpdateBook sends a partial book update.
	UpdateBook struct {
		ID    domain.ID
		Patch domain.BookPatch
	}
	// DeleteBooks removes books one at a time in the given order.
	DeleteBooks struct{ IDs []domain.ID }

	// CreateAuthor posts a new author.
	CreateAuthor struct{ Input domain.NewAuthor }
	// UpdateAuthor sends a partial author update.
	UpdateAuthor struct {
		ID    domain.ID
		Patch domain.AuthorPatch
	}
	// DeleteAuthors removes authors one at a time in the given order.
	DeleteAuthors struct{ IDs []domain.ID }

	// PersistDebug stores the debug flag.
	PersistDebug struct{ On bool }
	// ShowPage switches page after an action completes.
	ShowPage struct{ Page Page }
)

func (LoadHealth) effect()    {}
func (LoadBooks) effect()     {}
func (LoadAuthors) effect()   {}
func (CreateBook) effect()    {}
func (UpdateBook) effect()    {}
func (DeleteBooks) effect()   {}
func (CreateAuthor) effect()  {}
func (UpdateAuthor) effect()  {}
func (DeleteAuthors) effect() {}
func (PersistDebug) effect()  {}
func (ShowPage) effect()      {}
