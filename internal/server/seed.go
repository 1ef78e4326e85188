package server

import (
	"context"
	"errors"

	"github.com/alexisbeaulieu97/shelf/internal/domain"
	shelferrors "github.com/alexisbeaulieu97/shelf/pkg/errors"
)

// SeedAuthors and SeedBooks are the sample catalogue loaded by Seed.
var (
	SeedAuthors = []string{
		"Ursula K. Le Guin",
		"Octavia E. Butler",
		"Frank Herbert",
		"Mary Shelley",
	}

	SeedBooks = []domain.NewBook{
		{Title: "A Wizard of Earthsea", Author: "Ursula K. Le Guin"},
		{Title: "The Left Hand of Darkness", Author: "Ursula K. Le Guin"},
		{Title: "Kindred", Author: "Octavia E. Butler"},
		{Title: "Dune", Author: "Frank Herbert"},
		{Title: "Frankenstein", Author: "Mary Shelley"},
	}
)

// Seed inserts the sample catalogue. Entries that already exist are skipped.
func Seed(ctx context.Context, library *Library) error {
	for _, name := range SeedAuthors {
		if _, err := library.CreateAuthor(ctx, domain.NewAuthor{Name: name}); err != nil && !isConflict(err) {
			return err
		}
	}
	for _, book := range SeedBooks {
		if _, err := library.CreateBook(ctx, book); err != nil && !isConflict(err) {
			return err
		}
	}
	return nil
}

func isConflict(err error) bool {
	var conflict *shelferrors.ConflictError
	return errors.As(err, &conflict)
}
