package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/shelf/internal/api"
	"github.com/alexisbeaulieu97/shelf/internal/domain"
	"github.com/alexisbeaulieu97/shelf/internal/sorting"
)

var bookResource = resource[domain.Book]{
	kind:    domain.KindBook,
	columns: sorting.BookColumns,
	headers: []string{"ID", "TITLE", "AUTHOR"},
	cells: func(b domain.Book) []string {
		return []string{b.ID.String(), valueOrFallback(b.Title, "(untitled)"), valueOrFallback(b.Author, "(unknown)")}
	},
	list: func(c *api.Client, ctx context.Context) ([]domain.Book, error) {
		return c.ListBooks(ctx)
	},
	get: func(c *api.Client, ctx context.Context, id domain.ID) (domain.Book, error) {
		return c.GetBook(ctx, id)
	},
	remove: func(c *api.Client) api.DeleteFunc {
		return c.DeleteBook
	},
}

func newBooksCmd(app *appContext) *cobra.Command {
	return newResourceCmd(app, bookResource)
}
