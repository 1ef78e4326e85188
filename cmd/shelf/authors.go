package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/shelf/internal/api"
	"github.com/alexisbeaulieu97/shelf/internal/domain"
	"github.com/alexisbeaulieu97/shelf/internal/sorting"
)

var authorResource = resource[domain.Author]{
	kind:    domain.KindAuthor,
	columns: sorting.AuthorColumns,
	headers: []string{"ID", "NAME"},
	cells: func(a domain.Author) []string {
		return []string{a.ID.String(), valueOrFallback(a.Name, "(unnamed)")}
	},
	list: func(c *api.Client, ctx context.Context) ([]domain.Author, error) {
		return c.ListAuthors(ctx)
	},
	get: func(c *api.Client, ctx context.Context, id domain.ID) (domain.Author, error) {
		return c.GetAuthor(ctx, id)
	},
	remove: func(c *api.Client) api.DeleteFunc {
		return c.DeleteAuthor
	},
}

// Deleting an author leaves books that carry its name untouched.
func newAuthorsCmd(app *appContext) *cobra.Command {
	return newResourceCmd(app, authorResource)
}
