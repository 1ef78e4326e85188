package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/shelf/internal/api"
	"github.com/alexisbeaulieu97/shelf/internal/domain"
	"github.com/alexisbeaulieu97/shelf/internal/sorting"
)

// resource describes how the headless commands read and remove one kind of
// record.
type resource[T domain.Entity] struct {
	kind    domain.Kind
	columns map[string]sorting.Column[T]
	headers []string
	cells   func(T) []string
	list    func(c *api.Client, ctx context.Context) ([]T, error)
	get     func(c *api.Client, ctx context.Context, id domain.ID) (T, error)
	remove  func(c *api.Client) api.DeleteFunc
}

type listOptions struct {
	jsonOutput bool
	sortKey    string
	descending bool
}

type getOptions struct {
	jsonOutput bool
}

type deleteOptions struct {
	force bool
}

type listJSONPayload[T any] struct {
	Version string `json:"version"`
	Count   int    `json:"count"`
	Items   []T    `json:"items"`
}

func newResourceCmd[T domain.Entity](app *appContext, res resource[T]) *cobra.Command {
	plural := res.kind.Plural()

	cmd := &cobra.Command{
		Use:   plural,
		Short: fmt.Sprintf("List, show and delete %s", plural),
	}

	cmd.AddCommand(newResourceListCmd(app, res))
	cmd.AddCommand(newResourceGetCmd(app, res))
	cmd.AddCommand(newResourceDeleteCmd(app, res))

	return cmd
}

func newResourceListCmd[T domain.Entity](app *appContext, res resource[T]) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List %s", res.kind.Plural()),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResourceList(cmd, app, res, opts)
		},
	}

	keys := sortKeys(res.columns)
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")
	cmd.Flags().StringVar(&opts.sortKey, "sort", sorting.ColumnID, fmt.Sprintf("Column to sort by (%s)", strings.Join(keys, ", ")))
	cmd.Flags().BoolVar(&opts.descending, "desc", false, "Sort in descending order")

	return cmd
}

func runResourceList[T domain.Entity](cmd *cobra.Command, app *appContext, res resource[T], opts *listOptions) error {
	plural := res.kind.Plural()
	operation := "list " + plural

	if _, ok := res.columns[opts.sortKey]; !ok {
		return newCommandError(operation, "validating --sort", fmt.Errorf("unknown column %q", opts.sortKey),
			fmt.Sprintf("Use one of: %s.", strings.Join(sortKeys(res.columns), ", ")))
	}
	spec := sorting.Spec{Key: opts.sortKey, Direction: sorting.Ascending}
	if opts.descending {
		spec.Direction = sorting.Descending
	}

	log, err := app.logger(cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	items, err := res.list(app.client(log), cmd.Context())
	if err != nil {
		return newCommandError(operation, "fetching "+plural, err, backendSuggestion(app))
	}
	items = sorting.Apply(items, spec, res.columns)
	if items == nil {
		items = []T{}
	}

	if opts.jsonOutput {
		return renderJSON(cmd.OutOrStdout(), listJSONPayload[T]{
			Version: "1.0",
			Count:   len(items),
			Items:   items,
		})
	}

	if len(items) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No %s yet.\n", plural)
		fmt.Fprintln(cmd.OutOrStdout(), "\nRun 'shelf' to create one from the admin screens.")
		return nil
	}

	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, strings.Join(res.headers, "\t"))
	for _, item := range items {
		fmt.Fprintln(writer, strings.Join(res.cells(item), "\t"))
	}
	return writer.Flush()
}

func newResourceGetCmd[T domain.Entity](app *appContext, res resource[T]) *cobra.Command {
	opts := &getOptions{}

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: fmt.Sprintf("Show a single %s", res.kind),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResourceGet(cmd, app, res, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

func runResourceGet[T domain.Entity](cmd *cobra.Command, app *appContext, res resource[T], raw string, opts *getOptions) error {
	operation := "show " + string(res.kind)

	id, err := parseID(raw)
	if err != nil {
		return newCommandError(operation, "parsing id", err, "Provide a positive numeric id.")
	}

	log, err := app.logger(cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	item, err := res.get(app.client(log), cmd.Context(), id)
	if err != nil {
		suggestion := backendSuggestion(app)
		if api.IsStatus(err, http.StatusNotFound) {
			suggestion = fmt.Sprintf("Run 'shelf %s list' to see existing ids.", res.kind.Plural())
		}
		return newCommandError(operation, fmt.Sprintf("fetching %s #%s", res.kind, id), err, suggestion)
	}

	if opts.jsonOutput {
		return renderJSON(cmd.OutOrStdout(), item)
	}

	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for i, cell := range res.cells(item) {
		fmt.Fprintf(writer, "%s:\t%s\n", fieldLabel(res.headers[i]), cell)
	}
	return writer.Flush()
}

func newResourceDeleteCmd[T domain.Entity](app *appContext, res resource[T]) *cobra.Command {
	opts := &deleteOptions{}

	cmd := &cobra.Command{
		Use:   "delete <id> [id...]",
		Short: fmt.Sprintf("Delete one or more %s", res.kind.Plural()),
		Long: fmt.Sprintf(`Delete %s one at a time, in the order given.

A failed deletion is reported and the remaining ids are still attempted.`, res.kind.Plural()),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResourceDelete(cmd, app, res, args, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "Delete without confirmation")

	return cmd
}

func runResourceDelete[T domain.Entity](cmd *cobra.Command, app *appContext, res resource[T], args []string, opts *deleteOptions) error {
	operation := "delete " + res.kind.Plural()

	ids, err := parseIDs(args)
	if err != nil {
		return newCommandError(operation, "parsing ids", err, "Provide positive numeric ids.")
	}

	if !opts.force {
		confirmed, err := confirmDelete(cmd, res.kind, ids)
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return nil
		}
	}

	log, err := app.logger(cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	out := cmd.OutOrStdout()
	useUnicode := supportsUnicode(out)
	tally := api.DeleteSequentially(cmd.Context(), ids, res.remove(app.client(log)), func(id domain.ID, err error) {
		fmt.Fprintf(out, "%s %s #%s: %s\n", failMark(useUnicode), res.kind.Label(), id, api.Message(err, "delete failed"))
	})

	if tally.OK > 0 {
		fmt.Fprintf(out, "%s Deleted %s\n", okMark(useUnicode), countNoun(tally.OK, res.kind))
	}
	if tally.Failed > 0 {
		return newCommandError(operation, fmt.Sprintf("%d of %d deletions failed", tally.Failed, len(ids)),
			errors.New("some records were not deleted"),
			fmt.Sprintf("Run 'shelf %s list' to check what remains.", res.kind.Plural()))
	}
	return nil
}

func confirmDelete(cmd *cobra.Command, kind domain.Kind, ids []domain.ID) (bool, error) {
	if !isTerminal(cmd.InOrStdin()) {
		return false, newCommandError("delete "+kind.Plural(), "prompting for confirmation", errors.New("not a terminal"), "Use --force when running in non-interactive environments.")
	}

	labels := make([]string, len(ids))
	for i, id := range ids {
		labels[i] = "#" + id.String()
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Delete %s (%s)? This cannot be undone. [y/N]: ", countNoun(len(ids), kind), strings.Join(labels, ", "))

	scanner := bufio.NewScanner(cmd.InOrStdin())
	if !scanner.Scan() {
		return false, scanner.Err()
	}

	answer := strings.TrimSpace(strings.ToLower(scanner.Text()))
	return answer == "y" || answer == "yes", nil
}

func parseID(raw string) (domain.ID, error) {
	value, err := strconv.ParseInt(strings.TrimPrefix(strings.TrimSpace(raw), "#"), 10, 64)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return domain.ID(value), nil
}

// parseIDs parses every argument and drops repeats, keeping first-seen order.
func parseIDs(args []string) ([]domain.ID, error) {
	ids := make([]domain.ID, 0, len(args))
	for _, raw := range args {
		id, err := parseID(raw)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func renderJSON(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

func sortKeys[T any](columns map[string]sorting.Column[T]) []string {
	keys := make([]string, 0, len(columns))
	for key := range columns {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

func backendSuggestion(app *appContext) string {
	return fmt.Sprintf("Check that the backend is running at %s, or pass --api-url.", app.cfg.APIURL)
}

func countNoun(n int, kind domain.Kind) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", kind)
	}
	return fmt.Sprintf("%d %s", n, kind.Plural())
}

func fieldLabel(header string) string {
	lower := strings.ToLower(header)
	if lower == "id" {
		return "ID"
	}
	return strings.ToUpper(lower[:1]) + lower[1:]
}

func valueOrFallback(value, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	return trimmed
}

func okMark(useUnicode bool) string {
	if useUnicode {
		return "✓"
	}
	return "[OK]"
}

func failMark(useUnicode bool) string {
	if useUnicode {
		return "✗"
	}
	return "[XX]"
}

func supportsUnicode(writer any) bool {
	if file, ok := writer.(*os.File); ok {
		return termIsTerminal(int(file.Fd()))
	}
	return false
}

func isTerminal(reader any) bool {
	if file, ok := reader.(*os.File); ok {
		return termIsTerminal(int(file.Fd()))
	}
	return false
}

var termIsTerminal = func(fd int) bool {
	return term.IsTerminal(fd)
}
