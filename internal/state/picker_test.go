package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/shelf/internal/domain"
)

var pickerAuthors = []domain.Author{
	{ID: 1, Name: "zadie Smith"},
	{ID: 2, Name: "Émile Zola"},
	{ID: 3, Name: "Albert Camus"},
}

func TestSortedAuthorsCollates(t *testing.T) {
	t.Parallel()

	sorted := SortedAuthors(pickerAuthors)
	names := make([]string, 0, len(sorted))
	for _, a := range sorted {
		names = append(names, a.Name)
	}
	assert.Equal(t, []string{"Albert Camus", "Émile Zola", "zadie Smith"}, names)
	assert.Equal(t, "zadie Smith", pickerAuthors[0].Name, "input is not reordered")
}

func TestEffective(t *testing.T) {
	t.Parallel()

	p := AuthorPicker{Mode: ModeSelect, SelectedID: 2, NewName: "ignored"}
	assert.Equal(t, "Émile Zola", p.Effective(pickerAuthors))

	p.SelectedID = 99
	assert.Equal(t, "ignored", p.Effective(pickerAuthors))

	p = AuthorPicker{Mode: ModeNew, SelectedID: 2, NewName: "  New Person "}
	assert.Equal(t, "New Person", p.Effective(pickerAuthors))
}

func TestReconcile(t *testing.T) {
	t.Parallel()

	p := AuthorPicker{Mode: ModeSelect}.Reconcile(nil)
	assert.Equal(t, ModeNew, p.Mode)

	p = AuthorPicker{Mode: ModeSelect, SelectedID: 42}.Reconcile(pickerAuthors)
	assert.Equal(t, domain.ID(3), p.SelectedID)

	p = AuthorPicker{Mode: ModeSelect, SelectedID: 1}.Reconcile(pickerAuthors)
	assert.Equal(t, domain.ID(1), p.SelectedID)

	p = AuthorPicker{Mode: ModeNew, NewName: "x"}.Reconcile(pickerAuthors)
	assert.Equal(t, ModeNew, p.Mode)
	assert.Equal(t, domain.ID(0), p.SelectedID)
}

func TestWithModeKeepsTypedName(t *testing.T) {
	t.Parallel()

	p := AuthorPicker{Mode: ModeNew, NewName: "Draft"}
	p = p.WithMode(ModeSelect, pickerAuthors)
	assert.Equal(t, domain.ID(3), p.SelectedID)
	assert.Equal(t, "Draft", p.NewName)

	p = p.WithMode(ModeNew, pickerAuthors)
	assert.Equal(t, domain.ID(0), p.SelectedID)
	assert.Equal(t, "Draft", p.Effective(pickerAuthors))
}

func TestStepClamps(t *testing.T) {
	t.Parallel()

	p := AuthorPicker{Mode: ModeSelect, SelectedID: 3}
	p = p.Step(1, pickerAuthors)
	assert.Equal(t, domain.ID(2), p.SelectedID)
	p = p.Step(5, pickerAuthors)
	assert.Equal(t, domain.ID(1), p.SelectedID)
	p = p.Step(-10, pickerAuthors)
	assert.Equal(t, domain.ID(3), p.SelectedID)

	newMode := AuthorPicker{Mode: ModeNew}.Step(1, pickerAuthors)
	assert.Equal(t, domain.ID(0), newMode.SelectedID)
}

func TestSelectIgnoresUnknownAuthor(t *testing.T) {
	t.Parallel()

	p := AuthorPicker{Mode: ModeNew}
	assert.Equal(t, p, p.Select(77, pickerAuthors))

	p = p.Select(1, pickerAuthors)
	assert.Equal(t, ModeSelect, p.Mode)
	assert.Equal(t, domain.ID(1), p.SelectedID)
}

func TestSeedPicker(t *testing.T) {
	t.Parallel()

	p := SeedPicker(" ALBERT camus", pickerAuthors)
	require.Equal(t, ModeSelect, p.Mode)
	assert.Equal(t, domain.ID(3), p.SelectedID)
	assert.Equal(t, "Albert Camus", p.Effective(pickerAuthors))

	p = SeedPicker("Unknown Writer", pickerAuthors)
	assert.Equal(t, ModeNew, p.Mode)
	assert.Equal(t, "Unknown Writer", p.NewName)
}
