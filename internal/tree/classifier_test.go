package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexvargashn/doc23/internal/schema"
)

func mustSchema(t *testing.T, levels []schema.Level) *schema.Schema {
	t.Helper()
	s, err := schema.New("document", "", "", levels)
	require.NoError(t, err)
	return s
}

func TestClassify(t *testing.T) {
	s := mustSchema(t, []schema.Level{
		{Name: "chapter", Pattern: `CHAPTER (\d+)`, TitleField: "title"},
		{Name: "article", Pattern: `ARTICLE (\d+)\. (.+)`, TitleField: "title", Parent: "chapter"},
	})

	m, ok := Classify(s, "CHAPTER 3")
	require.True(t, ok)
	assert.Equal(t, "chapter", m.Level.Name)
	assert.Equal(t, []string{"3"}, m.Groups)

	m, ok = Classify(s, "ARTICLE 12. Due process.")
	require.True(t, ok)
	assert.Equal(t, "article", m.Level.Name)
	assert.Equal(t, []string{"12", "Due process."}, m.Groups)

	_, ok = Classify(s, "Just some body text.")
	assert.False(t, ok)
}

func TestClassify_DeclarationOrderTieBreak(t *testing.T) {
	// Both patterns match the same line; the level declared first always
	// wins, whatever its position in the hierarchy.
	s := mustSchema(t, []schema.Level{
		{Name: "broad", Pattern: `SECTION .+`, TitleField: "title"},
		{Name: "narrow", Pattern: `SECTION (\d+)`, TitleField: "title", Parent: "broad"},
	})

	m, ok := Classify(s, "SECTION 4")
	require.True(t, ok)
	assert.Equal(t, "broad", m.Level.Name)

	// Reversing the declaration reverses the winner.
	s = mustSchema(t, []schema.Level{
		{Name: "narrow", Pattern: `SECTION (\d+)`, TitleField: "title"},
		{Name: "broad", Pattern: `SECTION .+`, TitleField: "title", Parent: "narrow"},
	})

	m, ok = Classify(s, "SECTION 4")
	require.True(t, ok)
	assert.Equal(t, "narrow", m.Level.Name)
}

func TestClassify_WholeLineOnly(t *testing.T) {
	s := mustSchema(t, []schema.Level{
		{Name: "chapter", Pattern: `CHAPTER (\d+)`, TitleField: "title"},
	})

	_, ok := Classify(s, "as stated in CHAPTER 2 above")
	assert.False(t, ok, "markers embedded in body text must not classify")
}
