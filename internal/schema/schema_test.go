package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func legalLevels() []Level {
	return []Level{
		{
			Name:       "chapter",
			Pattern:    `CHAPTER (\d+)\. (.+)`,
			TitleField: "title",
		},
		{
			Name:           "article",
			Pattern:        `ARTICLE (\d+)\. (.+)`,
			TitleField:     "title",
			ParagraphField: "paragraphs",
			Parent:         "chapter",
			Leaf:           true,
		},
	}
}

func TestNew(t *testing.T) {
	s, err := New("document", "", "", legalLevels())
	require.NoError(t, err)
	require.NotNil(t, s)

	assert.Equal(t, "document", s.RootName())
	assert.Equal(t, "sections", s.SectionsField())
	assert.Equal(t, "description", s.DescriptionField())
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, "chapter", s.At(0).Name)
	assert.Equal(t, "article", s.At(1).Name)
}

func TestNew_CustomFieldDefaults(t *testing.T) {
	s, err := New("law", "children", "summary", legalLevels())
	require.NoError(t, err)

	assert.Equal(t, "children", s.SectionsField())
	assert.Equal(t, "summary", s.DescriptionField())
}

func TestNew_EmptyRootName(t *testing.T) {
	_, err := New("", "", "", legalLevels())
	require.Error(t, err)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Reason, "root name")
}

func TestNew_NoLevels(t *testing.T) {
	_, err := New("document", "", "", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one level")
}

func TestNew_DuplicateLevelName(t *testing.T) {
	levels := legalLevels()
	levels[1].Name = "chapter"

	_, err := New("document", "", "", levels)
	require.Error(t, err)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "chapter", cfgErr.Level)
	assert.Contains(t, cfgErr.Reason, "duplicate")
}

func TestValidate_UnknownParent(t *testing.T) {
	levels := legalLevels()
	levels[1].Parent = "missing"

	_, err := New("document", "", "", levels)
	require.Error(t, err)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "article", cfgErr.Level)
	assert.Contains(t, cfgErr.Reason, `unknown parent "missing"`)
}

func TestValidate_CyclicHierarchy(t *testing.T) {
	levels := []Level{
		{Name: "a", Pattern: "A", TitleField: "title", Parent: "b"},
		{Name: "b", Pattern: "B", TitleField: "title", Parent: "a"},
		{Name: "root", Pattern: "R", TitleField: "title"},
	}

	_, err := New("document", "", "", levels)
	require.Error(t, err)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Reason, "cyclic")
}

func TestValidate_EveryLevelParented(t *testing.T) {
	// When every level declares a parent the graph necessarily cycles.
	levels := []Level{
		{Name: "a", Pattern: "A", TitleField: "title", Parent: "a"},
	}

	_, err := New("document", "", "", levels)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cyclic")
}

func TestValidate_InvalidPattern(t *testing.T) {
	levels := legalLevels()
	levels[0].Pattern = "(["

	_, err := New("document", "", "", levels)
	require.Error(t, err)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "chapter", cfgErr.Level)
	assert.Contains(t, cfgErr.Reason, "invalid pattern")
}

func TestValidate_ReferenceCheckedBeforePattern(t *testing.T) {
	// A schema broken in two ways reports the reference problem first.
	levels := []Level{
		{Name: "root", Pattern: "R", TitleField: "title"},
		{Name: "bad", Pattern: "([", TitleField: "title", Parent: "ghost"},
	}

	_, err := New("document", "", "", levels)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown parent")
}

func TestValidate_TitleFieldRequired(t *testing.T) {
	levels := legalLevels()
	levels[0].TitleField = ""

	_, err := New("document", "", "", levels)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "title field")
}

func TestValidate_FieldCollision(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Level)
	}{
		{
			name: "title collides with paragraph field",
			mutate: func(lv *Level) {
				lv.ParagraphField = lv.TitleField
			},
		},
		{
			name: "description collides with paragraph field",
			mutate: func(lv *Level) {
				lv.DescriptionField = "body"
				lv.ParagraphField = "body"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			levels := legalLevels()
			tt.mutate(&levels[1])

			_, err := New("document", "", "", levels)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "field collision")
		})
	}
}

func TestRegexp_WholeLineAnchoring(t *testing.T) {
	s, err := New("document", "", "", legalLevels())
	require.NoError(t, err)

	re := s.Regexp(0)
	assert.True(t, re.MatchString("CHAPTER 1. General provisions"))
	assert.False(t, re.MatchString("see CHAPTER 1. General provisions"),
		"a level marker inside body text must not match")
	assert.False(t, re.MatchString("CHAPTER 1. General provisions and more\nnext line"))
}

func TestLookup(t *testing.T) {
	s, err := New("document", "", "", legalLevels())
	require.NoError(t, err)

	lv, ok := s.Lookup("article")
	require.True(t, ok)
	assert.Equal(t, "chapter", lv.Parent)
	assert.True(t, lv.Leaf)

	_, ok = s.Lookup("missing")
	assert.False(t, ok)
}
