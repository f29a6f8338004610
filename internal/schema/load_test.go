package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jsonSchema = `{
  "root_name": "law",
  "sections_field": "sections",
  "levels": [
    {"name": "chapter", "pattern": "CHAPTER (\\d+)\\. (.+)", "title_field": "title"},
    {"name": "article", "pattern": "ARTICLE (\\d+)\\. (.+)", "title_field": "title",
     "paragraph_field": "paragraphs", "parent": "chapter", "leaf": true}
  ]
}`

const yamlSchema = `
root_name: law
levels:
  - name: chapter
    pattern: 'CHAPTER (\d+)\. (.+)'
    title_field: title
  - name: article
    pattern: 'ARTICLE (\d+)\. (.+)'
    title_field: title
    paragraph_field: paragraphs
    parent: chapter
    leaf: true
`

func TestParse_JSON(t *testing.T) {
	s, err := Parse([]byte(jsonSchema), "json")
	require.NoError(t, err)

	assert.Equal(t, "law", s.RootName())
	require.Equal(t, 2, s.Len())
	assert.Equal(t, "chapter", s.At(0).Name)
	assert.Equal(t, "article", s.At(1).Name)
	assert.Equal(t, "paragraphs", s.At(1).ParagraphField)
	assert.True(t, s.At(1).Leaf)
}

func TestParse_YAML(t *testing.T) {
	s, err := Parse([]byte(yamlSchema), "yaml")
	require.NoError(t, err)

	assert.Equal(t, "law", s.RootName())
	require.Equal(t, 2, s.Len())
	assert.Equal(t, "chapter", s.At(0).Name)
	assert.Equal(t, "chapter", s.At(1).Parent)
}

func TestParse_DeclarationOrderPreserved(t *testing.T) {
	// Declaration order is the classifier precedence order, so it must
	// survive a round trip through the serialized form.
	data := `{
  "root_name": "doc",
  "levels": [
    {"name": "z_last_alphabetically", "pattern": "Z(.+)", "title_field": "title"},
    {"name": "a_first_alphabetically", "pattern": "A(.+)", "title_field": "title", "parent": "z_last_alphabetically"}
  ]
}`
	s, err := Parse([]byte(data), "json")
	require.NoError(t, err)

	assert.Equal(t, "z_last_alphabetically", s.At(0).Name)
	assert.Equal(t, "a_first_alphabetically", s.At(1).Name)
}

func TestParse_InvalidSchemaRejected(t *testing.T) {
	data := `{"root_name": "doc", "levels": [{"name": "a", "pattern": "([", "title_field": "title"}]}`

	_, err := Parse([]byte(data), "json")
	require.Error(t, err)

	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestParse_MalformedInput(t *testing.T) {
	_, err := Parse([]byte("{not json"), "json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot parse JSON")

	_, err = Parse([]byte(":\n\t- bad"), "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot parse YAML")
}

func TestParse_UnsupportedFormat(t *testing.T) {
	_, err := Parse([]byte(jsonSchema), "toml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported schema format")
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "schema.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(jsonSchema), 0o644))

	yamlPath := filepath.Join(dir, "schema.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(yamlSchema), 0o644))

	s, err := LoadFile(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())

	s, err = LoadFile(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot read schema file")
}
