package doc

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexvargashn/doc23/internal/extract"
	"github.com/alexvargashn/doc23/internal/schema"
	"github.com/alexvargashn/doc23/internal/tree"
)

func lawSchema(t *testing.T) *schema.Schema {
	t.Helper()
	s, err := schema.New("document", "", "", []schema.Level{
		{Name: "chapter", Pattern: `CHAPTER (\d+)`, TitleField: "title"},
		{
			Name:           "article",
			Pattern:        `ARTICLE (\d+)\. (.+)`,
			TitleField:     "title",
			ParagraphField: "paragraphs",
			Parent:         "chapter",
			Leaf:           true,
		},
	})
	require.NoError(t, err)
	return s
}

const lawText = "CHAPTER 1\n" +
	"ARTICLE 1. Title one.\n" +
	"Some body text.\n" +
	"\n" +
	"Second paragraph.\n" +
	"CHAPTER 2\n" +
	"ARTICLE 1. Other chapter's article.\n"

func TestService_Structure(t *testing.T) {
	svc := NewService(extract.Options{}, nil)

	out, err := svc.Structure(lawText, lawSchema(t))
	require.NoError(t, err)

	doc := out["document"].(map[string]any)
	chapters := doc["sections"].([]any)
	require.Len(t, chapters, 2)

	art := chapters[0].(map[string]any)["sections"].([]any)[0].(map[string]any)
	assert.Equal(t, []any{"Some body text.", "Second paragraph."}, art["paragraphs"])
}

func TestService_Structure_OrphanFails(t *testing.T) {
	svc := NewService(extract.Options{}, nil)

	out, err := svc.Structure("ARTICLE 1. Orphan.\n", lawSchema(t))
	require.Error(t, err)
	assert.Nil(t, out)

	var structErr *tree.StructureError
	assert.ErrorAs(t, err, &structErr)
}

func TestService_StructureFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "law.txt")
	require.NoError(t, os.WriteFile(path, []byte(lawText), 0o644))

	svc := NewService(extract.Options{}, nil)
	out, err := svc.StructureFile(path, lawSchema(t))
	require.NoError(t, err)
	require.Contains(t, out, "document")
}

func TestService_StructureFile_Missing(t *testing.T) {
	svc := NewService(extract.Options{}, nil)

	_, err := svc.StructureFile(filepath.Join(t.TempDir(), "absent.txt"), lawSchema(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot open document")
}

func TestService_Extract(t *testing.T) {
	svc := NewService(extract.Options{}, nil)

	text, err := svc.Extract(strings.NewReader("hello\nworld\n"), "notes.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello\nworld", text)
}

func TestService_Extract_UnknownContent(t *testing.T) {
	svc := NewService(extract.Options{}, nil)

	binary := []byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07}
	_, err := svc.Extract(bytes.NewReader(binary), "mystery.txt")
	require.Error(t, err)

	var typeErr *extract.FileTypeError
	assert.ErrorAs(t, err, &typeErr)
}

func TestService_Extract_UnsupportedExtension(t *testing.T) {
	svc := NewService(extract.Options{}, nil)

	_, err := svc.Extract(strings.NewReader("plain text"), "notes.xyz")
	require.Error(t, err)

	var typeErr *extract.FileTypeError
	assert.ErrorAs(t, err, &typeErr)
}

func TestService_StructureReader(t *testing.T) {
	svc := NewService(extract.Options{}, nil)

	out, err := svc.StructureReader(strings.NewReader(lawText), "law.txt", lawSchema(t))
	require.NoError(t, err)
	require.Contains(t, out, "document")
}

func TestService_LoggerReceivesProgress(t *testing.T) {
	var buf bytes.Buffer
	svc := NewService(extract.Options{}, log.New(&buf, "", 0))

	_, err := svc.StructureReader(strings.NewReader(lawText), "law.txt", lawSchema(t))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "extracted")
	assert.Contains(t, buf.String(), "opened chapter")
}
