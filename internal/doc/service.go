// Package doc orchestrates document processing: format detection, text
// extraction, hierarchical structuring and pruning, behind one service used
// by every delivery surface.
package doc

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/alexvargashn/doc23/internal/extract"
	"github.com/alexvargashn/doc23/internal/schema"
	"github.com/alexvargashn/doc23/internal/tree"
)

// Service turns documents into structured trees. It is stateless per call:
// concurrent requests may share one Service.
type Service struct {
	opts   extract.Options
	logger *log.Logger
}

// NewService creates a document service with the given extraction options.
// The logger is an optional diagnostic sink; nil means silent.
func NewService(opts extract.Options, logger *log.Logger) *Service {
	return &Service{opts: opts, logger: logger}
}

// ExtractFile extracts plain text from a document on disk, dispatching on
// its extension and rejecting content whose magic bytes are unrecognizable.
func (s *Service) ExtractFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("cannot open document: %w", err)
	}
	defer f.Close()
	return s.Extract(f, path)
}

// Extract extracts plain text from a document supplied as a reader. The
// filename decides which extractor runs.
func (s *Service) Extract(r io.Reader, filename string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("cannot read document: %w", err)
	}
	if extract.DetectFormat(data) == extract.FormatUnknown {
		return "", &extract.FileTypeError{Filename: filename}
	}

	ex, err := extract.ForFile(filename, s.opts)
	if err != nil {
		return "", err
	}
	text, err := ex.Extract(bytes.NewReader(data), filename)
	if err != nil {
		return "", err
	}
	if s.logger != nil {
		s.logger.Printf("extracted %d bytes of text from %s", len(text), filename)
	}
	return text, nil
}

// Structure builds and prunes the hierarchy for already-extracted text.
func (s *Service) Structure(text string, sch *schema.Schema) (map[string]any, error) {
	root, err := tree.NewBuilderWithLogger(sch, s.logger).Build(text)
	if err != nil {
		return nil, err
	}
	return tree.Prune(root, sch), nil
}

// StructureFile extracts a document from disk and structures it in one step.
func (s *Service) StructureFile(path string, sch *schema.Schema) (map[string]any, error) {
	text, err := s.ExtractFile(path)
	if err != nil {
		return nil, err
	}
	return s.Structure(text, sch)
}

// StructureReader extracts a document from a reader and structures it.
func (s *Service) StructureReader(r io.Reader, filename string, sch *schema.Schema) (map[string]any, error) {
	text, err := s.Extract(r, filename)
	if err != nil {
		return nil, err
	}
	return s.Structure(text, sch)
}
