package extract

import (
	"errors"
	"fmt"
)

// ErrOCRNotEnabled is returned when OCR is required but support was not
// compiled in. Rebuild with -tags ocr to enable it.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// FileTypeError reports an unsupported or undetectable document type.
type FileTypeError struct {
	Filename string
	Detected string // what detection concluded, if anything
}

func (e *FileTypeError) Error() string {
	if e.Detected != "" {
		return fmt.Sprintf("unsupported document type %q for %s", e.Detected, e.Filename)
	}
	return fmt.Sprintf("cannot determine document type of %s", e.Filename)
}

// ExtractionError reports a failure while extracting text from a document of
// a known type. It wraps the underlying cause.
type ExtractionError struct {
	Format string
	Op     string
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("%s extraction failed: %s: %v", e.Format, e.Op, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

func extractionErr(format, op string, err error) error {
	return &ExtractionError{Format: format, Op: op, Err: err}
}
