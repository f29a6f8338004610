// Package extract turns documents of various formats into plain text for the
// structuring engine. Each format has its own Extractor; dispatch happens by
// file extension with a magic-byte fallback.
package extract

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
)

// ScanMode controls how extractors treat potentially scanned content.
type ScanMode int

const (
	// ScanText extracts embedded text only; no OCR.
	ScanText ScanMode = iota
	// ScanOCR runs OCR on every page or image.
	ScanOCR
	// ScanAuto extracts embedded text and falls back to OCR for pages
	// that yield none.
	ScanAuto
)

// ParseScanMode converts the configuration strings "text", "ocr" and "auto".
func ParseScanMode(s string) (ScanMode, error) {
	switch strings.ToLower(s) {
	case "", "text":
		return ScanText, nil
	case "ocr":
		return ScanOCR, nil
	case "auto":
		return ScanAuto, nil
	default:
		return ScanText, fmt.Errorf("invalid scan mode %q (must be text, ocr or auto)", s)
	}
}

func (m ScanMode) String() string {
	switch m {
	case ScanOCR:
		return "ocr"
	case ScanAuto:
		return "auto"
	default:
		return "text"
	}
}

// Options configure extractor construction.
type Options struct {
	Mode        ScanMode
	OCRLanguage string // Tesseract language, e.g. "eng" or "eng+spa"
}

// Extractor converts raw document bytes into plain text, one line per
// document line, ready for the structuring engine.
type Extractor interface {
	Extract(r io.Reader, filename string) (string, error)
}

// SupportedExtensions lists the file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".txt":  true,
	".md":   true,
	".rtf":  true,
	".odt":  true,
	".html": true,
	".htm":  true,
	".pdf":  true,
	".docx": true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".tif":  true,
	".tiff": true,
	".bmp":  true,
}

// SupportedExtensionList returns the supported extensions in sorted order.
func SupportedExtensionList() []string {
	exts := make([]string, 0, len(SupportedExtensions))
	for ext := range SupportedExtensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// ForFile returns the extractor for a filename, dispatching on extension.
func ForFile(filename string, opts Options) (Extractor, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt":
		return &TextExtractor{}, nil
	case ".md", ".markdown":
		return &MarkdownExtractor{}, nil
	case ".rtf":
		return &RTFExtractor{}, nil
	case ".odt":
		return &ODTExtractor{}, nil
	case ".html", ".htm":
		return &HTMLExtractor{}, nil
	case ".pdf":
		return &PDFExtractor{Mode: opts.Mode, OCRLanguage: opts.OCRLanguage}, nil
	case ".docx":
		return &DOCXExtractor{}, nil
	case ".png", ".jpg", ".jpeg", ".tif", ".tiff", ".bmp":
		return &ImageExtractor{OCRLanguage: opts.OCRLanguage}, nil
	default:
		return nil, &FileTypeError{Filename: filename, Detected: filepath.Ext(filename)}
	}
}

// IsSupportedExtension reports whether a filename's extension is handled.
func IsSupportedExtension(filename string) bool {
	return SupportedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// Format identifies a detected document format.
type Format int

const (
	FormatUnknown Format = iota
	FormatPDF
	FormatZip // DOCX and ODT are ZIP containers
	FormatRTF
	FormatHTML
	FormatPNG
	FormatJPEG
	FormatTIFF
	FormatBMP
	FormatText
)

func (f Format) String() string {
	switch f {
	case FormatPDF:
		return "PDF"
	case FormatZip:
		return "ZIP"
	case FormatRTF:
		return "RTF"
	case FormatHTML:
		return "HTML"
	case FormatPNG:
		return "PNG"
	case FormatJPEG:
		return "JPEG"
	case FormatTIFF:
		return "TIFF"
	case FormatBMP:
		return "BMP"
	case FormatText:
		return "Text"
	default:
		return "Unknown"
	}
}

// DetectFormat inspects magic bytes to determine a document format. It is
// more reliable than extension dispatch and is used to reject mislabeled
// files before extraction.
func DetectFormat(data []byte) Format {
	if len(data) < 4 {
		return FormatUnknown
	}
	switch {
	case bytes.HasPrefix(data, []byte("%PDF")):
		return FormatPDF
	case bytes.HasPrefix(data, []byte{0x50, 0x4B, 0x03, 0x04}):
		return FormatZip
	case bytes.HasPrefix(data, []byte(`{\rtf`)):
		return FormatRTF
	case bytes.HasPrefix(data, []byte{0x89, 'P', 'N', 'G'}):
		return FormatPNG
	case bytes.HasPrefix(data, []byte{0xFF, 0xD8, 0xFF}):
		return FormatJPEG
	case bytes.HasPrefix(data, []byte("II*\x00")) || bytes.HasPrefix(data, []byte("MM\x00*")):
		return FormatTIFF
	case bytes.HasPrefix(data, []byte("BM")):
		return FormatBMP
	}
	head := bytes.ToLower(bytes.TrimLeft(data, " \t\r\n"))
	if bytes.HasPrefix(head, []byte("<!doctype")) || bytes.HasPrefix(head, []byte("<html")) {
		return FormatHTML
	}
	if isMostlyPrintable(data) {
		return FormatText
	}
	return FormatUnknown
}

func isMostlyPrintable(data []byte) bool {
	if len(data) > 512 {
		data = data[:512]
	}
	printable := 0
	for _, b := range data {
		if b == '\n' || b == '\r' || b == '\t' || (b >= 0x20 && b < 0x7F) || b >= 0x80 {
			printable++
		}
	}
	return printable*10 >= len(data)*9
}
