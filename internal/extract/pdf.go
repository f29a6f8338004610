package extract

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Minimum extracted length to consider a PDF's embedded text meaningful.
// Below this, a PDF with page images is treated as scanned.
const minMeaningfulTextLength = 50

// PDFExtractor handles PDF files. Embedded text is read with ledongthuc/pdf;
// scanned pages are exported as images with pdfcpu and run through OCR. Mode
// selects between text-only, OCR-only and per-page automatic fallback.
type PDFExtractor struct {
	Mode        ScanMode
	OCRLanguage string
}

func (e *PDFExtractor) Extract(r io.Reader, filename string) (string, error) {
	// ledongthuc/pdf and pdfcpu both want a file path, so spool to disk.
	path, cleanup, err := spoolTemp(r, "doc23-pdf-*.pdf")
	if err != nil {
		return "", extractionErr("pdf", "spool", err)
	}
	defer cleanup()

	switch e.Mode {
	case ScanOCR:
		return e.extractOCR(path)
	case ScanAuto:
		return e.extractAuto(path)
	default:
		text, err := extractPDFText(path)
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(text) == "" {
			return "", extractionErr("pdf", "extract", fmt.Errorf("no text content in %s", filename))
		}
		return text, nil
	}
}

// NeedsOCR reports whether a PDF looks scanned: its embedded text is below
// the meaningful threshold while its pages carry images. This is the "auto"
// predicate; callers may substitute their own policy by choosing the mode.
func NeedsOCR(path string) (bool, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return false, extractionErr("pdf", "open", err)
	}
	defer f.Close()

	var text strings.Builder
	images := 0
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		if content, err := page.GetPlainText(nil); err == nil {
			text.WriteString(content)
		}
		images += countPageImages(reader, pageNum)
	}
	return len(strings.TrimSpace(text.String())) < minMeaningfulTextLength && images > 0, nil
}

// extractPDFText reads embedded text page by page.
func extractPDFText(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", extractionErr("pdf", "open", err)
	}
	defer f.Close()

	var pages []string
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			// Keep going; a single malformed page should not sink the rest.
			continue
		}
		if content = strings.TrimSpace(content); content != "" {
			pages = append(pages, content)
		}
	}
	return strings.Join(pages, "\n"), nil
}

// extractOCR exports every page's images and runs OCR over them in page
// order.
func (e *PDFExtractor) extractOCR(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", extractionErr("pdf", "open", err)
	}
	pageCount := reader.NumPage()
	f.Close()

	client, err := newOCRClient(e.OCRLanguage)
	if err != nil {
		return "", err
	}
	defer client.close()

	var pages []string
	for pageNum := 1; pageNum <= pageCount; pageNum++ {
		text, err := e.ocrPage(client, path, pageNum)
		if err != nil {
			return "", err
		}
		if text != "" {
			pages = append(pages, text)
		}
	}
	return strings.Join(pages, "\n"), nil
}

// extractAuto reads embedded text per page and falls back to OCR only for
// pages that yield none.
func (e *PDFExtractor) extractAuto(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", extractionErr("pdf", "open", err)
	}
	defer f.Close()

	var client *ocrClient
	defer func() {
		if client != nil {
			client.close()
		}
	}()

	var pages []string
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err == nil {
			content = strings.TrimSpace(content)
		}
		if content != "" {
			pages = append(pages, content)
			continue
		}
		if countPageImages(reader, pageNum) == 0 {
			continue
		}
		if client == nil {
			if client, err = newOCRClient(e.OCRLanguage); err != nil {
				return "", err
			}
		}
		text, err := e.ocrPage(client, path, pageNum)
		if err != nil {
			return "", err
		}
		if text != "" {
			pages = append(pages, text)
		}
	}
	return strings.Join(pages, "\n"), nil
}

// ocrPage exports one page's images with pdfcpu and OCRs each in turn.
func (e *PDFExtractor) ocrPage(client *ocrClient, path string, pageNum int) (string, error) {
	outDir, err := os.MkdirTemp("", "doc23-pdf-images-")
	if err != nil {
		return "", extractionErr("pdf", "create image dir", err)
	}
	defer os.RemoveAll(outDir)

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	pages := []string{strconv.Itoa(pageNum)}
	if err := api.ExtractImagesFile(path, outDir, pages, conf); err != nil {
		return "", extractionErr("pdf", fmt.Sprintf("extract images from page %d", pageNum), err)
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		return "", extractionErr("pdf", "read image dir", err)
	}

	var parts []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(outDir, entry.Name()))
		if err != nil {
			return "", extractionErr("pdf", "read image", err)
		}
		text, err := client.recognize(data)
		if err != nil {
			return "", extractionErr("pdf", fmt.Sprintf("ocr page %d", pageNum), err)
		}
		if text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n"), nil
}

// countPageImages counts image XObjects on a page. Extraction oddities on a
// single page must not sink the scan, hence the recover.
func countPageImages(reader *pdf.Reader, pageNum int) (count int) {
	defer func() {
		if recover() != nil {
			count = 0
		}
	}()

	page := reader.Page(pageNum)
	if page.V.IsNull() {
		return 0
	}
	resources := page.V.Key("Resources")
	if resources.IsNull() {
		return 0
	}
	xObjects := resources.Key("XObject")
	if xObjects.IsNull() || xObjects.Kind() != pdf.Dict {
		return 0
	}
	for _, key := range xObjects.Keys() {
		obj := xObjects.Key(key)
		if obj.IsNull() {
			continue
		}
		if subtype := obj.Key("Subtype"); !subtype.IsNull() && subtype.Name() == "Image" {
			count++
		}
	}
	return count
}

// spoolTemp writes a reader to a temp file and returns its path plus a
// cleanup function.
func spoolTemp(r io.Reader, pattern string) (string, func(), error) {
	tmp, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", nil, err
	}
	path := tmp.Name()
	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(path)
		return "", nil, err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(path)
		return "", nil, err
	}
	return path, func() { os.Remove(path) }, nil
}
