package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScanMode(t *testing.T) {
	tests := []struct {
		input   string
		want    ScanMode
		wantErr bool
	}{
		{"text", ScanText, false},
		{"ocr", ScanOCR, false},
		{"auto", ScanAuto, false},
		{"TEXT", ScanText, false},
		{"", ScanText, false},
		{"magic", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			mode, err := ParseScanMode(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, mode)
		})
	}
}

func TestForFile(t *testing.T) {
	tests := []struct {
		filename string
		want     any
	}{
		{"doc.txt", &TextExtractor{}},
		{"doc.md", &MarkdownExtractor{}},
		{"doc.rtf", &RTFExtractor{}},
		{"doc.odt", &ODTExtractor{}},
		{"doc.html", &HTMLExtractor{}},
		{"doc.HTM", &HTMLExtractor{}},
		{"doc.pdf", &PDFExtractor{}},
		{"doc.docx", &DOCXExtractor{}},
		{"scan.png", &ImageExtractor{}},
		{"scan.jpeg", &ImageExtractor{}},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			ex, err := ForFile(tt.filename, Options{})
			require.NoError(t, err)
			assert.IsType(t, tt.want, ex)
		})
	}
}

func TestForFile_Unsupported(t *testing.T) {
	_, err := ForFile("archive.tar.gz", Options{})
	require.Error(t, err)

	var typeErr *FileTypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, "archive.tar.gz", typeErr.Filename)
}

func TestForFile_CarriesOptions(t *testing.T) {
	ex, err := ForFile("scan.pdf", Options{Mode: ScanAuto, OCRLanguage: "spa"})
	require.NoError(t, err)

	pdfEx, ok := ex.(*PDFExtractor)
	require.True(t, ok)
	assert.Equal(t, ScanAuto, pdfEx.Mode)
	assert.Equal(t, "spa", pdfEx.OCRLanguage)
}

func TestIsSupportedExtension(t *testing.T) {
	assert.True(t, IsSupportedExtension("a.pdf"))
	assert.True(t, IsSupportedExtension("A.DOCX"))
	assert.False(t, IsSupportedExtension("a.exe"))
	assert.False(t, IsSupportedExtension("noextension"))
}

func TestSupportedExtensionList(t *testing.T) {
	exts := SupportedExtensionList()
	assert.Len(t, exts, len(SupportedExtensions))
	assert.Contains(t, exts, ".pdf")
	assert.IsIncreasing(t, exts)
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"pdf", []byte("%PDF-1.7\n%binary"), FormatPDF},
		{"zip container", []byte{0x50, 0x4B, 0x03, 0x04, 0x00, 0x00}, FormatZip},
		{"rtf", []byte(`{\rtf1\ansi hello}`), FormatRTF},
		{"png", []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}, FormatPNG},
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10}, FormatJPEG},
		{"tiff little endian", []byte("II*\x00rest"), FormatTIFF},
		{"tiff big endian", []byte("MM\x00*rest"), FormatTIFF},
		{"bmp", []byte("BM\x36\x00\x00\x00"), FormatBMP},
		{"html doctype", []byte("  <!DOCTYPE html><html></html>"), FormatHTML},
		{"html tag", []byte("<html><body></body></html>"), FormatHTML},
		{"plain text", []byte("CHAPTER 1\nARTICLE 1. Scope.\n"), FormatText},
		{"binary garbage", []byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07}, FormatUnknown},
		{"too short", []byte("ab"), FormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectFormat(tt.data))
		})
	}
}

func TestFormatString(t *testing.T) {
	assert.Equal(t, "PDF", FormatPDF.String())
	assert.Equal(t, "Text", FormatText.String())
	assert.Equal(t, "Unknown", FormatUnknown.String())
}
