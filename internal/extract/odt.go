package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

// ODTExtractor handles ODT (OpenDocument Text) files: a ZIP container whose
// content.xml carries paragraphs and headings. Each text:p and text:h element
// becomes one output line; paragraphs are separated by blank lines.
type ODTExtractor struct{}

func (e *ODTExtractor) Extract(r io.Reader, filename string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", extractionErr("odt", "read", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", extractionErr("odt", "open container", err)
	}

	var content *zip.File
	for _, f := range zr.File {
		if f.Name == "content.xml" {
			content = f
			break
		}
	}
	if content == nil {
		return "", extractionErr("odt", "locate content.xml", errors.New("content.xml not found"))
	}

	rc, err := content.Open()
	if err != nil {
		return "", extractionErr("odt", "open content.xml", err)
	}
	defer rc.Close()

	blocks, err := odtTextBlocks(rc)
	if err != nil {
		return "", extractionErr("odt", "parse content.xml", err)
	}
	return strings.Join(blocks, "\n\n"), nil
}

// odtTextBlocks streams content.xml and collects the text of each paragraph
// and heading element in document order.
func odtTextBlocks(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)

	var blocks []string
	var current strings.Builder
	depth := 0 // nesting inside a text:p or text:h element

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if depth > 0 {
				depth++
				// text:tab and text:s expand to whitespace inside a block.
				switch t.Name.Local {
				case "tab":
					current.WriteByte('\t')
				case "s":
					current.WriteByte(' ')
				}
				continue
			}
			if t.Name.Local == "p" || t.Name.Local == "h" {
				depth = 1
				current.Reset()
			}
		case xml.EndElement:
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 {
				if text := strings.TrimSpace(current.String()); text != "" {
					blocks = append(blocks, text)
				}
			}
		case xml.CharData:
			if depth > 0 {
				current.Write(t)
			}
		}
	}
	return blocks, nil
}
