package extract

import "io"

// ImageExtractor handles standalone image files (PNG, JPEG, TIFF, BMP) by
// running OCR on the whole image.
type ImageExtractor struct {
	OCRLanguage string
}

func (e *ImageExtractor) Extract(r io.Reader, filename string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", extractionErr("image", "read", err)
	}

	client, err := newOCRClient(e.OCRLanguage)
	if err != nil {
		return "", err
	}
	defer client.close()

	text, err := client.recognize(data)
	if err != nil {
		return "", extractionErr("image", "ocr", err)
	}
	return text, nil
}
