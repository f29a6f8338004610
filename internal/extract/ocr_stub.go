//go:build !ocr

package extract

// This is the stub used when the "ocr" build tag is not set. To enable OCR,
// rebuild with "-tags ocr"; this requires Tesseract to be installed
// (apt-get install tesseract-ocr, or brew install tesseract).

type ocrClient struct{}

func newOCRClient(language string) (*ocrClient, error) {
	return nil, ErrOCRNotEnabled
}

func (c *ocrClient) close() error { return nil }

func (c *ocrClient) recognize(imageData []byte) (string, error) {
	return "", ErrOCRNotEnabled
}
