//go:build ocr

package extract

import (
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// ocrClient wraps the Tesseract OCR engine via gosseract. It is only
// compiled in with the "ocr" build tag and requires Tesseract to be
// installed on the system.
type ocrClient struct {
	client *gosseract.Client
}

func newOCRClient(language string) (*ocrClient, error) {
	client := gosseract.NewClient()
	if language != "" {
		if err := client.SetLanguage(language); err != nil {
			client.Close()
			return nil, err
		}
	}
	return &ocrClient{client: client}, nil
}

func (c *ocrClient) close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// recognize performs OCR on image data (PNG, TIFF, JPEG, BMP).
func (c *ocrClient) recognize(imageData []byte) (string, error) {
	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return "", err
	}
	text, err := c.client.Text()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}
