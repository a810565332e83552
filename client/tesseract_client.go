package client

import (
	"fmt"
	"log"
	"os"

	"github.com/otiai10/gosseract/v2"
)

// TesseractClient runs Tesseract OCR over raster images. One instance is
// constructed at startup and shared across requests; each call spins up its
// own gosseract client, so no locking is needed.
type TesseractClient struct {
	dataPath string
}

func NewTesseractClient(dataPath string) *TesseractClient {
	return &TesseractClient{
		dataPath: dataPath,
	}
}

// ExtractText recognizes text from image bytes and returns it as ordered
// lines in reading order. An empty result is returned as-is; callers decide
// whether that is an error.
func (tc *TesseractClient) ExtractText(imageData []byte, ext string) (string, error) {
	tempFile, err := tc.createTempFile(imageData, ext)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tempFile)

	return tc.extractText(tempFile)
}

// createTempFile writes image bytes to a temporary file for Tesseract.
func (tc *TesseractClient) createTempFile(data []byte, ext string) (string, error) {
	tempFile, err := os.CreateTemp("", "ocr-*"+ext)
	if err != nil {
		return "", err
	}
	defer tempFile.Close()

	if _, err := tempFile.Write(data); err != nil {
		os.Remove(tempFile.Name())
		return "", err
	}

	return tempFile.Name(), nil
}

func (tc *TesseractClient) extractText(filePath string) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	client.SetTessdataPrefix(tc.dataPath)

	if err := client.SetLanguage("eng"); err != nil {
		return "", fmt.Errorf("failed to set language: %w", err)
	}

	if err := client.SetImage(filePath); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("failed to extract text: %w", err)
	}

	return text, nil
}

// Close performs cleanup
func (tc *TesseractClient) Close() {
	log.Println("Tesseract client closed")
}
