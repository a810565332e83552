package service

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"log"
	"strings"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"

	"github.com/devanshsoni/ocr-document-verification/dto"
	"github.com/devanshsoni/ocr-document-verification/utils"
)

// OCRClient recognizes text from raster image bytes. Injected so tests can
// substitute a fake instead of a live Tesseract install.
type OCRClient interface {
	ExtractText(imageData []byte, ext string) (string, error)
}

// DocumentService runs the extraction and verification pipeline: document
// bytes → image(s) → OCR → normalize → field extraction → cleanup. All state
// is request-scoped; the service itself only holds read-only collaborators.
type DocumentService struct {
	ocrClient      OCRClient
	pdfProcessor   PDFProcessor
	llmExtractor   *LLMExtractor
	matchThreshold float64
}

func NewDocumentService(
	ocrClient OCRClient,
	pdfProcessor PDFProcessor,
	llmExtractor *LLMExtractor,
	matchThreshold float64,
) *DocumentService {
	return &DocumentService{
		ocrClient:      ocrClient,
		pdfProcessor:   pdfProcessor,
		llmExtractor:   llmExtractor,
		matchThreshold: matchThreshold,
	}
}

// Extract produces a structured record from an uploaded document.
func (s *DocumentService) Extract(ctx context.Context, fileData []byte, mimeType, password string, mode dto.ExtractionMode) (*dto.ExtractionResponse, error) {
	if strings.Contains(mimeType, "pdf") {
		return s.extractFromPDF(ctx, fileData, password, mode)
	}
	return s.extractFromImage(ctx, fileData, mimeType, mode)
}

// Verify extracts a record from the document and scores the submitted field
// values against it.
func (s *DocumentService) Verify(ctx context.Context, fileData []byte, mimeType, password string, mode dto.ExtractionMode, submitted dto.SubmittedRecord) (*dto.VerificationResponse, error) {
	record, err := s.Extract(ctx, fileData, mimeType, password, mode)
	if err != nil {
		return nil, err
	}

	results := utils.VerifyFields(record.FieldMap(), submitted, s.matchThreshold)
	return &dto.VerificationResponse{Results: results}, nil
}

func (s *DocumentService) extractFromImage(ctx context.Context, fileData []byte, mimeType string, mode dto.ExtractionMode) (*dto.ExtractionResponse, error) {
	// QR fast path: identity letters often carry their fields in a QR code,
	// which beats OCR on both speed and accuracy.
	if img, err := decodeImage(fileData, mimeType); err == nil {
		if fields, payload, qrErr := extractFromQR(img); qrErr == nil {
			log.Println("Extracted identity fields from QR code")
			return newQRRecord(fields, payload), nil
		}
	}

	text, err := s.ocrClient.ExtractText(fileData, extensionForMime(mimeType))
	if err != nil {
		return nil, fmt.Errorf("OCR extraction failed: %w", err)
	}

	return s.buildRecord(ctx, text, mode)
}

func (s *DocumentService) extractFromPDF(ctx context.Context, fileData []byte, password string, mode dto.ExtractionMode) (*dto.ExtractionResponse, error) {
	// Embedded text layer first; scanned PDFs come back empty.
	text, err := s.pdfProcessor.ExtractText(fileData, password)
	if err != nil {
		log.Printf("PDF text extraction failed: %v", err)
	}

	if len(strings.TrimSpace(text)) < 20 {
		log.Println("PDF has little or no text layer, falling back to image OCR")

		images, imgErr := s.pdfProcessor.ExtractImages(fileData, password)
		if imgErr != nil {
			return nil, fmt.Errorf("failed to extract images from PDF: %w", imgErr)
		}

		for i, img := range images {
			if fields, payload, qrErr := extractFromQR(img); qrErr == nil {
				log.Printf("Extracted identity fields from QR code on page %d", i+1)
				return newQRRecord(fields, payload), nil
			}
		}

		var combined strings.Builder
		for i, img := range images {
			buf := new(bytes.Buffer)
			if err := png.Encode(buf, img); err != nil {
				log.Printf("Failed to encode page %d: %v", i+1, err)
				continue
			}

			pageText, ocrErr := s.ocrClient.ExtractText(buf.Bytes(), ".png")
			if ocrErr != nil {
				log.Printf("OCR failed for page %d: %v", i+1, ocrErr)
				continue
			}

			combined.WriteString(pageText)
			combined.WriteString("\n")
		}
		text = combined.String()
	}

	return s.buildRecord(ctx, text, mode)
}

// buildRecord runs the core of the pipeline over recognized text.
func (s *DocumentService) buildRecord(ctx context.Context, text string, mode dto.ExtractionMode) (*dto.ExtractionResponse, error) {
	if strings.TrimSpace(text) == "" {
		return nil, dto.ErrNoTextRecognized
	}

	normalized := utils.NormalizeOCRText(text)

	var fields dto.FieldMap
	source := dto.SourcePattern
	if mode == dto.ModeLLM {
		// A sparse or empty map here is a degraded result, not a failure.
		fields = s.llmExtractor.ExtractFields(ctx, normalized)
		source = dto.SourceLLM
	} else {
		fields = utils.ExtractFields(normalized)
	}

	fields = utils.CleanFields(fields)
	return dto.NewExtractionResponse(fields, normalized, source), nil
}

// newQRRecord builds the final record for QR-sourced fields. QR payloads skip
// OCR but still carry raw document formatting (DD-MM-YYYY dates), so the
// field cleaners run here the same as on the OCR path.
func newQRRecord(fields dto.FieldMap, payload string) *dto.ExtractionResponse {
	return dto.NewExtractionResponse(utils.CleanFields(fields), payload, dto.SourceQR)
}

// extractFromQR decodes a QR code from the image and parses the standard
// identity XML payload out of it.
func extractFromQR(img image.Image) (dto.FieldMap, string, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create binary bitmap: %w", err)
	}

	result, err := qrcode.NewQRCodeReader().Decode(bmp, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode QR code: %w", err)
	}

	var qrData dto.IdentityQRData
	if err := xml.Unmarshal([]byte(result.GetText()), &qrData); err != nil {
		return nil, "", fmt.Errorf("QR payload is not identity XML: %w", err)
	}

	fields := qrData.ToFieldMap()
	if len(fields) == 0 {
		return nil, "", fmt.Errorf("QR payload carried no identity fields")
	}
	return fields, result.GetText(), nil
}

// decodeImage decodes an image from bytes based on MIME type.
func decodeImage(data []byte, mimeType string) (image.Image, error) {
	reader := bytes.NewReader(data)

	if strings.Contains(mimeType, "png") {
		return png.Decode(reader)
	} else if strings.Contains(mimeType, "jpeg") || strings.Contains(mimeType, "jpg") {
		return jpeg.Decode(reader)
	}

	img, _, err := image.Decode(reader)
	return img, err
}

func extensionForMime(mimeType string) string {
	if strings.Contains(mimeType, "png") {
		return ".png"
	}
	return ".jpg"
}
