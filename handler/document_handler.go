package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"

	"github.com/devanshsoni/ocr-document-verification/dto"
	"github.com/devanshsoni/ocr-document-verification/service"
)

// DocumentHandler handles document extraction and verification requests.
type DocumentHandler struct {
	documentService *service.DocumentService
}

func NewDocumentHandler(documentService *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
	}
}

// ExtractDocument handles the POST /document/extract endpoint.
func (h *DocumentHandler) ExtractDocument(c *gin.Context) {
	log.Println("Received document extraction request")

	fileData, mimeType, mode, password, ok := h.readDocumentForm(c)
	if !ok {
		return
	}

	result, err := h.documentService.Extract(c.Request.Context(), fileData, mimeType, password, mode)
	if err != nil {
		h.sendExtractionError(c, err)
		return
	}

	log.Println("Document extraction completed successfully")
	c.JSON(http.StatusOK, result)
}

// VerifyDocument handles the POST /document/verify endpoint.
func (h *DocumentHandler) VerifyDocument(c *gin.Context) {
	log.Println("Received document verification request")

	fileData, mimeType, mode, password, ok := h.readDocumentForm(c)
	if !ok {
		return
	}

	formDataJSON := c.PostForm("form_data")
	if formDataJSON == "" {
		h.sendError(c, http.StatusBadRequest, "MALFORMED_SUBMISSION", "form_data is required", nil)
		return
	}

	var submitted dto.SubmittedRecord
	if err := json.Unmarshal([]byte(formDataJSON), &submitted); err != nil {
		h.sendError(c, http.StatusBadRequest, "MALFORMED_SUBMISSION", dto.ErrMalformedSubmission.Error(), err)
		return
	}

	result, err := h.documentService.Verify(c.Request.Context(), fileData, mimeType, password, mode, submitted)
	if err != nil {
		h.sendExtractionError(c, err)
		return
	}

	log.Printf("Document verification completed for %d fields", len(result.Results))
	c.JSON(http.StatusOK, result)
}

// readDocumentForm pulls the uploaded file and extraction options out of the
// multipart form and validates the content type. On failure it writes the
// error response itself and returns ok=false.
func (h *DocumentHandler) readDocumentForm(c *gin.Context) (fileData []byte, mimeType string, mode dto.ExtractionMode, password string, ok bool) {
	file, err := c.FormFile("file")
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "MALFORMED_SUBMISSION", "A document file is required", err)
		return nil, "", "", "", false
	}

	req := &dto.DocumentRequest{
		File:     file,
		Password: c.PostForm("password"),
		Mode:     dto.ExtractionMode(c.DefaultPostForm("mode", string(dto.ModePattern))),
	}
	if err := req.Validate(); err != nil {
		h.sendError(c, http.StatusBadRequest, "UNSUPPORTED_INPUT", err.Error(), err)
		return nil, "", "", "", false
	}

	fileData, err = readFile(file)
	if err != nil {
		h.sendError(c, http.StatusInternalServerError, "EXTRACTION_FAILED", "Failed to read uploaded file", err)
		return nil, "", "", "", false
	}

	// Browsers lie about Content-Type often enough that we sniff the bytes
	// when the declared type is missing or unsupported.
	mimeType = file.Header.Get("Content-Type")
	if !isValidMimeType(mimeType) {
		mimeType = mimetype.Detect(fileData).String()
	}
	if !isValidMimeType(mimeType) {
		h.sendError(c, http.StatusBadRequest, "UNSUPPORTED_INPUT", dto.ErrUnsupportedInput.Error(), nil)
		return nil, "", "", "", false
	}

	return fileData, mimeType, req.Mode, req.Password, true
}

// sendExtractionError maps pipeline failures onto the error taxonomy.
func (h *DocumentHandler) sendExtractionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, dto.ErrNoTextRecognized):
		// Distinct from an empty-but-valid record: usually a bad scan.
		h.sendError(c, http.StatusUnprocessableEntity, "NO_TEXT_RECOGNIZED", dto.ErrNoTextRecognized.Error(), err)
	case errors.Is(err, dto.ErrUnsupportedInput):
		h.sendError(c, http.StatusBadRequest, "UNSUPPORTED_INPUT", dto.ErrUnsupportedInput.Error(), err)
	case strings.Contains(err.Error(), "decrypt"):
		h.sendError(c, http.StatusBadRequest, "UNSUPPORTED_INPUT", "Failed to decrypt PDF. Check password.", err)
	default:
		h.sendError(c, http.StatusInternalServerError, "EXTRACTION_FAILED", "Failed to process document", err)
	}
}

// sendError sends a structured error response.
func (h *DocumentHandler) sendError(c *gin.Context, statusCode int, code, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = err.Error()
		log.Printf("Error: %s - %v", message, err)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   code,
		Message: errorMsg,
		Code:    statusCode,
	})
}

func readFile(file *multipart.FileHeader) ([]byte, error) {
	reader, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	return io.ReadAll(reader)
}

// isValidMimeType checks if the MIME type is supported.
func isValidMimeType(mimeType string) bool {
	validTypes := []string{
		"application/pdf",
		"image/png",
		"image/jpeg",
		"image/jpg",
	}

	mimeType = strings.ToLower(mimeType)
	for _, valid := range validTypes {
		if strings.Contains(mimeType, valid) {
			return true
		}
	}
	return false
}
