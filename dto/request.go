package dto

import (
	"errors"
	"mime/multipart"
	"strings"
)

// ExtractionMode selects the field-extraction strategy.
type ExtractionMode string

const (
	ModePattern ExtractionMode = "pattern"
	ModeLLM     ExtractionMode = "llm"
)

// DocumentRequest represents an uploaded document plus extraction options.
type DocumentRequest struct {
	File     *multipart.FileHeader
	Password string
	Mode     ExtractionMode
}

// Validate performs basic validation on the request.
func (r *DocumentRequest) Validate() error {
	if r.File == nil {
		return errors.New("file is required")
	}

	filename := strings.ToLower(r.File.Filename)
	validExtensions := []string{".pdf", ".png", ".jpg", ".jpeg"}
	valid := false
	for _, ext := range validExtensions {
		if strings.HasSuffix(filename, ext) {
			valid = true
			break
		}
	}
	if !valid {
		return ErrUnsupportedInput
	}

	if r.Mode != ModePattern && r.Mode != ModeLLM {
		return errors.New("mode must be \"pattern\" or \"llm\"")
	}
	return nil
}

// SubmittedRecord is the caller-supplied field map to verify against a
// document. Field names are arbitrary strings, not restricted to the
// canonical set.
type SubmittedRecord map[string]string
