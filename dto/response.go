package dto

import "errors"

// Sentinel errors for the failure modes the handlers report distinctly.
var (
	// ErrUnsupportedInput means the document content type is not decodable.
	ErrUnsupportedInput = errors.New("unsupported document type, supported: PDF, PNG, JPEG")

	// ErrNoTextRecognized means OCR ran but produced no text, which usually
	// indicates a bad scan rather than a blank document.
	ErrNoTextRecognized = errors.New("no text recognized in document")

	// ErrMalformedSubmission means the verification payload is not a
	// well-formed field map.
	ErrMalformedSubmission = errors.New("form_data must be a JSON object of field name to string value")
)

// VerdictStatus is the outcome of comparing one submitted field.
type VerdictStatus string

const (
	StatusMatch             VerdictStatus = "match"
	StatusMismatch          VerdictStatus = "mismatch"
	StatusMissingInDocument VerdictStatus = "missing_in_document"
)

// FieldVerdict is the verification result for a single submitted field.
type FieldVerdict struct {
	Field      string        `json:"field"`
	Status     VerdictStatus `json:"status"`
	Confidence float64       `json:"confidence"`
}

// VerificationResponse is the final response for the verification endpoint,
// one verdict per submitted field.
type VerificationResponse struct {
	Results []FieldVerdict `json:"results"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
