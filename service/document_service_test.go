package service

import (
	"context"
	"errors"
	"testing"

	"github.com/devanshsoni/ocr-document-verification/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOCRClient struct {
	text string
	err  error
}

func (f *fakeOCRClient) ExtractText(_ []byte, _ string) (string, error) {
	return f.text, f.err
}

func newTestService(ocr OCRClient, llm LLMClient) *DocumentService {
	return NewDocumentService(ocr, NewPDFProcessor(), NewLLMExtractor(llm), 0.85)
}

func TestExtractFromImagePatternMode(t *testing.T) {
	ocr := &fakeOCRClient{text: `
		First Mame : John
		Last Name : Smith
		Grender : Male
		Date of Birth : 21-05-1990
		Email : john.smith@aail.com
	`}
	svc := newTestService(ocr, nil)

	record, err := svc.Extract(context.Background(), []byte("not-a-real-image"), "image/png", "", dto.ModePattern)

	require.NoError(t, err)
	require.NotNil(t, record.FirstName)
	assert.Equal(t, "John", *record.FirstName)
	require.NotNil(t, record.LastName)
	assert.Equal(t, "Smith", *record.LastName)
	require.NotNil(t, record.Gender)
	assert.Equal(t, "Male", *record.Gender)
	require.NotNil(t, record.DateOfBirth)
	assert.Equal(t, "1990-05-21", *record.DateOfBirth)
	require.NotNil(t, record.EmailID)
	assert.Equal(t, "john.smith@gmail.com", *record.EmailID)
	assert.Nil(t, record.City)
	assert.Equal(t, dto.SourcePattern, record.Source)
	assert.NotEmpty(t, record.RawText)
}

func TestExtractNoTextRecognized(t *testing.T) {
	ocr := &fakeOCRClient{text: "   \n  \n"}
	svc := newTestService(ocr, nil)

	_, err := svc.Extract(context.Background(), []byte("scan"), "image/jpeg", "", dto.ModePattern)

	assert.ErrorIs(t, err, dto.ErrNoTextRecognized)
}

func TestExtractOCRFailureIsFatal(t *testing.T) {
	ocr := &fakeOCRClient{err: errors.New("tesseract crashed")}
	svc := newTestService(ocr, nil)

	_, err := svc.Extract(context.Background(), []byte("scan"), "image/jpeg", "", dto.ModePattern)

	require.Error(t, err)
	assert.NotErrorIs(t, err, dto.ErrNoTextRecognized)
}

func TestExtractLLMModeDegradesToEmptyRecord(t *testing.T) {
	ocr := &fakeOCRClient{text: "completely garbled scan output"}
	llm := &fakeLLMClient{err: errors.New("model unavailable")}
	svc := newTestService(ocr, llm)

	record, err := svc.Extract(context.Background(), []byte("scan"), "image/png", "", dto.ModeLLM)

	// degraded extraction is a successful call with a sparse record
	require.NoError(t, err)
	assert.Nil(t, record.FirstName)
	assert.Nil(t, record.EmailID)
	assert.Equal(t, dto.SourceLLM, record.Source)
	assert.NotEmpty(t, record.RawText)
}

func TestExtractLLMModeUsesModelOutput(t *testing.T) {
	ocr := &fakeOCRClient{text: "noisy handwriting"}
	llm := &fakeLLMClient{response: `{"first_name": "Priya", "date_of_birth": "1992-11-03"}`}
	svc := newTestService(ocr, llm)

	record, err := svc.Extract(context.Background(), []byte("scan"), "image/png", "", dto.ModeLLM)

	require.NoError(t, err)
	require.NotNil(t, record.FirstName)
	assert.Equal(t, "Priya", *record.FirstName)
	require.NotNil(t, record.DateOfBirth)
	assert.Equal(t, "1992-11-03", *record.DateOfBirth)
}

func TestQRRecordRunsFieldCleaners(t *testing.T) {
	// QR payloads carry document-formatted values, so the record built from
	// them gets the same cleanup as OCR-sourced fields.
	qr := dto.IdentityQRData{
		Name:        "Priya Kumari Sharma",
		DateOfBirth: "21-05-1990",
		VTC:         "Bangalore",
	}

	record := newQRRecord(qr.ToFieldMap(), "<PrintLetterBarcodeData/>")

	require.NotNil(t, record.DateOfBirth)
	assert.Equal(t, "1990-05-21", *record.DateOfBirth)
	require.NotNil(t, record.FirstName)
	assert.Equal(t, "Priya", *record.FirstName)
	assert.Equal(t, dto.SourceQR, record.Source)
}

func TestVerifyEndToEnd(t *testing.T) {
	ocr := &fakeOCRClient{text: `
		First Name : John
		Last Name : Doe
		City : Bangalore
	`}
	svc := newTestService(ocr, nil)

	submitted := dto.SubmittedRecord{
		"first_name":   "john",
		"city":         "Mysore",
		"phone_number": "9876543210",
	}

	result, err := svc.Verify(context.Background(), []byte("scan"), "image/png", "", dto.ModePattern, submitted)

	require.NoError(t, err)
	require.Len(t, result.Results, len(submitted))

	byField := map[string]dto.FieldVerdict{}
	for _, r := range result.Results {
		byField[r.Field] = r
	}

	assert.Equal(t, dto.StatusMatch, byField["first_name"].Status)
	assert.Equal(t, 1.0, byField["first_name"].Confidence)
	assert.Equal(t, dto.StatusMismatch, byField["city"].Status)
	assert.Equal(t, dto.StatusMissingInDocument, byField["phone_number"].Status)
	assert.Equal(t, 0.0, byField["phone_number"].Confidence)
}
