package utils

import (
	"testing"

	"github.com/devanshsoni/ocr-document-verification/dto"
	"github.com/stretchr/testify/assert"
)

func TestExtractFieldsLabelValue(t *testing.T) {
	text := "First Name : John\nGender : Male\nEmail : john.smith@gmail.com"

	fields := ExtractFields(text)

	assert.Equal(t, "John", fields[dto.FieldFirstName])
	assert.Equal(t, "Male", fields[dto.FieldGender])
	assert.Equal(t, "john.smith@gmail.com", fields[dto.FieldEmailID])
}

func TestExtractFieldsTwoLineFallback(t *testing.T) {
	text := "Date of Birth\n1990-05-21"

	fields := ExtractFields(text)

	assert.Equal(t, "1990-05-21", fields[dto.FieldDateOfBirth])
}

func TestExtractFieldsFullForm(t *testing.T) {
	text := `
		First Name : John
		Last Name : Smith
		Gender : Male
		Date of Birth : 21-05-1990
		Address Line 1 : 12 MG Road
		Address Line 2 : Indira Layout
		City : Bangalore
		State : Karnataka
		Pin Code : 560038
		Phone Number : 9876543210
		Email ID : john.smith@gmail.com
	`

	fields := ExtractFields(text)

	assert.Equal(t, "John", fields[dto.FieldFirstName])
	assert.Equal(t, "Smith", fields[dto.FieldLastName])
	assert.Equal(t, "Male", fields[dto.FieldGender])
	assert.Equal(t, "21-05-1990", fields[dto.FieldDateOfBirth])
	assert.Equal(t, "12 MG Road", fields[dto.FieldAddressLine1])
	assert.Equal(t, "Indira Layout", fields[dto.FieldAddressLine2])
	assert.Equal(t, "Bangalore", fields[dto.FieldCity])
	assert.Equal(t, "Karnataka", fields[dto.FieldState])
	assert.Equal(t, "560038", fields[dto.FieldPinCode])
	assert.Equal(t, "9876543210", fields[dto.FieldPhoneNumber])
	assert.Equal(t, "john.smith@gmail.com", fields[dto.FieldEmailID])
}

func TestExtractFieldsFirstMatchWins(t *testing.T) {
	text := "City : Delhi\nCity : Mumbai"

	fields := ExtractFields(text)

	assert.Equal(t, "Delhi", fields[dto.FieldCity])
}

func TestExtractFieldsAddressLine2MayOverwrite(t *testing.T) {
	text := "Address Line 2 : Apt 4\nAddress Line 2 : Sector 9"

	fields := ExtractFields(text)

	assert.Equal(t, "Sector 9", fields[dto.FieldAddressLine2])
}

func TestExtractFieldsEmailScanTakesPrecedence(t *testing.T) {
	text := "Email ID : unreadable\nReach me at john.smith@aail.com anytime"

	fields := ExtractFields(text)

	assert.Equal(t, "john.smith@gmail.com", fields[dto.FieldEmailID])
}

func TestExtractFieldsEmailSurvivesWhitespaceSplit(t *testing.T) {
	// OCR splits addresses after punctuation; the scan must keep the whole
	// local part instead of just the fragment next to the @.
	text := "Email : john. smith@aail.com"

	fields := ExtractFields(text)

	assert.Equal(t, "john.smith@gmail.com", fields[dto.FieldEmailID])
}

func TestExtractFieldsEmailScanIgnoresSurroundingProse(t *testing.T) {
	text := "Reach me at john.smith@gmail.com anytime"

	fields := ExtractFields(text)

	assert.Equal(t, "john.smith@gmail.com", fields[dto.FieldEmailID])
}

func TestExtractFieldsUnmatchedLinesDropped(t *testing.T) {
	text := "Some random header\nFirst Name : John\nDisclaimer text here"

	fields := ExtractFields(text)

	assert.Equal(t, "John", fields[dto.FieldFirstName])
	assert.Len(t, fields, 1)
}

func TestExtractFieldsClosure(t *testing.T) {
	text := `
		First Name : John
		Gender : Male
		Somestrange Label : Value
		Date of Birth
		1990-05-21
		Email : j.s@gmail.com
	`

	fields := ExtractFields(text)

	assert.NotEmpty(t, fields)
	for field := range fields {
		assert.True(t, dto.IsCanonicalField(string(field)), "unexpected field %q", field)
	}
}

func TestExtractFieldsEmptyText(t *testing.T) {
	fields := ExtractFields("")

	assert.Empty(t, fields)
}
