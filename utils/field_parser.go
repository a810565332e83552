package utils

import (
	"regexp"
	"strings"

	"github.com/devanshsoni/ocr-document-verification/dto"
)

// fieldKeywords maps label tokens seen on scanned forms to canonical fields.
// Order matters: more specific labels come first so "Last Name" is not
// swallowed by the bare "name" keyword of first_name.
var fieldKeywords = []struct {
	field dto.CanonicalField
	keys  []string
}{
	{dto.FieldLastName, []string{"last name", "lastname", "surname"}},
	{dto.FieldMiddleName, []string{"middle name", "middlename"}},
	{dto.FieldFirstName, []string{"first name", "firstname", "name"}},
	{dto.FieldGender, []string{"gender", "sex"}},
	{dto.FieldDateOfBirth, []string{"date of birth", "dob", "birth date"}},
	{dto.FieldAddressLine2, []string{"address line 2", "address line2", "address 2"}},
	{dto.FieldAddressLine1, []string{"address line 1", "address line1", "address 1", "address"}},
	{dto.FieldCity, []string{"city", "town"}},
	{dto.FieldState, []string{"state"}},
	{dto.FieldPinCode, []string{"pin code", "pincode", "postal code", "zip"}},
	{dto.FieldPhoneNumber, []string{"phone number", "phone", "mobile", "contact"}},
	{dto.FieldEmailID, []string{"email id", "email", "e-mail"}},
}

// OCR tends to inject spaces around the dots of an address ("john. smith@"),
// so whitespace is tolerated around punctuation separators and the @ sign,
// but never between bare words: that would swallow preceding prose.
var emailPattern = regexp.MustCompile(`[A-Za-z0-9_%+\-]+(?:\s*[._%+\-]\s*[A-Za-z0-9_%+\-]+)*\s*@\s*[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)

// ExtractFields converts raw OCR text into a canonical field map using
// label:value matching with a two-line fallback. Lines that match nothing
// are dropped; absent fields simply do not appear in the result.
func ExtractFields(text string) dto.FieldMap {
	lines := splitNonEmptyLines(text)
	fields := dto.FieldMap{}

	// Pass 1: lines joined by a label:value separator
	var remaining []string
	for _, line := range lines {
		matched := false
		if idx := strings.Index(line, ":"); idx != -1 {
			label := strings.ToLower(strings.TrimSpace(line[:idx]))
			value := strings.TrimSpace(line[idx+1:])
			if value != "" {
				if field, ok := matchLabel(label); ok {
					// First match wins. address_line_2 may overwrite:
					// multi-line addresses keep arriving under similar labels.
					if _, exists := fields[field]; !exists || field == dto.FieldAddressLine2 {
						fields[field] = value
						matched = true
					}
				}
			}
		}
		if !matched {
			remaining = append(remaining, line)
		}
	}

	// Pass 2: bare label on one line, value on the next
	for i := 0; i+1 < len(remaining); i++ {
		field, ok := matchLabel(strings.ToLower(remaining[i]))
		if !ok {
			continue
		}
		if _, exists := fields[field]; exists && field != dto.FieldAddressLine2 {
			continue
		}
		fields[field] = strings.TrimSpace(remaining[i+1])
		i++ // value line consumed
	}

	// An email-shaped token anywhere in the text beats the label-based result.
	if m := emailPattern.FindString(text); m != "" {
		fields[dto.FieldEmailID] = CleanEmail(m)
	}

	return fields
}

func matchLabel(label string) (dto.CanonicalField, bool) {
	for _, fk := range fieldKeywords {
		for _, k := range fk.keys {
			if strings.Contains(label, k) {
				return fk.field, true
			}
		}
	}
	return "", false
}

// splitNonEmptyLines cleans and splits OCR text into trimmed lines.
func splitNonEmptyLines(text string) []string {
	text = strings.ReplaceAll(text, "\r", "")
	rawLines := strings.Split(text, "\n")

	lines := make([]string, 0, len(rawLines))
	for _, l := range rawLines {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		lines = append(lines, l)
	}
	return lines
}
