package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/devanshsoni/ocr-document-verification/dto"
)

var (
	// day-first forms handwritten on Indian forms: 21-05-1990, 21/05/1990
	dayFirstDate = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{4})$`)
	// already year-first: 1990-05-21, 1990/05/21
	yearFirstDate = regexp.MustCompile(`^(\d{4})[/-](\d{1,2})[/-](\d{1,2})$`)
)

// NormalizeDate converts a recognized date string to strict YYYY-MM-DD with
// zero-padded day and month. Input not matching any recognized pattern is
// returned unchanged.
func NormalizeDate(value string) string {
	value = strings.TrimSpace(value)

	if m := dayFirstDate.FindStringSubmatch(value); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		return fmt.Sprintf("%s-%02d-%02d", m[3], month, day)
	}
	if m := yearFirstDate.FindStringSubmatch(value); m != nil {
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		return fmt.Sprintf("%s-%02d-%02d", m[1], month, day)
	}
	return value
}

// addressTokenCorrections fixes mis-scanned address tokens, compared
// case-insensitively against whole tokens.
var addressTokenCorrections = map[string]string{
	"layeut": "Layout",
	"layout": "Layout",
	"strret": "Street",
	"stret":  "Street",
	"street": "Street",
	"raod":   "Road",
	"rood":   "Road",
	"road":   "Road",
	"linet":  "Line 1",
	"lne":    "Lane",
}

// CleanAddress applies whole-token correction to an address line and trims it.
func CleanAddress(value string) string {
	tokens := strings.Fields(value)
	for i, tok := range tokens {
		if fixed, ok := addressTokenCorrections[strings.ToLower(tok)]; ok {
			tokens[i] = fixed
		}
	}
	return strings.TrimSpace(strings.Join(tokens, " "))
}

// emailDomainCorrections repairs domain fragments that OCR reliably garbles.
var emailDomainCorrections = []struct {
	from string
	to   string
}{
	{"aail.com", "gmail.com"},
	{"gmall.com", "gmail.com"},
	{"@gmai.com", "@gmail.com"},
	{".cem", ".com"},
}

var whitespacePattern = regexp.MustCompile(`\s+`)

// CleanEmail strips internal whitespace and applies the domain-correction
// table to an email-shaped token.
func CleanEmail(value string) string {
	value = whitespacePattern.ReplaceAllString(value, "")
	for _, c := range emailDomainCorrections {
		value = strings.ReplaceAll(value, c.from, c.to)
	}
	return value
}

// CleanFields runs the per-field cleaners over an extracted field map and
// returns the same map. Only date_of_birth, the address lines and email_id
// have dedicated cleanup.
func CleanFields(fields dto.FieldMap) dto.FieldMap {
	if v, ok := fields[dto.FieldDateOfBirth]; ok {
		fields[dto.FieldDateOfBirth] = NormalizeDate(v)
	}
	if v, ok := fields[dto.FieldAddressLine1]; ok {
		fields[dto.FieldAddressLine1] = CleanAddress(v)
	}
	if v, ok := fields[dto.FieldAddressLine2]; ok {
		fields[dto.FieldAddressLine2] = CleanAddress(v)
	}
	if v, ok := fields[dto.FieldEmailID]; ok {
		fields[dto.FieldEmailID] = CleanEmail(v)
	}
	return fields
}
