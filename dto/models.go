package dto

import (
	"encoding/xml"
	"strings"
)

// ExtractionSource records how a document's fields were obtained.
type ExtractionSource string

const (
	SourceQR      ExtractionSource = "qr"
	SourcePattern ExtractionSource = "pattern"
	SourceLLM     ExtractionSource = "llm"
)

// ExtractionResponse is the structured record returned by the extraction
// endpoint. Every canonical field is present; null means not found.
type ExtractionResponse struct {
	FirstName    *string          `json:"first_name"`
	LastName     *string          `json:"last_name"`
	MiddleName   *string          `json:"middle_name"`
	Gender       *string          `json:"gender"`
	DateOfBirth  *string          `json:"date_of_birth"`
	AddressLine1 *string          `json:"address_line_1"`
	AddressLine2 *string          `json:"address_line_2"`
	City         *string          `json:"city"`
	State        *string          `json:"state"`
	PinCode      *string          `json:"pin_code"`
	PhoneNumber  *string          `json:"phone_number"`
	EmailID      *string          `json:"email_id"`
	RawText      string           `json:"raw_text"`
	Source       ExtractionSource `json:"source"`
}

// NewExtractionResponse builds the response from an extracted field map,
// keeping the raw OCR text for traceability.
func NewExtractionResponse(fields FieldMap, rawText string, source ExtractionSource) *ExtractionResponse {
	get := func(f CanonicalField) *string {
		if v, ok := fields[f]; ok && v != "" {
			return &v
		}
		return nil
	}

	return &ExtractionResponse{
		FirstName:    get(FieldFirstName),
		LastName:     get(FieldLastName),
		MiddleName:   get(FieldMiddleName),
		Gender:       get(FieldGender),
		DateOfBirth:  get(FieldDateOfBirth),
		AddressLine1: get(FieldAddressLine1),
		AddressLine2: get(FieldAddressLine2),
		City:         get(FieldCity),
		State:        get(FieldState),
		PinCode:      get(FieldPinCode),
		PhoneNumber:  get(FieldPhoneNumber),
		EmailID:      get(FieldEmailID),
		RawText:      rawText,
		Source:       source,
	}
}

// FieldMap returns the non-empty canonical fields of the response, which is
// what the verifier matches submitted values against.
func (r *ExtractionResponse) FieldMap() FieldMap {
	fields := FieldMap{}
	set := func(f CanonicalField, v *string) {
		if v != nil && *v != "" {
			fields[f] = *v
		}
	}

	set(FieldFirstName, r.FirstName)
	set(FieldLastName, r.LastName)
	set(FieldMiddleName, r.MiddleName)
	set(FieldGender, r.Gender)
	set(FieldDateOfBirth, r.DateOfBirth)
	set(FieldAddressLine1, r.AddressLine1)
	set(FieldAddressLine2, r.AddressLine2)
	set(FieldCity, r.City)
	set(FieldState, r.State)
	set(FieldPinCode, r.PinCode)
	set(FieldPhoneNumber, r.PhoneNumber)
	set(FieldEmailID, r.EmailID)

	return fields
}

// IdentityQRData represents the XML payload embedded in the QR code printed
// on identity letters (PrintLetterBarcodeData format).
type IdentityQRData struct {
	XMLName     xml.Name `xml:"PrintLetterBarcodeData"`
	Name        string   `xml:"name,attr"`
	Gender      string   `xml:"gender,attr"`
	DateOfBirth string   `xml:"dob,attr"`
	House       string   `xml:"house,attr"`
	Street      string   `xml:"street,attr"`
	Locality    string   `xml:"loc,attr"`
	VTC         string   `xml:"vtc,attr"` // Village/Town/City
	State       string   `xml:"state,attr"`
	PinCode     string   `xml:"pc,attr"`
}

// ToFieldMap maps the QR attributes onto the canonical field set.
func (q *IdentityQRData) ToFieldMap() FieldMap {
	fields := FieldMap{}
	set := func(f CanonicalField, v string) {
		v = strings.TrimSpace(v)
		if v != "" {
			fields[f] = v
		}
	}

	parts := strings.Fields(q.Name)
	if len(parts) > 0 {
		set(FieldFirstName, parts[0])
	}
	if len(parts) > 2 {
		set(FieldMiddleName, strings.Join(parts[1:len(parts)-1], " "))
	}
	if len(parts) > 1 {
		set(FieldLastName, parts[len(parts)-1])
	}

	set(FieldGender, q.Gender)
	set(FieldDateOfBirth, q.DateOfBirth)

	addr := make([]string, 0, 2)
	for _, part := range []string{q.House, q.Street} {
		if strings.TrimSpace(part) != "" {
			addr = append(addr, strings.TrimSpace(part))
		}
	}
	set(FieldAddressLine1, strings.Join(addr, ", "))
	set(FieldAddressLine2, q.Locality)
	set(FieldCity, q.VTC)
	set(FieldState, q.State)
	set(FieldPinCode, q.PinCode)

	return fields
}
