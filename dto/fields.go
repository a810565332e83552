package dto

// CanonicalField identifies one of the identity-document fields the service
// recognizes. The set is the contract between the extractor and the verifier.
type CanonicalField string

const (
	FieldFirstName    CanonicalField = "first_name"
	FieldLastName     CanonicalField = "last_name"
	FieldMiddleName   CanonicalField = "middle_name"
	FieldGender       CanonicalField = "gender"
	FieldDateOfBirth  CanonicalField = "date_of_birth"
	FieldAddressLine1 CanonicalField = "address_line_1"
	FieldAddressLine2 CanonicalField = "address_line_2"
	FieldCity         CanonicalField = "city"
	FieldState        CanonicalField = "state"
	FieldPinCode      CanonicalField = "pin_code"
	FieldPhoneNumber  CanonicalField = "phone_number"
	FieldEmailID      CanonicalField = "email_id"
)

// CanonicalFields lists every recognized field in response order.
var CanonicalFields = []CanonicalField{
	FieldFirstName,
	FieldLastName,
	FieldMiddleName,
	FieldGender,
	FieldDateOfBirth,
	FieldAddressLine1,
	FieldAddressLine2,
	FieldCity,
	FieldState,
	FieldPinCode,
	FieldPhoneNumber,
	FieldEmailID,
}

// IsCanonicalField reports whether name is part of the fixed field set.
func IsCanonicalField(name string) bool {
	for _, f := range CanonicalFields {
		if string(f) == name {
			return true
		}
	}
	return false
}

// FieldMap maps canonical field names to extracted values. A missing key
// means the field was not found in the document.
type FieldMap map[CanonicalField]string
