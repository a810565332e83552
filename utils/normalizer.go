package utils

import "strings"

// ocrCorrections maps OCR confusions seen in scanned/handwritten forms to
// their correct spelling. Pairs are applied in order as plain substring
// replacements; none of the outputs contain another pair's input, so the
// whole table is idempotent.
var ocrCorrections = []struct {
	from string
	to   string
}{
	// garbled labels
	{"First Mame", "First Name"},
	{"first mame", "first name"},
	{"Grender", "Gender"},
	{"grender", "gender"},
	{"Adebress", "Address"},
	{"adebress", "address"},
	{"Phonemumber", "Phone Number"},
	{"phonemumber", "phone number"},
	{"Emall", "Email"},
	{"emall", "email"},
	// garbled email domains
	{"aail.com", "gmail.com"},
	{"gmall.com", "gmail.com"},
	{"gmail.cem", "gmail.com"},
	{"@gmai.com", "@gmail.com"},
	{"yahoo.cem", "yahoo.com"},
}

// NormalizeOCRText fixes known OCR character and word confusions before
// field extraction. It never adds or removes lines, and running it twice
// gives the same result as running it once.
func NormalizeOCRText(text string) string {
	for _, c := range ocrCorrections {
		text = strings.ReplaceAll(text, c.from, c.to)
	}
	return text
}
