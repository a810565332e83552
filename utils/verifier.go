package utils

import (
	"sort"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"

	"github.com/devanshsoni/ocr-document-verification/dto"
)

// VerifyFields compares every submitted field against the extracted record
// and produces one verdict per submitted field, ordered by field name.
// Unknown field names pass through untouched; they simply never match
// anything in the extracted record.
func VerifyFields(extracted dto.FieldMap, submitted dto.SubmittedRecord, threshold float64) []dto.FieldVerdict {
	names := make([]string, 0, len(submitted))
	for name := range submitted {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make([]dto.FieldVerdict, 0, len(names))
	for _, name := range names {
		extractedValue, ok := extracted[dto.CanonicalField(name)]
		if !ok || strings.TrimSpace(extractedValue) == "" {
			results = append(results, dto.FieldVerdict{
				Field:      name,
				Status:     dto.StatusMissingInDocument,
				Confidence: 0.0,
			})
			continue
		}

		similarity := FieldSimilarity(submitted[name], extractedValue)
		status := dto.StatusMismatch
		if similarity >= threshold {
			status = dto.StatusMatch
		}
		results = append(results, dto.FieldVerdict{
			Field:      name,
			Status:     status,
			Confidence: similarity,
		})
	}
	return results
}

// FieldSimilarity computes a normalized edit-distance ratio in [0.0, 1.0]
// between two field values after case folding and trimming. Equal values
// short-circuit to 1.0 so a match never trips over float rounding at the
// threshold boundary.
func FieldSimilarity(submitted, extracted string) float64 {
	a := strings.ToLower(strings.TrimSpace(submitted))
	b := strings.ToLower(strings.TrimSpace(extracted))

	if a == b {
		return 1.0
	}
	return strutil.Similarity(a, b, metrics.NewLevenshtein())
}
