package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/devanshsoni/ocr-document-verification/dto"
)

// LLMClient is the completion backend the extractor talks to. It is injected
// at construction time so tests can substitute a fake.
type LLMClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// LLMExtractor parses OCR text into canonical fields by prompting an LLM.
// It tolerates severe OCR noise at the cost of latency; any failure on the
// way degrades to an empty field map, never an error.
type LLMExtractor struct {
	client LLMClient
}

func NewLLMExtractor(client LLMClient) *LLMExtractor {
	return &LLMExtractor{
		client: client,
	}
}

const promptTemplate = `You are an expert data extraction tool. Your task is to analyze the raw text from an OCR scan of a handwritten document and extract specific fields into a valid JSON format.

**Instructions:**
1.  Extract the following fields: %s.
2.  If a field is not found in the text, use null as its value in the JSON.
3.  Normalize dates to ISO format (YYYY-MM-DD).
4.  **Correct obvious OCR errors.** For example, "mame" should be "name", "Grender" should be "Gender", "aail.com" should be "gmail.com", and "Layeut" should be "Layout". Use context to fix garbled words and reconstruct garbled email addresses.
5.  Your response **MUST** be a single, valid JSON object and nothing else. Do not include any explanations or markdown.

**Raw OCR Text:**
---
%s
---

**JSON Output:**
`

// BuildPrompt embeds the raw text and the exact canonical field list into
// the extraction prompt.
func BuildPrompt(rawText string) string {
	names := make([]string, len(dto.CanonicalFields))
	for i, f := range dto.CanonicalFields {
		names[i] = string(f)
	}
	return fmt.Sprintf(promptTemplate, strings.Join(names, ", "), rawText)
}

// ExtractFields sends the raw text to the LLM and parses the response into a
// canonical field map. On any failure (backend error, malformed JSON,
// unexpected shape) it logs and returns an empty map so the request degrades
// instead of failing.
func (e *LLMExtractor) ExtractFields(ctx context.Context, rawText string) dto.FieldMap {
	if e == nil || e.client == nil {
		return dto.FieldMap{}
	}

	raw, err := e.client.Complete(ctx, BuildPrompt(rawText))
	if err != nil {
		log.Printf("LLM extraction failed: %v. Returning empty field map.", err)
		return dto.FieldMap{}
	}

	fields, err := parseFieldJSON(raw)
	if err != nil {
		log.Printf("LLM returned unparseable response: %v. Returning empty field map.", err)
		return dto.FieldMap{}
	}
	return fields
}

// parseFieldJSON decodes the model response leniently: code fences are
// stripped and the first balanced JSON object is used. Null values and keys
// outside the canonical set are dropped.
func parseFieldJSON(raw string) (dto.FieldMap, error) {
	jsonStr := stripCodeFences(raw)
	if candidate, ok := extractJSONObject(jsonStr); ok {
		jsonStr = candidate
	}

	var tmp map[string]any
	if err := json.Unmarshal([]byte(jsonStr), &tmp); err != nil {
		return nil, fmt.Errorf("failed to parse field JSON: %w", err)
	}

	fields := dto.FieldMap{}
	for key, value := range tmp {
		if !dto.IsCanonicalField(key) {
			continue
		}
		var s string
		switch t := value.(type) {
		case nil:
			continue
		case string:
			s = strings.TrimSpace(t)
		case float64:
			s = strconv.FormatFloat(t, 'f', -1, 64)
		default:
			continue
		}
		if s != "" {
			fields[dto.CanonicalField(key)] = s
		}
	}
	return fields, nil
}

// stripCodeFences removes surrounding Markdown code fences like ```json ... ```.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSpace(s)
	// drop a possible language tag at the start of the fence
	if i := strings.IndexByte(s, '\n'); i != -1 {
		first := strings.TrimSpace(s[:i])
		if len(first) > 0 && len(first) < 20 {
			s = s[i+1:]
		}
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

// extractJSONObject pulls the first balanced {...} out of a string that may
// carry stray prose around the JSON.
func extractJSONObject(s string) (string, bool) {
	start := -1
	depth := 0
	for i, r := range s {
		switch r {
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
				if depth == 0 && start != -1 {
					return s[start : i+1], true
				}
			}
		}
	}
	return "", false
}
