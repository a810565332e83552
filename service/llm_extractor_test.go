package service

import (
	"context"
	"errors"
	"testing"

	"github.com/devanshsoni/ocr-document-verification/dto"
	"github.com/stretchr/testify/assert"
)

type fakeLLMClient struct {
	response string
	err      error
	prompt   string
}

func (f *fakeLLMClient) Complete(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.response, f.err
}

func TestLLMExtractFields(t *testing.T) {
	fake := &fakeLLMClient{
		response: `{"first_name": "John", "last_name": "Smith", "email_id": "john.smith@gmail.com", "middle_name": null}`,
	}
	extractor := NewLLMExtractor(fake)

	fields := extractor.ExtractFields(context.Background(), "First Name : John")

	assert.Equal(t, "John", fields[dto.FieldFirstName])
	assert.Equal(t, "Smith", fields[dto.FieldLastName])
	assert.Equal(t, "john.smith@gmail.com", fields[dto.FieldEmailID])
	_, hasMiddle := fields[dto.FieldMiddleName]
	assert.False(t, hasMiddle, "null values must be dropped")
}

func TestLLMExtractFieldsStripsMarkdownFences(t *testing.T) {
	fake := &fakeLLMClient{
		response: "```json\n{\"gender\": \"Male\"}\n```",
	}
	extractor := NewLLMExtractor(fake)

	fields := extractor.ExtractFields(context.Background(), "Gender : Male")

	assert.Equal(t, "Male", fields[dto.FieldGender])
}

func TestLLMExtractFieldsIgnoresProseAroundJSON(t *testing.T) {
	fake := &fakeLLMClient{
		response: "Here is the extracted data: {\"city\": \"Bangalore\"} Hope it helps!",
	}
	extractor := NewLLMExtractor(fake)

	fields := extractor.ExtractFields(context.Background(), "City : Bangalore")

	assert.Equal(t, "Bangalore", fields[dto.FieldCity])
}

func TestLLMExtractFieldsDropsUnknownKeys(t *testing.T) {
	fake := &fakeLLMClient{
		response: `{"first_name": "John", "favourite_colour": "blue"}`,
	}
	extractor := NewLLMExtractor(fake)

	fields := extractor.ExtractFields(context.Background(), "irrelevant")

	assert.Len(t, fields, 1)
	for field := range fields {
		assert.True(t, dto.IsCanonicalField(string(field)))
	}
}

func TestLLMExtractFieldsNumericValues(t *testing.T) {
	fake := &fakeLLMClient{
		response: `{"pin_code": 560038}`,
	}
	extractor := NewLLMExtractor(fake)

	fields := extractor.ExtractFields(context.Background(), "Pin Code : 560038")

	assert.Equal(t, "560038", fields[dto.FieldPinCode])
}

func TestLLMExtractFieldsDegradesToEmptyMap(t *testing.T) {
	cases := map[string]*fakeLLMClient{
		"backend error":  {err: errors.New("connection refused")},
		"not json":       {response: "I could not find any fields, sorry."},
		"empty response": {response: ""},
		"json array":     {response: `["first_name", "John"]`},
	}

	for name, fake := range cases {
		extractor := NewLLMExtractor(fake)
		fields := extractor.ExtractFields(context.Background(), "First Name : John")
		assert.NotNil(t, fields, name)
		assert.Empty(t, fields, name)
	}
}

func TestLLMExtractFieldsNilClient(t *testing.T) {
	extractor := NewLLMExtractor(nil)

	fields := extractor.ExtractFields(context.Background(), "First Name : John")

	assert.Empty(t, fields)
}

func TestBuildPromptEmbedsFieldListAndText(t *testing.T) {
	rawText := "First Mame : John\nGrender : Male"

	prompt := BuildPrompt(rawText)

	assert.Contains(t, prompt, rawText)
	for _, field := range dto.CanonicalFields {
		assert.Contains(t, prompt, string(field))
	}
	assert.Contains(t, prompt, "single, valid JSON object")
}
