package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"enrollku_backend/internals/features/documents/ocr/dto"
)

func TestConfidenceTierBoundaries(t *testing.T) {
	cases := []struct {
		score float64
		tier  string
	}{
		{0.95, dto.TierHigh},
		{0.81, dto.TierHigh},
		{0.8, dto.TierMedium}, // boundary belongs to medium
		{0.6, dto.TierMedium},
		{0.51, dto.TierMedium},
		{0.5, dto.TierLow}, // boundary belongs to low
		{0.1, dto.TierLow},
		{0.0, dto.TierLow},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.tier, ConfidenceTier(tc.score), "score %v", tc.score)
	}
}

func TestBuildSuggestionsFromPassportResult(t *testing.T) {
	docID := uuid.New()
	result := dto.OCRResult{
		ExtractedData: map[string]string{
			"given_name":      "JOHN",
			"passport_number": "N1234567",
			"date_of_birth":   "12 MAR 2001",
			"sex":             "M", // unmapped
		},
		ConfidenceScores: map[string]float64{
			"given_name":      0.75,
			"passport_number": 0.95,
			"date_of_birth":   0.85,
			"sex":             0.6,
			"overall":         0.79,
		},
	}

	suggestions := BuildSuggestions(result, "PASSPORT", docID)
	require.Len(t, suggestions, 3)

	// ordered by confidence, highest first
	assert.Equal(t, "passport_number", suggestions[0].FieldName)
	assert.Equal(t, "personal_details.passport_number", suggestions[0].FieldPath)
	assert.Equal(t, "N1234567", suggestions[0].ExtractedValue)
	assert.Equal(t, dto.TierHigh, suggestions[0].Tier)
	assert.Equal(t, docID, suggestions[0].SourceDocumentID)

	assert.Equal(t, "date_of_birth", suggestions[1].FieldName)
	assert.Equal(t, "2001-03-12", suggestions[1].ExtractedValue)
	assert.Equal(t, dto.TierHigh, suggestions[1].Tier)

	assert.Equal(t, "given_name", suggestions[2].FieldName)
	assert.Equal(t, "John", suggestions[2].ExtractedValue)
	assert.Equal(t, dto.TierMedium, suggestions[2].Tier)
}

func TestBuildSuggestionsDropsNormalizationFailures(t *testing.T) {
	result := dto.OCRResult{
		ExtractedData: map[string]string{
			"given_name":    "Given Names", // label capture
			"date_of_birth": "not a date",
		},
		ConfidenceScores: map[string]float64{
			"given_name":    0.75,
			"date_of_birth": 0.85,
		},
	}
	suggestions := BuildSuggestions(result, "PASSPORT", uuid.New())
	assert.Empty(t, suggestions)
}

func TestBuildSuggestionsStableOrderForEqualScores(t *testing.T) {
	result := dto.OCRResult{
		ExtractedData: map[string]string{
			"given_name":  "JOHN",
			"family_name": "SMITH",
		},
		ConfidenceScores: map[string]float64{
			"given_name":  0.75,
			"family_name": 0.75,
		},
	}
	suggestions := BuildSuggestions(result, "PASSPORT", uuid.New())
	require.Len(t, suggestions, 2)
	// equal confidence ties break on path, alphabetically
	assert.Equal(t, "personal_details.family_name", suggestions[0].FieldPath)
	assert.Equal(t, "personal_details.given_name", suggestions[1].FieldPath)
}

func TestEndToEndMockPassportPipeline(t *testing.T) {
	raw, err := MockProvider{}.Recognize(context.Background(), RecognitionRequest{
		ObjectKey: "documents/app-1/PASSPORT/v1.webp",
		TypeCode:  "PASSPORT",
	})
	require.NoError(t, err)

	result := ExtractFields(raw, "PASSPORT")
	suggestions := BuildSuggestions(result, "PASSPORT", uuid.New())
	require.NotEmpty(t, suggestions)

	byPath := map[string]dto.FieldSuggestion{}
	for _, s := range suggestions {
		byPath[s.FieldPath] = s
	}
	require.Contains(t, byPath, "personal_details.passport_number")
	assert.Equal(t, dto.TierHigh, byPath["personal_details.passport_number"].Tier)
	require.Contains(t, byPath, "personal_details.date_of_birth")
	assert.Equal(t, "2001-03-12", byPath["personal_details.date_of_birth"].ExtractedValue)
	require.Contains(t, byPath, "personal_details.nationality")
	assert.Equal(t, "Australia", byPath["personal_details.nationality"].ExtractedValue)
}
