// internals/features/documents/ocr/service/suggestions.go
package service

import (
	"sort"

	"github.com/google/uuid"

	"enrollku_backend/internals/features/documents/ocr/dto"
)

// ConfidenceTier buckets a score for the auto-fill consumer. The
// boundaries are a hard contract: high (>0.8) auto-apply, medium
// (0.5–0.8) prompt, low (≤0.5) display only.
func ConfidenceTier(score float64) string {
	switch {
	case score > 0.8:
		return dto.TierHigh
	case score > 0.5:
		return dto.TierMedium
	default:
		return dto.TierLow
	}
}

// BuildSuggestions turns one extraction result into the auto-fill list:
// only fields with a mapped application path and a value that survives
// normalization become suggestions.
func BuildSuggestions(result dto.OCRResult, typeCode string, sourceDocumentID uuid.UUID) []dto.FieldSuggestion {
	mapped := MapToApplicationFields(result.ExtractedData, typeCode)

	suggestions := make([]dto.FieldSuggestion, 0, len(mapped))
	for field := range result.ExtractedData {
		path, ok := PathForField(field, typeCode)
		if !ok {
			continue
		}
		value, ok := mapped[path]
		if !ok {
			continue // dropped by normalization
		}
		confidence := result.ConfidenceScores[field]
		suggestions = append(suggestions, dto.FieldSuggestion{
			FieldName:        field,
			FieldPath:        path,
			ExtractedValue:   value,
			Confidence:       confidence,
			Tier:             ConfidenceTier(confidence),
			SourceDocumentID: sourceDocumentID,
		})
	}

	// highest confidence first, stable order for equal scores
	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].Confidence != suggestions[j].Confidence {
			return suggestions[i].Confidence > suggestions[j].Confidence
		}
		return suggestions[i].FieldPath < suggestions[j].FieldPath
	})
	return suggestions
}
