// internals/features/documents/ocr/dto/ocr_dto.go
package dto

import "github.com/google/uuid"

// OCRResult is the structured outcome of one extraction run. Absent fields
// are simply missing from ExtractedData — extraction is best-effort and
// never fails on malformed input.
type OCRResult struct {
	RawText          string             `json:"raw_text"`
	ExtractedData    map[string]string  `json:"extracted_data"`
	ConfidenceScores map[string]float64 `json:"confidence_scores"` // always includes "overall"
	ProcessingTimeMS int64              `json:"processing_time_ms"`
	Engine           string             `json:"engine"`
}

// FieldSuggestion is one auto-fill candidate surfaced to the caller.
// Tier contract: high (>0.8) may be auto-applied, medium (0.5–0.8) prompts
// the user, low (≤0.5) is display-only.
type FieldSuggestion struct {
	FieldName        string    `json:"field_name"`
	FieldPath        string    `json:"field_path"`
	ExtractedValue   string    `json:"extracted_value"`
	Confidence       float64   `json:"confidence"`
	Tier             string    `json:"tier"`
	SourceDocumentID uuid.UUID `json:"source_document_id"`
}

const (
	TierHigh   = "high"
	TierMedium = "medium"
	TierLow    = "low"
)
