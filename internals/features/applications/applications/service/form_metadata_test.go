package service

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestMergeFormMetadataFromEmpty(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

	meta, err := MergeFormMetadata(nil, "personal_details", now)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(meta, &m))
	assert.Equal(t, []string{"personal_details"}, CompletedSections(meta))
	assert.Equal(t, float64(1), m["auto_save_count"])
	assert.Equal(t, "2026-03-10T09:30:00Z", m["last_saved_at"])
	assert.Equal(t, "personal_details", m["last_edited_section"])
	assert.Equal(t, float64(1), m["version"])
}

func TestMergeFormMetadataDeduplicatesSections(t *testing.T) {
	now := time.Now()
	meta, err := MergeFormMetadata(nil, "usi", now)
	require.NoError(t, err)

	// saving the same section again bumps the counter but not the list
	meta, err = MergeFormMetadata(meta, "usi", now.Add(time.Minute))
	require.NoError(t, err)

	assert.Equal(t, []string{"usi"}, CompletedSections(meta))

	var m map[string]any
	require.NoError(t, json.Unmarshal(meta, &m))
	assert.Equal(t, float64(2), m["auto_save_count"])
}

func TestMergeFormMetadataPreservesUnknownKeys(t *testing.T) {
	existing := datatypes.JSON(`{"completed_sections":["survey"],"ui_hints":{"collapsed":["usi"]},"auto_save_count":7}`)

	meta, err := MergeFormMetadata(existing, "declarations", time.Now())
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(meta, &m))
	assert.Equal(t, map[string]any{"collapsed": []any{"usi"}}, m["ui_hints"])
	assert.Equal(t, float64(8), m["auto_save_count"])
	assert.ElementsMatch(t, []string{"survey", "declarations"}, CompletedSections(meta))
}

func TestMergeFormMetadataRebuildsCorruptBlob(t *testing.T) {
	meta, err := MergeFormMetadata(datatypes.JSON(`{not json`), "survey", time.Now())
	require.NoError(t, err)
	assert.Equal(t, []string{"survey"}, CompletedSections(meta))
}

func TestProgressPercentFullForm(t *testing.T) {
	now := time.Now()
	var meta datatypes.JSON
	var err error

	// complete all 12 sections in an arbitrary order
	order := []string{"declarations", "usi", "survey", "personal_details",
		"employment_history", "health_cover", "qualifications", "emergency_contacts",
		"language_cultural", "additional_services", "schooling_history", "disability_support"}
	for i, step := range order {
		meta, err = MergeFormMetadata(meta, step, now)
		require.NoError(t, err)
		want := (i + 1) * 100 / TotalFormSteps
		assert.Equal(t, want, ProgressPercent(meta), "after %d sections", i+1)
	}
	assert.Equal(t, 100, ProgressPercent(meta))
}

func TestProgressPercentBounds(t *testing.T) {
	assert.Equal(t, 0, ProgressPercent(nil))
	assert.Equal(t, 0, ProgressPercent(datatypes.JSON(`{}`)))

	// 5 of 12 floors to 41
	meta := datatypes.JSON(`{"completed_sections":["a","b","c","d","e"]}`)
	assert.Equal(t, 41, ProgressPercent(meta))
}

func TestDeepMergeMaps(t *testing.T) {
	dst := map[string]any{
		"a": 1,
		"nested": map[string]any{
			"keep":    "old",
			"replace": "old",
		},
	}
	src := map[string]any{
		"b": 2,
		"nested": map[string]any{
			"replace": "new",
			"add":     "new",
		},
	}

	out := DeepMergeMaps(dst, src)
	assert.Equal(t, 1, out["a"])
	assert.Equal(t, 2, out["b"])
	nested := out["nested"].(map[string]any)
	assert.Equal(t, "old", nested["keep"])
	assert.Equal(t, "new", nested["replace"])
	assert.Equal(t, "new", nested["add"])
}
