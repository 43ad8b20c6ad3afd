// internals/features/applications/applications/service/form_metadata.go
package service

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// TotalFormSteps is the denominator of the progress percentage.
const TotalFormSteps = 12

const formMetadataVersion = 1

/* =========================================================
   form_metadata — progress bookkeeping only, never business
   data. Stored as an open JSON map so keys written by other
   releases survive a round trip (deep merge, no clobber).
   ========================================================= */

// MergeFormMetadata applies one step-save to the metadata blob:
// records the section as completed (deduplicated), bumps the auto-save
// counter, stamps last_saved_at and last_edited_section. Unrelated keys in
// the existing blob are preserved untouched.
func MergeFormMetadata(existing datatypes.JSON, step string, now time.Time) (datatypes.JSON, error) {
	meta := map[string]any{}
	if len(existing) > 0 {
		if err := json.Unmarshal(existing, &meta); err != nil {
			// corrupted metadata is rebuilt rather than failing the save
			meta = map[string]any{}
		}
	}

	if _, ok := meta["version"]; !ok {
		meta["version"] = formMetadataVersion
	}

	sections := toStringSlice(meta["completed_sections"])
	if !containsString(sections, step) {
		sections = append(sections, step)
	}
	meta["completed_sections"] = sections
	meta["auto_save_count"] = toInt(meta["auto_save_count"]) + 1
	meta["last_saved_at"] = now.UTC().Format(time.RFC3339)
	meta["last_edited_section"] = step

	out, err := json.Marshal(meta)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(out), nil
}

// DeepMergeMaps merges src into dst recursively; scalar conflicts resolve
// to src (last write wins). Only map values merge — slices are replaced
// wholesale.
func DeepMergeMaps(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = map[string]any{}
	}
	for k, sv := range src {
		if sm, ok := sv.(map[string]any); ok {
			if dm, ok := dst[k].(map[string]any); ok {
				dst[k] = DeepMergeMaps(dm, sm)
				continue
			}
		}
		dst[k] = sv
	}
	return dst
}

// CompletedSections reads the completed step names out of the blob.
func CompletedSections(meta datatypes.JSON) []string {
	if len(meta) == 0 {
		return nil
	}
	m := map[string]any{}
	if err := json.Unmarshal(meta, &m); err != nil {
		return nil
	}
	return toStringSlice(m["completed_sections"])
}

// ProgressPercent = floor(completed / 12 * 100). This value — not any
// stored column — decides whether the application can be submitted.
func ProgressPercent(meta datatypes.JSON) int {
	n := len(CompletedSections(meta))
	if n > TotalFormSteps {
		n = TotalFormSteps
	}
	return n * 100 / TotalFormSteps
}

func toStringSlice(v any) []string {
	switch t := v.(type) {
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func containsString(ss []string, s string) bool {
	for _, e := range ss {
		if e == s {
			return true
		}
	}
	return false
}

func toInt(v any) int {
	switch t := v.(type) {
	case int:
		return t
	case float64:
		return int(t)
	case json.Number:
		n, _ := t.Int64()
		return int(n)
	}
	return 0
}
