// internals/features/documents/ocr/service/extractor.go
package service

import (
	"regexp"
	"strings"
	"time"

	"enrollku_backend/internals/features/documents/ocr/dto"
)

/* =========================================================
   Heuristic field extraction over raw recognized text.
   Best effort by contract: a field that does not match is
   omitted from the result, never an error.
   ========================================================= */

// Confidence tiers per field kind. Identifiers match tight patterns, so a
// hit is worth more than a free-text name capture.
const (
	confIdentifier = 0.95
	confDate       = 0.85
	confName       = 0.75
	confFreeText   = 0.6
	confFloorNone  = 0.1 // overall when nothing matched at all
)

type fieldPattern struct {
	field      string
	confidence float64
	patterns   []*regexp.Regexp
}

func rx(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(e)
	}
	return out
}

var passportPatterns = []fieldPattern{
	{"given_name", confName, rx(`(?i)given\s*names?\s*[:\-]\s*(.+)`, `(?i)first\s*name\s*[:\-]\s*(.+)`)},
	{"family_name", confName, rx(`(?i)surname\s*[:\-]\s*(.+)`, `(?i)family\s*name\s*[:\-]\s*(.+)`, `(?i)last\s*name\s*[:\-]\s*(.+)`)},
	{"passport_number", confIdentifier, rx(`(?i)passport\s*(?:no|number)\.?\s*[:\-]\s*([A-Z0-9]+)`, `\b([A-Z]{1,2}\d{7,8})\b`)},
	{"nationality", confFreeText, rx(`(?i)nationality\s*[:\-]\s*(.+)`)},
	{"date_of_birth", confDate, rx(`(?i)(?:date\s*of\s*birth|dob|birth\s*date)\s*[:\-]\s*(.+)`)},
	{"expiry_date", confDate, rx(`(?i)(?:date\s*of\s*expiry|expiry\s*date|expires)\s*[:\-]\s*(.+)`)},
	{"sex", confFreeText, rx(`(?i)\bsex\s*[:\-]\s*([MF]|male|female)\b`)},
}

var transcriptPatterns = []fieldPattern{
	{"student_name", confName, rx(`(?i)student\s*name\s*[:\-]\s*(.+)`, `(?i)\bname\s*[:\-]\s*(.+)`)},
	{"institution", confFreeText, rx(`(?i)(?:institution|school|college|university)\s*[:\-]\s*(.+)`)},
	{"qualification", confFreeText, rx(`(?i)(?:qualification|course|program(?:me)?)\s*[:\-]\s*(.+)`)},
	{"year_completed", confDate, rx(`(?i)(?:year\s*completed|completion\s*year|graduated)\s*[:\-]\s*(\d{4})`, `\b(19\d{2}|20\d{2})\b`)},
	{"gpa", confIdentifier, rx(`(?i)\bGPA\s*[:\-]\s*([0-4](?:\.\d{1,2})?)`)},
}

var englishTestPatterns = []fieldPattern{
	{"test_type", confIdentifier, rx(`(?i)\b(IELTS|TOEFL|PTE|OET|Cambridge)\b`)},
	{"candidate_name", confName, rx(`(?i)candidate\s*name\s*[:\-]\s*(.+)`, `(?i)\bname\s*[:\-]\s*(.+)`)},
	{"overall_score", confIdentifier, rx(`(?i)overall\s*(?:band\s*)?score\s*[:\-]\s*(\d{1,3}(?:\.\d)?)`, `(?i)overall\s*[:\-]\s*(\d{1,3}(?:\.\d)?)`)},
	{"test_date", confDate, rx(`(?i)test\s*date\s*[:\-]\s*(.+)`, `(?i)date\s*of\s*test\s*[:\-]\s*(.+)`)},
}

var idCardPatterns = []fieldPattern{
	{"given_name", confName, rx(`(?i)given\s*names?\s*[:\-]\s*(.+)`, `(?i)first\s*name\s*[:\-]\s*(.+)`)},
	{"family_name", confName, rx(`(?i)family\s*name\s*[:\-]\s*(.+)`, `(?i)surname\s*[:\-]\s*(.+)`)},
	{"id_number", confIdentifier, rx(`(?i)(?:id|card)\s*(?:no|number)\.?\s*[:\-]\s*([A-Z0-9\-]+)`)},
	{"date_of_birth", confDate, rx(`(?i)(?:date\s*of\s*birth|dob)\s*[:\-]\s*(.+)`)},
	{"address", confFreeText, rx(`(?i)address\s*[:\-]\s*(.+)`)},
}

var genericPatterns = []fieldPattern{
	{"name", confName, rx(`(?i)\bname\s*[:\-]\s*(.+)`)},
	{"reference_number", confIdentifier, rx(`(?i)(?:reference|ref)\.?\s*(?:no|number)?\.?\s*[:\-]\s*([A-Z0-9\-]+)`)},
	{"date", confDate, rx(`(?i)\bdate\s*[:\-]\s*(.+)`)},
}

func patternsFor(typeCode string) []fieldPattern {
	switch typeCode {
	case "PASSPORT":
		return passportPatterns
	case "TRANSCRIPT":
		return transcriptPatterns
	case "ENGLISH_TEST":
		return englishTestPatterns
	case "ID_CARD":
		return idCardPatterns
	default:
		return genericPatterns
	}
}

// ExtractFields scans the recognized text line by line and returns every
// field a pattern matched, with per-field confidence plus an "overall"
// aggregate. Tolerates any input, including empty.
func ExtractFields(raw, typeCode string) dto.OCRResult {
	start := time.Now()

	lines := strings.Split(raw, "\n")
	extracted := map[string]string{}
	scores := map[string]float64{}

	for _, fp := range patternsFor(typeCode) {
		if _, done := extracted[fp.field]; done {
			continue
		}
	scan:
		for _, re := range fp.patterns {
			for _, line := range lines {
				m := re.FindStringSubmatch(line)
				if m == nil {
					continue
				}
				val := m[0]
				if len(m) > 1 {
					val = m[1]
				}
				val = cleanValue(val)
				if val == "" {
					continue
				}
				extracted[fp.field] = val
				scores[fp.field] = fp.confidence
				break scan
			}
		}
	}

	overall := confFloorNone
	if len(scores) > 0 {
		sum := 0.0
		for _, v := range scores {
			sum += v
		}
		overall = sum / float64(len(scores))
	}
	scores["overall"] = overall

	return dto.OCRResult{
		RawText:          raw,
		ExtractedData:    extracted,
		ConfidenceScores: scores,
		ProcessingTimeMS: time.Since(start).Milliseconds(),
	}
}

// cleanValue trims noise: everything after the first newline or pipe is
// discarded (multi-column OCR output bleeds through those).
func cleanValue(v string) string {
	if i := strings.IndexByte(v, '\n'); i >= 0 {
		v = v[:i]
	}
	if i := strings.IndexByte(v, '|'); i >= 0 {
		v = v[:i]
	}
	return strings.TrimSpace(v)
}
