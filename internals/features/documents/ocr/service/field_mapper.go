// internals/features/documents/ocr/service/field_mapper.go
package service

import (
	"regexp"
	"strings"
	"time"
)

/* =========================================================
   Field mapper: extracted document fields → application
   form field paths (dotted/array notation into step JSON).
   ========================================================= */

type valueKind int

const (
	kindName valueKind = iota
	kindIdentifier
	kindCountry
	kindDate
	kindRaw
)

type fieldMapping struct {
	source string // key in extracted_data
	path   string // dotted path into the application step data
	kind   valueKind
}

var passportMappings = []fieldMapping{
	{"given_name", "personal_details.given_name", kindName},
	{"family_name", "personal_details.family_name", kindName},
	{"passport_number", "personal_details.passport_number", kindIdentifier},
	{"nationality", "personal_details.nationality", kindCountry},
	{"date_of_birth", "personal_details.date_of_birth", kindDate},
}

var idCardMappings = []fieldMapping{
	{"given_name", "personal_details.given_name", kindName},
	{"family_name", "personal_details.family_name", kindName},
	{"date_of_birth", "personal_details.date_of_birth", kindDate},
	{"address", "personal_details.address_line1", kindRaw},
}

var englishTestMappings = []fieldMapping{
	{"test_type", "language_cultural.english_test_type", kindIdentifier},
	{"overall_score", "language_cultural.english_test_score", kindRaw},
	{"test_date", "language_cultural.english_test_date", kindDate},
}

var transcriptMappings = []fieldMapping{
	{"qualification", "qualifications.entries[0].name", kindRaw},
	{"institution", "qualifications.entries[0].institution", kindRaw},
	{"year_completed", "qualifications.entries[0].year_awarded", kindRaw},
}

func mappingsFor(typeCode string) []fieldMapping {
	switch typeCode {
	case "PASSPORT":
		return passportMappings
	case "ID_CARD":
		return idCardMappings
	case "ENGLISH_TEST":
		return englishTestMappings
	case "TRANSCRIPT":
		return transcriptMappings
	default:
		return nil
	}
}

// MapToApplicationFields normalizes extracted values and places them on
// application field paths. Values that fail normalization (OCR garbage,
// captured label text) are dropped, not passed through.
func MapToApplicationFields(extracted map[string]string, typeCode string) map[string]string {
	out := map[string]string{}
	for _, fm := range mappingsFor(typeCode) {
		raw, ok := extracted[fm.source]
		if !ok {
			continue
		}
		val, ok := normalizeValue(raw, fm.kind)
		if !ok {
			continue
		}
		out[fm.path] = val
	}
	return out
}

// PathForField resolves one extracted field name to its application path.
func PathForField(field, typeCode string) (string, bool) {
	for _, fm := range mappingsFor(typeCode) {
		if fm.source == field {
			return fm.path, true
		}
	}
	return "", false
}

func normalizeValue(raw string, kind valueKind) (string, bool) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return "", false
	}
	switch kind {
	case kindName:
		return normalizeName(v)
	case kindIdentifier:
		return normalizeIdentifier(v)
	case kindCountry:
		return canonicalCountry(v), true
	case kindDate:
		return normalizeDate(v)
	default:
		return v, true
	}
}

/* ===== names ===== */

var nameDigits = regexp.MustCompile(`\d`)

// label text the OCR layer sometimes captures instead of the value
var knownLabels = map[string]struct{}{
	"given name": {}, "given names": {}, "first name": {}, "surname": {},
	"family name": {}, "last name": {}, "name": {}, "date of birth": {},
	"nationality": {}, "candidate name": {}, "student name": {},
}

func normalizeName(v string) (string, bool) {
	if len(v) < 2 || nameDigits.MatchString(v) {
		return "", false
	}
	if _, isLabel := knownLabels[strings.ToLower(strings.TrimSpace(v))]; isLabel {
		return "", false
	}
	return titleCase(v), true
}

// titleCase uppercases the first letter of each word, including after
// hyphens and apostrophes ("o'brien-smith" → "O'Brien-Smith").
func titleCase(v string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	b := []rune(v)
	upNext := true
	for i, r := range b {
		if upNext && r >= 'a' && r <= 'z' {
			b[i] = r - 32
		}
		upNext = r == ' ' || r == '-' || r == '\''
	}
	return string(b)
}

/* ===== identifiers ===== */

var nonAlnum = regexp.MustCompile(`[^A-Za-z0-9]`)

func normalizeIdentifier(v string) (string, bool) {
	v = strings.ToUpper(nonAlnum.ReplaceAllString(v, ""))
	if v == "" {
		return "", false
	}
	return v, true
}

/* ===== countries / nationalities ===== */

// synonyms → canonical display names (ISO codes plus the demonyms
// passports actually print)
var countrySynonyms = map[string]string{
	"AU": "Australia", "AUS": "Australia", "AUSTRALIAN": "Australia",
	"CN": "China", "CHN": "China", "CHINESE": "China",
	"IN": "India", "IND": "India", "INDIAN": "India",
	"ID": "Indonesia", "IDN": "Indonesia", "INDONESIAN": "Indonesia",
	"VN": "Vietnam", "VNM": "Vietnam", "VIETNAMESE": "Vietnam",
	"NP": "Nepal", "NPL": "Nepal", "NEPALESE": "Nepal", "NEPALI": "Nepal",
	"PH": "Philippines", "PHL": "Philippines", "FILIPINO": "Philippines",
	"LK": "Sri Lanka", "LKA": "Sri Lanka", "SRI LANKAN": "Sri Lanka",
	"TH": "Thailand", "THA": "Thailand", "THAI": "Thailand",
	"BR": "Brazil", "BRA": "Brazil", "BRAZILIAN": "Brazil",
	"KR": "South Korea", "KOR": "South Korea", "KOREAN": "South Korea",
	"GB": "United Kingdom", "GBR": "United Kingdom", "BRITISH": "United Kingdom",
}

func canonicalCountry(v string) string {
	key := strings.ToUpper(strings.TrimSpace(v))
	if canon, ok := countrySynonyms[key]; ok {
		return canon
	}
	return titleCase(v)
}

/* ===== dates ===== */

var dateLayouts = []string{
	"2006-01-02", "02/01/2006", "02-01-2006", "2 Jan 2006",
	"02 Jan 2006", "2 January 2006", "02 January 2006", "Jan 2, 2006",
}

// normalizeDate parses the formats documents actually carry and emits
// ISO 8601. Passports print "12 MAR 2001"; forms expect "2001-03-12".
func normalizeDate(v string) (string, bool) {
	v = strings.TrimSpace(v)
	norm := titleCase(v) // month tokens: "12 MAR 2001" → "12 Mar 2001"
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, norm); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}
