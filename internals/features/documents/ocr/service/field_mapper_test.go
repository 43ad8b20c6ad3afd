package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapToApplicationFieldsPassport(t *testing.T) {
	extracted := map[string]string{
		"given_name":      "JOHN",
		"family_name":     "SMITH",
		"passport_number": "n1234567",
		"nationality":     "AUSTRALIAN",
		"date_of_birth":   "12 MAR 2001",
		"sex":             "M", // no mapping, must not leak through
	}

	mapped := MapToApplicationFields(extracted, "PASSPORT")
	assert.Equal(t, map[string]string{
		"personal_details.given_name":      "John",
		"personal_details.family_name":     "Smith",
		"personal_details.passport_number": "N1234567",
		"personal_details.nationality":     "Australia",
		"personal_details.date_of_birth":   "2001-03-12",
	}, mapped)
}

func TestMapToApplicationFieldsDropsGarbageNames(t *testing.T) {
	cases := []struct {
		name  string
		value string
	}{
		{"too short", "J"},
		{"contains digits", "J0HN"},
		{"captured label", "Given Names"},
		{"captured label lowercase", "surname"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mapped := MapToApplicationFields(map[string]string{"given_name": tc.value}, "PASSPORT")
			assert.NotContains(t, mapped, "personal_details.given_name")
		})
	}
}

func TestMapToApplicationFieldsDropsUnparseableDates(t *testing.T) {
	mapped := MapToApplicationFields(map[string]string{"date_of_birth": "sometime in march"}, "PASSPORT")
	assert.NotContains(t, mapped, "personal_details.date_of_birth")
}

func TestMapToApplicationFieldsUnknownTypeMapsNothing(t *testing.T) {
	mapped := MapToApplicationFields(map[string]string{"name": "Maria Garcia"}, "GENERIC")
	assert.Empty(t, mapped)
}

func TestTitleCase(t *testing.T) {
	cases := []struct{ in, want string }{
		{"JOHN", "John"},
		{"maria del carmen", "Maria Del Carmen"},
		{"o'brien-smith", "O'Brien-Smith"},
		{"NGUYEN VAN", "Nguyen Van"},
		{"  padded  ", "Padded"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, titleCase(tc.in), "titleCase(%q)", tc.in)
	}
}

func TestNormalizeIdentifier(t *testing.T) {
	got, ok := normalizeIdentifier(" n-123 4567 ")
	assert.True(t, ok)
	assert.Equal(t, "N1234567", got)

	_, ok = normalizeIdentifier("---")
	assert.False(t, ok)
}

func TestCanonicalCountry(t *testing.T) {
	cases := []struct{ in, want string }{
		{"AUS", "Australia"},
		{"AUSTRALIAN", "Australia"},
		{"au", "Australia"},
		{"VIETNAMESE", "Vietnam"},
		{"NEPALI", "Nepal"},
		{"sri lankan", "Sri Lanka"},
		// unknown values fall back to title case, not rejection
		{"WAKANDA", "Wakanda"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, canonicalCountry(tc.in), "canonicalCountry(%q)", tc.in)
	}
}

func TestNormalizeDateLayouts(t *testing.T) {
	cases := []struct{ in, want string }{
		{"12 MAR 2001", "2001-03-12"},
		{"2001-03-12", "2001-03-12"},
		{"12/03/2001", "2001-03-12"},
		{"2 January 2001", "2001-01-02"},
	}
	for _, tc := range cases {
		got, ok := normalizeDate(tc.in)
		assert.True(t, ok, "normalizeDate(%q)", tc.in)
		assert.Equal(t, tc.want, got)
	}

	_, ok := normalizeDate("the twelfth of never")
	assert.False(t, ok)
}

func TestPathForField(t *testing.T) {
	path, ok := PathForField("passport_number", "PASSPORT")
	assert.True(t, ok)
	assert.Equal(t, "personal_details.passport_number", path)

	path, ok = PathForField("qualification", "TRANSCRIPT")
	assert.True(t, ok)
	assert.Equal(t, "qualifications.entries[0].name", path)

	_, ok = PathForField("sex", "PASSPORT")
	assert.False(t, ok)
}
