package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePassportText = "PASSPORT\n" +
	"Given Names: JOHN\n" +
	"Surname: SMITH\n" +
	"Passport No: N1234567\n" +
	"Nationality: AUSTRALIAN\n" +
	"Date of Birth: 12 MAR 2001\n" +
	"Date of Expiry: 12 MAR 2031\n" +
	"Sex: M"

func TestExtractFieldsPassport(t *testing.T) {
	result := ExtractFields(samplePassportText, "PASSPORT")

	assert.Equal(t, "JOHN", result.ExtractedData["given_name"])
	assert.Equal(t, "SMITH", result.ExtractedData["family_name"])
	assert.Equal(t, "N1234567", result.ExtractedData["passport_number"])
	assert.Equal(t, "AUSTRALIAN", result.ExtractedData["nationality"])
	assert.Equal(t, "12 MAR 2001", result.ExtractedData["date_of_birth"])
	assert.Equal(t, "12 MAR 2031", result.ExtractedData["expiry_date"])
	assert.Equal(t, "M", result.ExtractedData["sex"])

	assert.Equal(t, 0.75, result.ConfidenceScores["given_name"])
	assert.Equal(t, 0.95, result.ConfidenceScores["passport_number"])
	assert.Equal(t, 0.85, result.ConfidenceScores["date_of_birth"])
	assert.Greater(t, result.ConfidenceScores["overall"], 0.5)
	assert.Equal(t, samplePassportText, result.RawText)
}

func TestExtractFieldsPassportNumberWithoutLabel(t *testing.T) {
	// MRZ-style bare number still matches the standalone pattern
	result := ExtractFields("some header\nN7654321\nother noise", "PASSPORT")
	assert.Equal(t, "N7654321", result.ExtractedData["passport_number"])
	assert.Equal(t, 0.95, result.ConfidenceScores["passport_number"])
}

func TestExtractFieldsEmptyInput(t *testing.T) {
	result := ExtractFields("", "PASSPORT")
	assert.Empty(t, result.ExtractedData)
	assert.Equal(t, 0.1, result.ConfidenceScores["overall"])
}

func TestExtractFieldsGarbageInput(t *testing.T) {
	result := ExtractFields("zzzz qqqq 👾 ----", "TRANSCRIPT")
	// nothing matched, overall sits at the floor
	assert.Equal(t, 0.1, result.ConfidenceScores["overall"])
}

func TestExtractFieldsTranscript(t *testing.T) {
	raw := "ACADEMIC TRANSCRIPT\n" +
		"Student Name: PRIYA SHARMA\n" +
		"Institution: Springfield Senior College\n" +
		"Qualification: Senior Secondary Certificate\n" +
		"Year Completed: 2019\n" +
		"GPA: 3.4"
	result := ExtractFields(raw, "TRANSCRIPT")

	assert.Equal(t, "PRIYA SHARMA", result.ExtractedData["student_name"])
	assert.Equal(t, "Springfield Senior College", result.ExtractedData["institution"])
	assert.Equal(t, "Senior Secondary Certificate", result.ExtractedData["qualification"])
	assert.Equal(t, "2019", result.ExtractedData["year_completed"])
	assert.Equal(t, "3.4", result.ExtractedData["gpa"])
}

func TestExtractFieldsEnglishTest(t *testing.T) {
	raw := "IELTS Test Report Form\n" +
		"Candidate Name: WEI CHEN\n" +
		"Overall Band Score: 6.5\n" +
		"Test Date: 2023-08-14"
	result := ExtractFields(raw, "ENGLISH_TEST")

	assert.Equal(t, "IELTS", result.ExtractedData["test_type"])
	assert.Equal(t, "WEI CHEN", result.ExtractedData["candidate_name"])
	assert.Equal(t, "6.5", result.ExtractedData["overall_score"])
	assert.Equal(t, "2023-08-14", result.ExtractedData["test_date"])
}

func TestExtractFieldsUnknownTypeUsesGenericPatterns(t *testing.T) {
	raw := "Name: MARIA GARCIA\nReference Number: REF-0042\nDate: 2024-01-15"
	result := ExtractFields(raw, "SOMETHING_ELSE")

	assert.Equal(t, "MARIA GARCIA", result.ExtractedData["name"])
	assert.Equal(t, "REF-0042", result.ExtractedData["reference_number"])
	assert.Equal(t, "2024-01-15", result.ExtractedData["date"])
}

func TestExtractFieldsFirstMatchWins(t *testing.T) {
	raw := "Given Names: FIRST\nGiven Names: SECOND"
	result := ExtractFields(raw, "PASSPORT")
	assert.Equal(t, "FIRST", result.ExtractedData["given_name"])
}

func TestCleanValueTruncatesAtColumnBleed(t *testing.T) {
	result := ExtractFields("Nationality: INDIAN | Sex: F", "PASSPORT")
	require.Contains(t, result.ExtractedData, "nationality")
	assert.Equal(t, "INDIAN", result.ExtractedData["nationality"])
}
