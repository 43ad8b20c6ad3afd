package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildUnverifiedMessage(t *testing.T) {
	cases := []struct {
		name  string
		count int64
		names []string
		want  string
	}{
		{
			"count only",
			2, nil,
			"2 document(s) are not verified",
		},
		{
			"names within sample",
			2, []string{"Passport", "Academic Transcript"},
			"2 document(s) are not verified: Passport, Academic Transcript",
		},
		{
			"count exceeds sample",
			5, []string{"Passport", "Academic Transcript", "English Test Result"},
			"5 document(s) are not verified: Passport, Academic Transcript, English Test Result, …",
		},
		{
			"sample truncated to three",
			4, []string{"A", "B", "C", "D"},
			"4 document(s) are not verified: A, B, C, …",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, BuildUnverifiedMessage(tc.count, tc.names))
		})
	}
}
