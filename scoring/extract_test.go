package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractScore(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   int
		wantOK bool
	}{
		{"inline", "blah SCORE: 42 blah", 42, true},
		{"clamped high", "SCORE: 150", 100, true},
		{"clamped negative", "SCORE: -7", 0, true},
		{"no marker", "no score here", 0, false},
		{"lowercase", "score: 61", 61, true},
		{"markdown bold", "Great work.\n**SCORE:** 88\nFeedback: ...", 88, true},
		{"first match wins", "SCORE: 10\nSCORE: 90", 10, true},
		{"zero is a score", "SCORE: 0", 0, true},
		{"marker without digits", "SCORE: high", 0, false},
		{"overflow", "SCORE: 99999999999999999999999", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractScore(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractScoreRaw_ReportsClamping(t *testing.T) {
	_, clamped, ok := ExtractScoreRaw("SCORE: 150")
	assert.True(t, ok)
	assert.True(t, clamped)

	_, clamped, ok = ExtractScoreRaw("SCORE: 73")
	assert.True(t, ok)
	assert.False(t, clamped)
}
