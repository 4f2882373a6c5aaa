// Package scoring holds the pure, local scoring helpers: the parser that turns model
// output into a numeric score and the advisory heuristics run before grading.
package scoring

import (
	"regexp"
	"strconv"
)

const (
	MinScore = 0
	MaxScore = 100
)

var scoreMarker = regexp.MustCompile(`(?i)SCORE:[\s*]*(-?\d+)`)

// ExtractScore returns the first SCORE: marker in text, clamped into [0,100].
// ok is false when no marker is present or the value is not a valid integer;
// that case is distinct from a legitimate score of 0.
func ExtractScore(text string) (score int, ok bool) {
	score, _, ok = ExtractScoreRaw(text)
	return score, ok
}

// ExtractScoreRaw is ExtractScore that also reports whether clamping changed the value.
func ExtractScoreRaw(text string) (score int, clamped bool, ok bool) {
	m := scoreMarker.FindStringSubmatch(text)
	if m == nil {
		return 0, false, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false, false
	}
	c := Clamp(n)
	return c, c != n, true
}

// Clamp bounds n into the valid score range.
func Clamp(n int) int {
	if n < MinScore {
		return MinScore
	}
	if n > MaxScore {
		return MaxScore
	}
	return n
}
