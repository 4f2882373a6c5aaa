package scoring

import (
	"strings"
	"unicode"
)

// Similarity is the Sørensen–Dice coefficient of the character bigrams of a and b,
// compared lowercased with whitespace removed. 1 means identical, 0 means nothing shared.
func Similarity(a, b string) float64 {
	ra := normalize(a)
	rb := normalize(b)
	if string(ra) == string(rb) {
		return 1
	}
	if len(ra) < 2 || len(rb) < 2 {
		return 0
	}

	counts := make(map[[2]rune]int, len(ra)-1)
	for i := 0; i < len(ra)-1; i++ {
		counts[[2]rune{ra[i], ra[i+1]}]++
	}
	shared := 0
	for i := 0; i < len(rb)-1; i++ {
		bg := [2]rune{rb[i], rb[i+1]}
		if counts[bg] > 0 {
			counts[bg]--
			shared++
		}
	}
	return 2 * float64(shared) / float64(len(ra)+len(rb)-2)
}

func normalize(s string) []rune {
	out := make([]rune, 0, len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsSpace(r) {
			continue
		}
		out = append(out, r)
	}
	return out
}
