package scoring

import (
	"fmt"
	"regexp"
	"strings"

	"sourcing-trainer/models"
)

// DefaultMaxOutreachWords is used when a game does not set its own limit.
const DefaultMaxOutreachWords = 150

// SimilarityBoostThreshold is the similarity above which a submission is treated as
// matching the reference solution.
const SimilarityBoostThreshold = 0.9

// Result is the advisory outcome of a local validation. It is attached to the grading
// request and shown to the player, but never stored as the attempt score.
type Result struct {
	Kind       models.ValidationKind `json:"kind"`
	Score      int                   `json:"score"`
	Checks     map[string]bool       `json:"checks"`
	Feedback   []string              `json:"feedback"`
	Similarity float64               `json:"similarity"`
}

var (
	orOperator  = regexp.MustCompile(`\bOR\b`)
	andOperator = regexp.MustCompile(`\bAND\b`)
	grouping    = regexp.MustCompile(`\(.*\)`)
	subjectLine = regexp.MustCompile(`(?im)^\s*subject:`)
)

// Cliches is the fixed list of outreach phrases that cost points.
var Cliches = []string{
	"i hope this email finds you well",
	"i hope this finds you well",
	"exciting opportunity",
	"rockstar",
	"ninja",
	"guru",
	"perfect fit",
	"touch base",
	"circle back",
	"fast-paced environment",
	"synergy",
	"i came across your profile",
}

// ValidateBooleanSearch scores the structure of a boolean search string.
func ValidateBooleanSearch(text string, requiredKeywords []string) Result {
	res := newResult(models.ValidationBoolean)

	hasOr := orOperator.MatchString(text)
	hasAnd := andOperator.MatchString(text)
	hasGrouping := grouping.MatchString(text)

	res.Checks["has_operators"] = hasOr || hasAnd
	res.Checks["has_grouping"] = hasGrouping

	if (hasOr || hasAnd) && !hasGrouping {
		res.Score -= 15
		res.Feedback = append(res.Feedback, "Group OR alternatives with parentheses so AND binds the way you expect.")
	}
	if !hasOr && !hasAnd {
		res.Score -= 20
		res.Feedback = append(res.Feedback, "Use AND / OR operators to combine your search terms.")
	}

	lower := strings.ToLower(text)
	allPresent := true
	for _, kw := range requiredKeywords {
		if !strings.Contains(lower, strings.ToLower(kw)) {
			allPresent = false
			res.Score -= 10
			res.Feedback = append(res.Feedback, fmt.Sprintf("Missing keyword: %s", kw))
		}
	}
	res.Checks["has_required_keywords"] = allPresent

	if res.Score == 100 {
		res.Feedback = append(res.Feedback, "Well-structured boolean string.")
	}
	res.Score = floor(res.Score)
	return res
}

// ValidateOutreach scores an outreach message for length and cliché use.
func ValidateOutreach(text string, maxWords int) Result {
	if maxWords <= 0 {
		maxWords = DefaultMaxOutreachWords
	}
	res := newResult(models.ValidationOutreach)

	words := len(strings.Fields(text))
	res.Checks["long_enough"] = words >= 10
	res.Checks["within_length"] = words <= maxWords
	if words < 10 {
		res.Score -= 40
		res.Feedback = append(res.Feedback, "Message is too short to be a meaningful outreach.")
	} else if words > maxWords {
		res.Score -= 10
		res.Feedback = append(res.Feedback, fmt.Sprintf("Message is %d words; keep it under %d.", words, maxWords))
	}

	lower := strings.ToLower(text)
	found := 0
	for _, c := range Cliches {
		if strings.Contains(lower, c) {
			found++
			res.Score -= 5
			res.Feedback = append(res.Feedback, fmt.Sprintf("Avoid the cliché %q.", c))
		}
	}
	res.Checks["cliche_free"] = found == 0
	res.Checks["has_subject_line"] = subjectLine.MatchString(text)

	res.Score = floor(res.Score)
	return res
}

// ValidateGeneral only checks that the answer has some substance.
func ValidateGeneral(text string) Result {
	res := newResult(models.ValidationGeneral)
	enough := len(strings.Fields(text)) >= 5
	res.Checks["long_enough"] = enough
	if !enough {
		res.Score = 20
		res.Feedback = append(res.Feedback, "Add more detail to your answer.")
	}
	return res
}

// ApplySimilarity records sim on res and boosts a near match of the reference.
// The boost only ever raises the score.
func ApplySimilarity(res Result, sim float64) Result {
	res.Similarity = sim
	if sim > SimilarityBoostThreshold {
		res.Feedback = append(res.Feedback, "Very close to the reference solution.")
		if res.Score < 95 {
			res.Score = 95
		}
	}
	return res
}

// Validate runs the heuristic selected by spec, then the reference comparison when
// a reference solution exists.
func Validate(spec models.ValidationSpec, text, reference string) Result {
	var res Result
	switch spec.Kind {
	case models.ValidationBoolean:
		res = ValidateBooleanSearch(text, spec.RequiredKeywords)
	case models.ValidationOutreach:
		res = ValidateOutreach(text, spec.MaxWords)
	default:
		res = ValidateGeneral(text)
	}
	if strings.TrimSpace(reference) != "" {
		res = ApplySimilarity(res, Similarity(text, reference))
	}
	return res
}

// Summary renders res as a short plain-text block for the grading prompt.
func (r Result) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Automated pre-check (%s): %d/100", r.Kind, r.Score)
	if r.Similarity > 0 {
		fmt.Fprintf(&b, ", similarity to reference %.2f", r.Similarity)
	}
	for _, f := range r.Feedback {
		b.WriteString("\n- ")
		b.WriteString(f)
	}
	return b.String()
}

func newResult(kind models.ValidationKind) Result {
	return Result{Kind: kind, Score: 100, Checks: make(map[string]bool)}
}

func floor(score int) int {
	if score < 0 {
		return 0
	}
	return score
}
