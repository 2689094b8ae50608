package recommend

import (
	"math"
	"strings"
	"unicode"

	"github.com/ChiChi812/course-recommendation-bot/internal/domain"
)

type query struct {
	phrase string // full normalized query, for the exact-phrase boost
	tokens []string
}

func normalizeQuery(raw string) query {
	lower := strings.ToLower(strings.TrimSpace(raw))
	return query{
		phrase: lower,
		tokens: tokenize(lower),
	}
}

// tokenize splits on anything that is not a letter or digit.
func tokenize(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// score is the composite ranking value: token coverage over the searchable
// text, an exact-phrase boost on the title, and a small saturating quality
// prior. Zero coverage scores exactly zero, so a popular course can never
// clear the relevance floor on popularity alone.
func (e *Engine) score(c domain.Course, q query) float64 {
	searchable := strings.ToLower(c.Title)
	if c.Organization != domain.Unset {
		searchable += " " + strings.ToLower(c.Organization)
	}

	matched := 0
	for _, tok := range q.tokens {
		if strings.Contains(searchable, tok) {
			matched++
		}
	}
	if matched == 0 {
		return 0
	}
	coverage := float64(matched) / float64(len(q.tokens))

	s := coverage
	if strings.Contains(strings.ToLower(c.Title), q.phrase) {
		s += e.opts.PhraseWeight
	}
	s += e.qualityPrior(c)
	return s
}

// qualityPrior is bounded and saturating: each term is in [0,1] before its
// small weight, so a pile of extra enrollments cannot outrank a strong text
// match.
func (e *Engine) qualityPrior(c domain.Course) float64 {
	rating := c.Rating / 5

	enroll := math.Log1p(c.StudentsEnrolled) / math.Log1p(e.opts.EnrollSaturation)
	if enroll > 1 {
		enroll = 1
	}

	return e.opts.RatingWeight*rating + e.opts.EnrollWeight*enroll
}
