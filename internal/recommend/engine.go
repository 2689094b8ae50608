package recommend

import (
	"errors"
	"sort"

	"github.com/ChiChi812/course-recommendation-bot/internal/catalog"
	"github.com/ChiChi812/course-recommendation-bot/internal/config"
	"github.com/ChiChi812/course-recommendation-bot/internal/domain"
)

// Engine answers the two read operations over one immutable catalog:
// Recommend (relevance search) and Trending (popularity ranking). Both are
// pure reads and safe for concurrent use.
type Engine struct {
	cat  *catalog.Catalog
	opts config.Scoring

	// trending index, sorted once at construction
	trending []domain.Course
}

var ErrEmptyCatalog = errors.New("recommend: catalog has no courses")

func New(cat *catalog.Catalog, opts config.Scoring) (*Engine, error) {
	if cat == nil || cat.Len() == 0 {
		return nil, ErrEmptyCatalog
	}

	trending := make([]domain.Course, cat.Len())
	copy(trending, cat.Courses())
	sort.SliceStable(trending, func(i, j int) bool {
		a, b := trending[i], trending[j]
		if a.StudentsEnrolled != b.StudentsEnrolled {
			return a.StudentsEnrolled > b.StudentsEnrolled
		}
		if a.Rating != b.Rating {
			return a.Rating > b.Rating
		}
		return a.Title < b.Title
	})

	return &Engine{cat: cat, opts: opts, trending: trending}, nil
}

func (e *Engine) Catalog() *catalog.Catalog { return e.cat }

// Trending returns the topK courses by enrollment, ties broken by rating then
// title. topK <= 0 returns an empty slice; topK past the catalog size returns
// the whole catalog.
func (e *Engine) Trending(topK int) []domain.Course {
	if topK <= 0 {
		return nil
	}
	if topK > len(e.trending) {
		topK = len(e.trending)
	}
	out := make([]domain.Course, topK)
	copy(out, e.trending[:topK])
	return out
}

// Recommend scores every course against the query and returns at most topK
// results above the relevance floor, best first. An empty query or topK <= 0
// returns an empty slice; short or empty result lists are normal, never an
// error, and are never padded with irrelevant courses.
func (e *Engine) Recommend(query string, topK int) []domain.Course {
	if topK <= 0 {
		return nil
	}
	q := normalizeQuery(query)
	if len(q.tokens) == 0 {
		return nil
	}

	type scored struct {
		c     domain.Course
		score float64
	}
	var hits []scored
	for _, c := range e.cat.Courses() {
		s := e.score(c, q)
		if s > e.opts.RelevanceFloor {
			hits = append(hits, scored{c: c, score: s})
		}
	}

	// Ties must not depend on incidental input order.
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		a, b := hits[i].c, hits[j].c
		if a.Rating != b.Rating {
			return a.Rating > b.Rating
		}
		if a.StudentsEnrolled != b.StudentsEnrolled {
			return a.StudentsEnrolled > b.StudentsEnrolled
		}
		return a.Title < b.Title
	})

	if topK > len(hits) {
		topK = len(hits)
	}
	out := make([]domain.Course, topK)
	for i := range out {
		out[i] = hits[i].c
	}
	return out
}
