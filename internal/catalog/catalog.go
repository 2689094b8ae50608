package catalog

import "github.com/ChiChi812/course-recommendation-bot/internal/domain"

// Catalog is the normalized course collection. Built exactly once at startup
// and read-only afterwards, so concurrent readers need no locking. A re-load
// builds a brand-new Catalog; nothing mutates a live one.
type Catalog struct {
	courses []domain.Course
	stats   Stats
}

// Stats is the load-time diagnostic for a catalog build.
type Stats struct {
	Loaded  int `json:"loaded"`
	Skipped int `json:"skipped"` // rows without a usable title
	Deduped int `json:"deduped"` // exact duplicate raw rows dropped
}

// New wraps an already-normalized course list. Load is the usual way in;
// this exists for callers that assemble records themselves.
func New(courses []domain.Course, stats Stats) *Catalog {
	return &Catalog{courses: courses, stats: stats}
}

func (c *Catalog) Len() int { return len(c.courses) }

// Courses returns the backing slice. Callers must treat it as read-only.
func (c *Catalog) Courses() []domain.Course { return c.courses }

func (c *Catalog) Stats() Stats { return c.stats }
