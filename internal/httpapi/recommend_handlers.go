package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/ChiChi812/course-recommendation-bot/internal/domain"
	"github.com/ChiChi812/course-recommendation-bot/internal/events"
	"github.com/ChiChi812/course-recommendation-bot/internal/recommend"
)

type RecommendHandler struct {
	Engine *recommend.Engine
	Hub    *events.Hub
}

type courseJSON struct {
	Title            string  `json:"title"`
	Organization     string  `json:"organization,omitempty"`
	CertificateType  string  `json:"certificate_type,omitempty"`
	Difficulty       string  `json:"difficulty,omitempty"`
	Rating           float64 `json:"rating"`
	StudentsEnrolled float64 `json:"students_enrolled"`
}

func toJSON(cs []domain.Course) []courseJSON {
	out := make([]courseJSON, len(cs))
	for i, c := range cs {
		out[i] = courseJSON{
			Title:            c.Title,
			Organization:     c.Organization,
			CertificateType:  c.CertificateType,
			Difficulty:       c.Difficulty,
			Rating:           c.Rating,
			StudentsEnrolled: c.StudentsEnrolled,
		}
	}
	return out
}

// parseK reads the k query parameter. Missing, garbage or non-positive values
// fall back to def; the engine itself treats non-positive as "empty result",
// so nothing here can make a request fail.
func parseK(r *http.Request, def int) int {
	raw := strings.TrimSpace(r.URL.Query().Get("k"))
	if raw == "" {
		return def
	}
	k, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return k
}

// Recommend serves GET /recommend?q=<query>&k=<n>. An empty query or zero
// matches returns an empty list with 200, not an error.
func (h RecommendHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	k := parseK(r, 10)

	courses := h.Engine.Recommend(q, k)

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, events.TypeQueryServed, 1,
		map[string]any{"results": len(courses)}))

	writeJSON(w, map[string]any{"query": q, "results": toJSON(courses)})
}

// Trending serves GET /trending?k=<n>.
func (h RecommendHandler) Trending(w http.ResponseWriter, r *http.Request) {
	k := parseK(r, 10)

	courses := h.Engine.Trending(k)

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, events.TypeTrendingServed, 1,
		map[string]any{"results": len(courses)}))

	writeJSON(w, map[string]any{"results": toJSON(courses)})
}

// Stats serves GET /catalog/stats.
func (h RecommendHandler) Stats(w http.ResponseWriter, r *http.Request) {
	cat := h.Engine.Catalog()
	writeJSON(w, map[string]any{
		"courses": cat.Len(),
		"load":    cat.Stats(),
	})
}
