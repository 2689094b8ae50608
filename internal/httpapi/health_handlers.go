package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/ChiChi812/course-recommendation-bot/internal/recommend"
)

type HealthHandler struct {
	Engine *recommend.Engine
}

func (h HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	_ = json.NewEncoder(w).Encode(map[string]any{
		"ok":      true,
		"courses": h.Engine.Catalog().Len(),
	})
}
