package httpapi

import (
	"encoding/json"
	"net/http"
	"sync/atomic"

	"github.com/ChiChi812/course-recommendation-bot/internal/config"
	"github.com/ChiChi812/course-recommendation-bot/internal/secrets"
)

type SecretsHandler struct {
	CfgVal *atomic.Value // stores config.Config
}

type setBotTokenReq struct {
	Token string `json:"token"`
}

// SetBotToken stores the Telegram bot token in the OS keychain. Takes effect
// on next restart of the poll loop.
func (h SecretsHandler) SetBotToken(w http.ResponseWriter, r *http.Request) {
	var req setBotTokenReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	cfg := h.CfgVal.Load().(config.Config)
	if err := secrets.SetBotToken(cfg.Telegram.KeyringAccount, req.Token); err != nil {
		http.Error(w, "failed to store token: "+err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
