package httpapi

import "net/http"

func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: HealthHandler{Engine: d.Engine}.Health,
	}))

	// Engine reads
	rh := RecommendHandler{Engine: d.Engine, Hub: d.Hub}
	mux.HandleFunc("/recommend", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: rh.Recommend,
	}))
	mux.HandleFunc("/trending", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: rh.Trending,
	}))
	mux.HandleFunc("/catalog/stats", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: rh.Stats,
	}))

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))
	mux.HandleFunc("/config/validate", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Validate,
	}))

	// Secrets (use cfgVal, NOT a snapshot cfg)
	sh := SecretsHandler{CfgVal: d.CfgVal}
	mux.HandleFunc("/api/secrets/telegram", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.SetBotToken,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	return mux
}
