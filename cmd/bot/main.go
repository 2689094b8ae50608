package main

import (
	"context"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/ChiChi812/course-recommendation-bot/internal/bot"
	"github.com/ChiChi812/course-recommendation-bot/internal/catalog"
	"github.com/ChiChi812/course-recommendation-bot/internal/config"
	"github.com/ChiChi812/course-recommendation-bot/internal/events"
	"github.com/ChiChi812/course-recommendation-bot/internal/httpapi"
	"github.com/ChiChi812/course-recommendation-bot/internal/prefs"
	"github.com/ChiChi812/course-recommendation-bot/internal/recommend"
	"github.com/ChiChi812/course-recommendation-bot/internal/secrets"
	"github.com/ChiChi812/course-recommendation-bot/internal/telegram"
)

func main() {
	dataDir := os.Getenv("COURSEBOT_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	// Load config and keep it reloadable via the API.
	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		return config.Load(userCfgPath)
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	cfg, vr := config.NormalizeAndValidate(cfg)
	for _, w := range vr.Warnings {
		log.Printf("level=warn msg=%q", w)
	}
	if !vr.OK() {
		for _, e := range vr.Errors {
			log.Printf("level=error msg=%q", e)
		}
		log.Fatalf("config invalid (%s)", userCfgPath)
	}
	cfgVal.Store(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Build the catalog once; it stays immutable for the process lifetime.
	loadCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	cat, err := catalog.Load(loadCtx, cfg.Dataset)
	cancel()
	if err != nil {
		log.Fatalf("catalog load failed: %v", err)
	}

	engine, err := recommend.New(cat, cfg.Scoring)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("[main] catalog ready courses=%d skipped=%d", cat.Len(), cat.Stats().Skipped)

	hub := events.NewHub()
	hub.Publish(events.MakeEvent("", events.TypeCatalogLoaded, 1, cat.Stats()))

	prefStore := prefs.NewStore()

	mux := httpapi.NewMux(httpapi.Deps{
		Engine:      engine,
		Hub:         hub,
		CfgVal:      &cfgVal,
		UserCfgPath: userCfgPath,
		LoadCfg:     loadCfg,
	})

	handler := httpapi.Chain(mux,
		httpapi.RequestID,
		httpapi.AccessLog,
		httpapi.Recover,
		httpapi.Cors,
	)

	addr := net.JoinHostPort("127.0.0.1", strconv.Itoa(cfg.App.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("[main] api listening on http://%s", addr)

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			log.Fatalf("api server: %v", err)
		}
	}()

	if cfg.Telegram.Enabled {
		token, err := secrets.GetBotToken(cfg.Telegram.KeyringAccount)
		if err != nil {
			log.Fatalf("telegram enabled but %v", err)
		}
		if err := telegram.ValidateToken(token); err != nil {
			log.Fatalf("telegram: %v", err)
		}

		b := &bot.Bot{
			TG:     telegram.NewClient(token, cfg.Telegram.MessagesPerSec),
			Engine: engine,
			Prefs:  prefStore,
			Hub:    hub,
			Cfg:    cfg,
		}
		go func() {
			if err := b.Run(ctx); err != nil && ctx.Err() == nil {
				log.Fatalf("bot loop: %v", err)
			}
		}()
	} else {
		log.Printf("[main] telegram disabled; api-only mode")
	}

	<-ctx.Done()
	log.Printf("[main] shutting down")

	shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutCtx)
}
