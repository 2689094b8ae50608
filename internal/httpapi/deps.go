package httpapi

import (
	"sync/atomic"

	"github.com/ChiChi812/course-recommendation-bot/internal/config"
	"github.com/ChiChi812/course-recommendation-bot/internal/events"
	"github.com/ChiChi812/course-recommendation-bot/internal/recommend"
)

type Deps struct {
	Engine *recommend.Engine

	Hub *events.Hub

	// Atomic store holding config.Config
	CfgVal *atomic.Value

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)
}
