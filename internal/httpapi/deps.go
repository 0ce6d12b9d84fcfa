package httpapi

import (
	"database/sql"
	"sync/atomic"

	"jobfinder-engine/internal/config"
	"jobfinder-engine/internal/events"
	"jobfinder-engine/internal/search"
	"jobfinder-engine/internal/session"
)

type Deps struct {
	DB *sql.DB

	Hub *events.Hub

	// Atomic store so config saves take effect without restart
	CfgVal *atomic.Value // stores config.Config

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	Sessions *session.Registry
	Searcher *search.Service
}
