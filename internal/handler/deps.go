package handler

import (
	"pandacare/internal/app/backend"
	"pandacare/internal/configs"
)

// AppDeps carries the shared dependencies injected into every handler.
type AppDeps struct {
	Config  *configs.AppConfig
	Backend *backend.Client
}
