package handler

import (
	"inkroom/internal/app/live"
	"inkroom/internal/app/room"
	"inkroom/internal/app/store"
	"inkroom/internal/configs"
)

// AppDeps bundles everything the handlers need.
type AppDeps struct {
	Config   *configs.AppConfig
	Store    *store.Store
	Rooms    *room.Service
	Registry *live.Registry
	Engine   *live.Engine
}
