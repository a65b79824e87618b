package handler

import (
	"github.com/sahxzm/Dreamer/internal/service"
	"github.com/sahxzm/Dreamer/internal/storage"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	streaks  *service.StreakService
	progress *service.ProgressService
	sync     *service.SyncService
	goals    *service.GoalService
	focus    *service.FocusService
	theme    *service.ThemeService
	session  *service.SessionService
}

// NewAPI constructs a handler set with shared services.
func NewAPI(store storage.Store) *API {
	streaks := service.NewStreakService(store)
	progress := service.NewProgressService(store)
	goals := service.NewGoalService(store)
	theme := service.NewThemeService(store)

	return &API{
		streaks:  streaks,
		progress: progress,
		sync:     service.NewSyncService(progress),
		goals:    goals,
		focus:    service.NewFocusService(store),
		theme:    theme,
		session:  service.NewSessionService(store, streaks, progress, goals, theme),
	}
}
