package app

import (
	"github.com/ghuser/cartservice/pkg/cache"
	"github.com/ghuser/cartservice/pkg/config"
	"github.com/ghuser/cartservice/pkg/events"
	"github.com/ghuser/cartservice/pkg/logger"
)

// Application holds shared infrastructure dependencies for all services.
// Pass to every service's route and subscriber registration during startup.
//
// Logging: app.Logger is backed by a trace-aware handler. Use slog's context methods
// and trace_id, span_id, and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "dish added", "owner_id", ownerID)
//	app.Logger.ErrorContext(ctx, "failed to save cart", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Config   *config.Config
	Logger   logger.Logger
	EventBus *events.EventBus
	Redis    *cache.RedisClient
}
