package services

import (
	"github.com/ghuser/cartservice/pkg/app"
	"github.com/ghuser/cartservice/services/cart/infrastructure/messaging"
	"github.com/ghuser/cartservice/services/cart/infrastructure/persistence/redis"
)

// Services is the application-layer service container for the cart context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Cart *CartService
	// Emitter is the process-wide emission adapter; CartService publishes
	// through the same instance.
	Emitter *messaging.CartEmitter
}

// New wires all cart application services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	store := redis.NewCartStore(a.Redis, a.Config.CartTTL)
	emitter := messaging.NewCartEmitter(a.EventBus, a.Config.TopicOrderRequested, a.Config.TopicCartUpdated)
	return &Services{
		Cart:    NewCartService(store, emitter, a.Logger),
		Emitter: emitter,
	}
}
