package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/cartservice/pkg/app"
	"github.com/ghuser/cartservice/services/cart/application/handlers"
	appsvcs "github.com/ghuser/cartservice/services/cart/application/services"
)

// CartRoutes registers cart endpoints on the provided chi router.
func CartRoutes(r chi.Router, a *app.Application) {
	Mount(r, appsvcs.New(a))
}

// Mount registers cart endpoints backed by svcs.
func Mount(r chi.Router, svcs *appsvcs.Services) {
	r.Route("/cart/{ownerID}", func(r chi.Router) {
		r.Get("/", handlers.NewGetCartHandler(svcs).Execute)
		r.Delete("/", handlers.NewDeleteCartHandler(svcs).Execute)
		r.Post("/add-one", handlers.NewPostAddOneHandler(svcs).Execute)
		r.Delete("/remove-one/{dishID}", handlers.NewDeleteRemoveOneHandler(svcs).Execute)
		r.Delete("/remove-all/{dishID}", handlers.NewDeleteRemoveAllHandler(svcs).Execute)
		r.Put("/items/{dishID}", handlers.NewPutItemQuantityHandler(svcs).Execute)
		r.Post("/order", handlers.NewPostOrderHandler(svcs).Execute)
	})
}
