// internal/api/router.go
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"offer-ledger/internal/api/handler"
)

// NewRouter sets up and returns a new HTTP router. metricsHandler may be nil.
func NewRouter(offerHandler *handler.OfferHandler, metricsHandler http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(handler.DefaultTimeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	r.Group(func(r chi.Router) {
		r.Use(offerHandler.Identity)

		r.Route("/offers", func(r chi.Router) {
			r.Get("/", offerHandler.ListOffers)
			r.Post("/", offerHandler.CreateOffer)
			r.Delete("/{offerID}", offerHandler.UnlistOffer)
		})
		r.Get("/wallets/{walletID}/balances/{currencyID}", offerHandler.GetAvailableBalance)
	})

	return r
}
