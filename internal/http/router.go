package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	cycleHandler "github.com/daniel1743/claculadorafuxion-sub001/internal/http/cycle"
	"github.com/daniel1743/claculadorafuxion-sub001/internal/http/importcsv"
	ledgerHandler "github.com/daniel1743/claculadorafuxion-sub001/internal/http/ledger"
	loanHandler "github.com/daniel1743/claculadorafuxion-sub001/internal/http/loan"
	productHandler "github.com/daniel1743/claculadorafuxion-sub001/internal/http/product"
	reportHandler "github.com/daniel1743/claculadorafuxion-sub001/internal/http/report"
)

func New(
	productsV1 *productHandler.Handler,
	ledgerV1 *ledgerHandler.Handler,
	loansV1 *loanHandler.Handler,
	reportsV1 *reportHandler.Handler,
	cyclesV1 *cycleHandler.Handler,
	importV1 *importcsv.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	// The dashboard is a browser app served from its own origin.
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			productsV1.Routes(r)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			ledgerV1.Routes(r)
		})

		r.Route("/loans", loansV1.Routes)

		r.Route("/reports", reportsV1.Routes)

		r.Route("/cycles", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			cyclesV1.Routes(r)
		})

		r.Route("/import", importV1.Routes)
	})

	return router
}
