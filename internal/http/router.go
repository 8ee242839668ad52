package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"zynlepay/internal/config"
	"zynlepay/internal/http/handlers"
	middlewarex "zynlepay/internal/http/middleware"
)

// RouterDependencies holds all dependencies for the HTTP router
type RouterDependencies struct {
	Config  config.Cfg
	Gateway handlers.PaymentGateway
}

func NewRouter(deps RouterDependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]string{"status": "ok"})
	})

	// Gateway notifications are public; their content is classified, not trusted.
	r.Post("/webhooks/zynlepay", handlers.ZynlePayWebhook())

	if deps.Config.Sec.APIToken != "" && deps.Gateway != nil {
		gw := deps.Gateway
		retry := deps.Config.Retry
		r.Route("/api/v1", func(r chi.Router) {
			r.Use(middlewarex.BearerToken(deps.Config.Sec.APIToken))

			r.Post("/payments/momo", handlers.CreateMomoPayment(gw))
			r.Post("/payments/card", handlers.CreateCardPayment(gw))
			r.Get("/payments/{reference}/status", handlers.PaymentStatus(gw, retry.Attempts, retry.Delay))

			r.Post("/transfers/ewallet", handlers.CreateEwalletTransfer(gw))
			r.Get("/transfers/ewallet/{reference}/status", handlers.EwalletTransferStatus(gw))
			r.Post("/transfers/bank", handlers.CreateBankTransfer(gw))
			r.Get("/transfers/bank/{reference}/status", handlers.BankTransferStatus(gw))

			r.Get("/balance", handlers.Balance(gw))
		})
	}

	return r
}
