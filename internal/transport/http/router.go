package httptransport

import (
	"expvar"
	"fmt"
	"net/http"
	"sort"
	"strings"

	appaccount "star-casino/internal/app/account"
	apppayment "star-casino/internal/app/payment"
	appreferral "star-casino/internal/app/referral"
	appwager "star-casino/internal/app/wager"
	"star-casino/internal/config"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

type Services struct {
	Store     AdminStore
	Accounts  *appaccount.Service
	Wagers    *appwager.Engine
	Referrals *appreferral.Service
	Payments  *apppayment.Service
	// MCP serves the operator tools; nil leaves /mcp unrouted.
	MCP http.Handler
}

func NewRouter(svc Services, cfg config.ServerConfig) *chi.Mux {
	accountHandlers := NewAccountHandlers(svc.Accounts)
	wagerHandlers := NewWagerHandlers(svc.Wagers)
	referralHandlers := NewReferralHandlers(svc.Referrals)
	paymentHandlers := NewPaymentHandlers(svc.Payments)
	adminHandlers := NewAdminHandlers(svc.Store, svc.Accounts)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)

	r.With(APILogMiddleware()).Get("/healthz", adminHandlers.Health())
	if svc.MCP != nil {
		r.Group(func(r chi.Router) {
			r.Use(APILogMiddleware())
			r.Use(AdminAuthMiddleware(cfg.AdminAPIKey))
			r.MethodFunc(http.MethodOptions, "/mcp", func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Allow", "POST, GET, DELETE, OPTIONS")
				w.WriteHeader(http.StatusNoContent)
			})
			r.Method(http.MethodPost, "/mcp", svc.MCP)
			r.Method(http.MethodGet, "/mcp", svc.MCP)
			r.Method(http.MethodDelete, "/mcp", svc.MCP)
		})
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(APILogMiddleware())
		r.Get("/leaderboard", accountHandlers.Leaderboard())

		r.Route("/accounts/{id}", func(r chi.Router) {
			r.Post("/start", accountHandlers.Start())
			r.Get("/balance", accountHandlers.Balance())
			r.Get("/profile", accountHandlers.Profile())
			r.Put("/nickname", accountHandlers.SetNickname())
			r.Post("/wagers", wagerHandlers.Place())

			r.Post("/referral/code", referralHandlers.Code())
			r.Get("/referral", referralHandlers.Stats())
			r.Get("/referrals", referralHandlers.List())
			r.Post("/referral/redeem", referralHandlers.Redeem())

			r.Post("/deposits/link", paymentHandlers.DepositLink())
			r.Post("/withdrawals", paymentHandlers.Withdraw())
		})

		r.Post("/payments/precheckout", paymentHandlers.PreCheckout())
		r.Post("/payments/confirmed", paymentHandlers.Confirmed())

		r.Route("/admin", func(r chi.Router) {
			r.Use(AdminAuthMiddleware(cfg.AdminAPIKey))
			r.Get("/accounts/{id}/balance", adminHandlers.Balance())
			r.Post("/accounts/{id}/adjust", adminHandlers.Adjust())
			r.Put("/accounts/{id}/balance", adminHandlers.SetBalance())
			r.Get("/stats", adminHandlers.Stats())
			r.Get("/ledger", adminHandlers.Ledger())
			r.With(BodyCaptureMiddleware(4096)).Post("/broadcast", adminHandlers.Broadcast())

			r.Route("/debug", func(r chi.Router) {
				r.Use(BodyCaptureMiddleware(4096))
				r.Get("/vars", expvar.Handler().ServeHTTP)
			})
		})
	})
	return r
}

func LogRoutes(r chi.Router) {
	type routeDef struct {
		Method string
		Path   string
	}
	routes := make([]routeDef, 0, 64)
	err := chi.Walk(r, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, routeDef{Method: method, Path: route})
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("walk routes failed")
		return
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path == routes[j].Path {
			return routes[i].Method < routes[j].Method
		}
		return routes[i].Path < routes[j].Path
	})
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Registered routes (%d):\n", len(routes)))
	for _, rt := range routes {
		b.WriteString(fmt.Sprintf("  %-6s %s\n", rt.Method, rt.Path))
	}
	fmt.Print(b.String())
}
