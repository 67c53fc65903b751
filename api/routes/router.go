package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/vendora-backend/api/controllers"
	"github.com/angelmondragon/vendora-backend/api/middleware"
	"github.com/angelmondragon/vendora-backend/internal/commission"
	"github.com/angelmondragon/vendora-backend/internal/earnings"
	"github.com/angelmondragon/vendora-backend/internal/orders"
	"github.com/angelmondragon/vendora-backend/internal/payouts"
	"github.com/angelmondragon/vendora-backend/internal/stores"
	"github.com/angelmondragon/vendora-backend/internal/wallet"
	"github.com/angelmondragon/vendora-backend/pkg/config"
	"github.com/angelmondragon/vendora-backend/pkg/db"
	"github.com/angelmondragon/vendora-backend/pkg/logger"
	"github.com/angelmondragon/vendora-backend/pkg/redis"
)

// Services bundles the domain services the router exposes.
type Services struct {
	Orders     orders.Service
	Payouts    payouts.Service
	Earnings   earnings.Service
	Wallet     wallet.Service
	Commission commission.Service
	Stores     stores.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	registry *prometheus.Registry,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	payoutPolicy := middleware.NewRateLimitPolicy(
		"payout",
		cfg.RateLimit.PayoutWindow,
		cfg.RateLimit.PayoutLimit,
	)

	// Interface params must stay nil when the client is nil, otherwise the
	// middleware nil checks see a typed non-nil value.
	var idemStore redis.IdempotencyStore
	var rateStore middleware.RateLimiterStore
	var redisP redis.Pinger
	if redisClient != nil {
		idemStore = redisClient
		rateStore = redisClient
		redisP = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.Idempotency(idemStore, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.ListOrders(svcs.Orders, logg))
			r.Get("/{orderId}", controllers.GetOrder(svcs.Orders, logg))
			r.Patch("/{orderId}/status", controllers.UpdateOrderStatus(svcs.Orders, logg))
		})

		r.Route("/payouts", func(r chi.Router) {
			r.With(middleware.RateLimit(payoutPolicy, rateStore, logg)).
				Post("/", controllers.RequestPayout(svcs.Payouts, logg))
			r.Get("/", controllers.ListPayouts(svcs.Payouts, logg))
			r.Get("/{payoutId}", controllers.GetPayout(svcs.Payouts, logg))
		})

		r.Route("/earnings", func(r chi.Router) {
			r.Get("/summary", controllers.EarningsSummary(svcs.Earnings, logg))
			r.Get("/stores/{storeId}", controllers.StoreEarnings(svcs.Earnings, logg))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireRole(logg, "admin", "super_admin"))

			r.Post("/payouts/{payoutId}/process", controllers.ProcessPayout(svcs.Payouts, logg))
			r.Get("/payouts", controllers.ListPayouts(svcs.Payouts, logg))
			r.Get("/wallet", controllers.WalletSnapshot(svcs.Wallet, logg))
			r.Get("/profit", controllers.AdminProfit(svcs.Earnings, logg))
			r.Post("/stores/{storeId}/verify", controllers.VerifyStore(svcs.Stores, logg))

			r.Route("/commission", func(r chi.Router) {
				r.Get("/", controllers.GetCommission(svcs.Commission, logg))
				r.With(middleware.RequireRole(logg, "super_admin")).
					Put("/", controllers.UpdateCommission(svcs.Commission, logg))
			})
		})
	})

	return r
}
