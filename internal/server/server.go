package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/RewardEngine_Go/internal/daily"
	"github.com/osse101/RewardEngine_Go/internal/database"
	"github.com/osse101/RewardEngine_Go/internal/handler"
	"github.com/osse101/RewardEngine_Go/internal/jackpot"
	"github.com/osse101/RewardEngine_Go/internal/ledger"
	"github.com/osse101/RewardEngine_Go/internal/metrics"
	"github.com/osse101/RewardEngine_Go/internal/referral"
	"github.com/osse101/RewardEngine_Go/internal/slots"
	"github.com/osse101/RewardEngine_Go/internal/user"
)

// Options configures the HTTP server
type Options struct {
	Port           int
	APIKey         string
	TrustedProxies []string
	Limits         ActivityLimits
}

// Services are the application services exposed over HTTP
type Services struct {
	DB       database.Pool
	Users    user.Service
	Slots    slots.Service
	Jackpot  jackpot.Service
	Ledger   ledger.Service
	Referral referral.Service
	Daily    daily.Service
	Config   handler.ConfigAdmin
}

type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance
func NewServer(opts Options, svc Services) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           NewRouter(opts, svc),
			ReadHeaderTimeout: ReadHeaderTimeout,
			WriteTimeout:      WriteTimeout,
			IdleTimeout:       IdleTimeout,
		},
	}
}

// NewRouter builds the middleware stack and routes
func NewRouter(opts Options, svc Services) http.Handler {
	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewActivityDetector(opts.Limits)
	r.Use(SecurityHeaders)
	r.Use(Auth(opts.APIKey, opts.TrustedProxies, detector))
	r.Use(RateLimit(opts.TrustedProxies, detector))
	r.Use(RequestSizeLimit(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(requestLogger)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(svc.DB))
	r.Get("/version", handler.HandleVersion())
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	users := handler.NewUserHandler(svc.Users)
	slotsHandler := handler.NewSlotsHandler(svc.Slots)
	rewards := handler.NewRewardsHandler(svc.Ledger)
	referrals := handler.NewReferralHandler(svc.Referral)
	admin := handler.NewAdminHandler(svc.Config, svc.Ledger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/register", users.HandleRegister)
			r.Get("/{userID}/resources", users.HandleGetResources)
			r.Post("/{userID}/energy/claim", users.HandleClaimEnergy)
		})

		r.Route("/slots", func(r chi.Router) {
			r.Post("/play", slotsHandler.HandlePlay)
			r.Get("/config", slotsHandler.HandleConfig)
		})

		r.Get("/jackpot", handler.HandleGetJackpot(svc.Jackpot))

		r.Route("/rewards", func(r chi.Router) {
			r.Post("/claim", rewards.HandleClaim)
			r.Post("/claim-many", rewards.HandleClaimMany)
			r.Get("/{userID}", rewards.HandleList)
			r.Get("/{userID}/history", rewards.HandleHistory)
		})

		r.Route("/referrals", func(r chi.Router) {
			r.Post("/", referrals.HandleCreate)
			r.Post("/onboard", referrals.HandleOnboard)
			r.Get("/rewards", referrals.HandleRewardsForCount)
		})

		r.Post("/daily/claim", handler.HandleDailyClaim(svc.Daily))

		r.Route("/admin", func(r chi.Router) {
			r.Put("/slots/config", admin.HandleUpdateSlotMachine)
			r.Put("/jackpot", admin.HandleUpdateJackpot)
			r.Post("/rewards/grant", admin.HandleGrantReward)
			r.Post("/config/reload", admin.HandleReloadConfig)
		})
	})

	return r
}

// Start listens until the server is stopped
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	slog.Default().Info(LogMsgServerStopping)
	return s.httpServer.Shutdown(ctx)
}
