/*
Package handler provides the HTTP routes of the coordination gateway.

This file defines the main Router, applying logging, CORS, rate limiting, and
identity extraction before delegating to the forwarding handlers. The gateway
itself holds no domain logic; every route is a thin proxy onto the care backend.
*/
package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"pandacare/internal/app/identity"
	"pandacare/internal/pkg/limiter"
	"pandacare/internal/pkg/logx"
	"pandacare/internal/pkg/metrics"
	"pandacare/internal/pkg/resp"
)

const (
	// WalletRate limits wallet mutations (top-ups and transfers) per IP.
	WalletRate  = 0.2
	WalletBurst = 3

	// WriteRate limits the remaining mutating routes per IP.
	WriteRate  = 1
	WriteBurst = 10
)

// Router builds the chi routing table for the gateway.
func Router(deps *AppDeps) http.Handler {
	walletLimiter := limiter.NewIPRateLimiter(rate.Limit(WalletRate), WalletBurst)
	writeLimiter := limiter.NewIPRateLimiter(rate.Limit(WriteRate), WriteBurst)

	r := chi.NewRouter()

	corsAllowedOrigins := []string{}
	if deps.Config.Environment == "development" {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)
	r.Use(observeRequests)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		resp.RespondSuccess(w, r, map[string]string{
			"status":  "ok",
			"service": "PandaCare Gateway",
		})
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(api chi.Router) {
		api.Use(identity.Middleware())

		api.Get("/session/home", HandleHomePath(deps))

		api.Route("/chat", func(chat chi.Router) {
			chat.Get("/room/{roomID}", HandleGetChatRoomByID(deps))
			chat.Get("/room/{pacilianID}/{caregiverID}", HandleGetChatRoom(deps))
			chat.Get("/rooms", HandleListChatRooms(deps))
			chat.Get("/messages/{roomID}", HandleGetMessageHistory(deps))
		})

		api.Route("/profile", func(profile chi.Router) {
			profile.Get("/", HandleGetProfile(deps))
			profile.With(writeLimiter.Middleware).Put("/", HandleUpdateProfile(deps))
			profile.With(writeLimiter.Middleware).Delete("/", HandleDeleteProfile(deps))
		})

		api.Get("/consultations", HandleConsultationHistory(deps))

		api.Route("/scheduling", func(scheduling chi.Router) {
			scheduling.Route("/caregiver", func(caregiver chi.Router) {
				caregiver.Get("/schedules", HandleGetSchedules(deps))
				caregiver.With(writeLimiter.Middleware).Post("/schedules", HandleCreateSchedule(deps))
				caregiver.With(writeLimiter.Middleware).Put("/schedules", HandleModifySchedule(deps))
				caregiver.With(writeLimiter.Middleware).Delete("/schedules", HandleDeleteSchedule(deps))
				caregiver.Get("/consultations", HandleCaregiverConsultations(deps))
				caregiver.With(writeLimiter.Middleware).Put("/consultations/accept", HandleConsultationDecision(deps, true))
				caregiver.With(writeLimiter.Middleware).Put("/consultations/reject", HandleConsultationDecision(deps, false))
			})
			scheduling.Route("/pacilian", func(pacilian chi.Router) {
				pacilian.Get("/consultations", HandlePacilianConsultations(deps))
				pacilian.Get("/available-caregivers", HandleFindCaregivers(deps))
			})
		})

		api.Route("/payment", func(payment chi.Router) {
			payment.With(walletLimiter.Middleware).Post("/topup", HandleTopUp(deps))
			payment.With(walletLimiter.Middleware).Post("/transfer", HandleTransfer(deps))
			payment.Get("/transactions", HandleTransactions(deps))
		})

		api.Route("/rating", func(rating chi.Router) {
			rating.Get("/caregivers", HandleListRatedCaregivers(deps))
			rating.Get("/caregiver/{caregiverID}", HandleGetCaregiverRatings(deps))
			rating.With(writeLimiter.Middleware).Post("/", HandleCreateRating(deps))
			rating.With(writeLimiter.Middleware).Put("/{ratingID}", HandleUpdateRating(deps))
			rating.With(writeLimiter.Middleware).Delete("/{ratingID}", HandleDeleteRating(deps))
		})
	})

	return r
}

// observeRequests records the Prometheus counters for every completed request.
func observeRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}

		metrics.ProxyRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).Inc()
		metrics.ProxyRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
