package http

import (
	"net/http"
	"time"

	"github.com/chicktrack-api/internal/application/alert"
	"github.com/chicktrack-api/internal/application/auth"
	"github.com/chicktrack-api/internal/application/batch"
	"github.com/chicktrack-api/internal/application/market"
	"github.com/chicktrack-api/internal/application/otp"
	"github.com/chicktrack-api/internal/application/production"
	"github.com/chicktrack-api/internal/application/upload"
	"github.com/chicktrack-api/internal/application/user"
	"github.com/chicktrack-api/internal/config"
	"github.com/chicktrack-api/internal/transport/http/handler"
	appmiddleware "github.com/chicktrack-api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authMw := appmiddleware.Auth(deps.JWTProvider)

	// 5 requests/second, burst of 10 — applied to sensitive public endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	otpSvc := otp.NewService(deps.OTPRepo, deps.SMSGateway,
		time.Duration(cfg.OTPTTLSeconds)*time.Second, cfg.OTPMessageTemplate)
	authSvc := auth.NewService(deps.UserRepo, otpSvc, deps.JWTProvider)
	userSvc := user.NewService(deps.UserRepo)
	batchSvc := batch.NewService(deps.BatchRepo)
	prodSvc := production.NewService(deps.LogRepo, deps.BatchRepo)
	marketSvc := market.NewService(deps.ProductRepo, deps.OrderRepo)
	alertSvc := alert.NewService(deps.AlertRepo)
	uploadSvc := upload.NewService(deps.S3Store, deps.FileRepo)

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(authSvc)
	otpH := handler.NewOTPHandler(otpSvc)
	smsH := handler.NewSMSHandler(deps.SMSGateway)
	userH := handler.NewUserHandler(userSvc, authSvc)
	batchH := handler.NewBatchHandler(batchSvc)
	logH := handler.NewLogHandler(prodSvc)
	marketH := handler.NewMarketHandler(marketSvc)
	alertH := handler.NewAlertHandler(alertSvc)
	uploadH := handler.NewUploadHandler(uploadSvc)

	r.Route("/api", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health", healthH.Ping)
		r.With(sensitiveRL.Limit).Post("/auth/register", authH.Register)
		r.With(sensitiveRL.Limit).Post("/auth/login", authH.Login)
		r.With(sensitiveRL.Limit).Post("/auth/verify-otp", authH.VerifyOTP)
		r.With(sensitiveRL.Limit).Post("/auth/resend-otp", authH.ResendOTP)
		r.With(sensitiveRL.Limit).Post("/otp/request", otpH.Send)
		r.With(sensitiveRL.Limit).Post("/otp/verify", otpH.Verify)
		r.With(sensitiveRL.Limit).Post("/users/register", userH.Upsert)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Get("/users/me", userH.Me)
			r.Post("/users/{id}/twofa", userH.SetTwoFA)

			r.With(sensitiveRL.Limit).Post("/sms/send", smsH.Send)

			r.Post("/batches", batchH.Create)
			r.Get("/batches", batchH.List)
			r.Get("/batches/recent", batchH.Recent)
			r.Get("/batches/{id}", batchH.Get)
			r.Put("/batches/{id}", batchH.Update)
			r.Delete("/batches/{id}", batchH.Delete)

			r.Post("/logs", logH.Create)
			r.Get("/logs", logH.List)
			r.Get("/logs/{id}", logH.Get)
			r.Put("/logs/{id}", logH.Update)
			r.Delete("/logs/{id}", logH.Delete)

			r.Post("/products", marketH.CreateProduct)
			r.Get("/products", marketH.ListProducts)
			r.Get("/products/{id}", marketH.GetProduct)
			r.Post("/orders", marketH.CreateOrder)
			r.Get("/orders", marketH.ListOrders)
			r.Put("/orders/{id}", marketH.UpdateOrder)

			r.Post("/alerts", alertH.Create)
			r.Get("/alerts/recent", alertH.Recent)

			r.Post("/uploads", uploadH.Upload)
			r.Get("/uploads/{id}", uploadH.Download)
		})
	})

	return r
}
