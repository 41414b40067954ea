package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/saadkhan011/calcrew-frontend/internal/http/flash"
	"github.com/saadkhan011/calcrew-frontend/internal/http/handlers"
	"github.com/saadkhan011/calcrew-frontend/internal/http/middleware"
	"github.com/saadkhan011/calcrew-frontend/internal/http/render"
	"github.com/saadkhan011/calcrew-frontend/internal/http/sessioncookie"
	"github.com/saadkhan011/calcrew-frontend/internal/http/validation"
	"github.com/saadkhan011/calcrew-frontend/internal/modules/checkout"
	"github.com/saadkhan011/calcrew-frontend/internal/shared/apperr"
)

type Deps struct {
	Logger         *slog.Logger
	Checkout       *checkout.Service
	Flash          *flash.Codec
	Cookie         *sessioncookie.Codec
	PublishableKey string
	Health         map[string]handlers.Pinger
}

func NewRouter(d Deps) (*gin.Engine, error) {
	if err := validation.Register(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(d.Logger),
		// Recovery must run inside ErrorHandler.
		middleware.ErrorHandler(d.Logger, render.ErrorPage),
		middleware.Recovery(d.Logger),
		middleware.FlashMiddleware(d.Flash),
	)

	health := &handlers.HealthHandler{Checks: d.Health}
	r.GET("/healthz", health.Get)

	donate := handlers.NewDonateHandler(d.Checkout, d.Flash, d.Cookie, d.PublishableKey, d.Logger)
	requireCheckout := middleware.RequireCheckout(d.Cookie)

	r.GET("/donate", donate.Mount)
	web := r.Group("/donate", requireCheckout)
	{
		web.GET("/checkout", donate.Show)
		web.GET("/payment-request", donate.PaymentRequest)
		registerActions(web, donate)
	}

	r.POST("/api/donate", donate.Mount)
	api := r.Group("/api/donate", requireCheckout)
	{
		api.GET("", donate.Show)
		api.GET("/payment-request", donate.PaymentRequest)
		registerActions(api, donate)
	}

	r.NoRoute(func(c *gin.Context) {
		middleware.Fail(c, apperr.NotFoundErr("Page not found."))
	})

	return r, nil
}

func registerActions(g *gin.RouterGroup, h *handlers.DonateHandler) {
	g.POST("/amount", h.Amount)
	g.POST("/recurring", h.Recurring)
	g.POST("/method", h.Method)
	g.POST("/continue", h.Continue)
	g.POST("/profile", h.Profile)
	g.POST("/back", h.Back)
	g.POST("/pay", h.Pay)
	g.POST("/wallet", h.Wallet)
	g.POST("/wallet/availability", h.WalletAvailability)
	g.POST("/venmo", h.Venmo)
}
