package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/saadkhan011/calcrew-frontend/internal/config"
	apphttp "github.com/saadkhan011/calcrew-frontend/internal/http"
	"github.com/saadkhan011/calcrew-frontend/internal/http/flash"
	"github.com/saadkhan011/calcrew-frontend/internal/http/handlers"
	"github.com/saadkhan011/calcrew-frontend/internal/http/sessioncookie"
	"github.com/saadkhan011/calcrew-frontend/internal/mailer"
	"github.com/saadkhan011/calcrew-frontend/internal/modules/checkout"
	"github.com/saadkhan011/calcrew-frontend/internal/modules/payments"
	"github.com/saadkhan011/calcrew-frontend/internal/modules/receipts"
	"github.com/saadkhan011/calcrew-frontend/internal/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.FromConfig(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	logger.Info("session store ready", "driver", store.Driver)

	if store.SQL != nil {
		go purgeExpired(ctx, logger, store.SQL, cfg.SessionTTL)
	}

	var collab payments.Collaborator
	if cfg.UsesMockPayments() {
		logger.Warn("STRIPE_SECRET_KEY not set, using mock payment collaborator")
		collab = &payments.Mock{WalletAvailable: cfg.WalletEnabled}
	} else {
		collab = payments.NewStripe(cfg.StripeSecret, cfg.WalletEnabled)
	}

	charger := payments.NewCharger(payments.NewIntentClient(cfg.APIBaseURL, cfg.ChargeTimeout), collab)
	charger.SetLogger(logger)

	opts := checkout.Options{
		ChargeTimeout: cfg.ChargeTimeout,
		VenmoBaseURL:  cfg.VenmoBaseURL,
	}
	switch {
	case cfg.SMTP.Enabled():
		opts.Receipts = receipts.NewService(mailer.NewSMTP(cfg.SMTP), cfg.SMTP.From, cfg.SMTP.FromName)
	case cfg.Mailtrap.Enabled():
		sender := mailer.NewMailtrap(cfg.Mailtrap.APIURL, cfg.Mailtrap.Token, 10*time.Second)
		opts.Receipts = receipts.NewService(sender, cfg.Mailtrap.From, cfg.Mailtrap.FromName)
	default:
		logger.Info("no mail transport configured, donation receipts disabled")
	}

	svc := checkout.NewService(store.Store, collab, charger, opts)
	svc.SetLogger(logger)

	health := map[string]handlers.Pinger{}
	if store.Ping != nil {
		health[store.Driver] = store.Ping
	}

	gin.SetMode(gin.ReleaseMode)
	router, err := apphttp.NewRouter(apphttp.Deps{
		Logger:         logger,
		Checkout:       svc,
		Flash:          flash.NewCodec(cfg.SessionSecret, "calcrew_flash", cfg.CookieSecure),
		Cookie:         sessioncookie.New(cfg.SessionSecret, cfg.CookieName, cfg.CookieSecure, cfg.SessionTTL),
		PublishableKey: cfg.PublishableKey,
		Health:         health,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Addr, "base_url", cfg.BaseURL, "provider", collab.Name())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ChargeTimeout+5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// purgeExpired removes stale rows; the memory and redis stores expire on their own.
func purgeExpired(ctx context.Context, logger *slog.Logger, s *storage.SQL, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := s.PurgeExpired(ctx)
			if err != nil {
				logger.Warn("purge expired checkout sessions", "err", err)
				continue
			}
			if n > 0 {
				logger.Info("purged expired checkout sessions", "count", n)
			}
		}
	}
}
