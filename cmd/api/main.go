package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"storefront/internal/client"
	"storefront/internal/config"
	"storefront/internal/dto"
	"storefront/internal/logging"
	"storefront/internal/repository"
	"storefront/internal/server"
	"storefront/internal/service"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	logging.Setup(cfg.Log, cfg.Environment, "storefront-api")

	if cfg.Auth.JWTSecret == "" {
		log.Fatal().Msg("AUTH_JWT_SECRET is required")
	}

	db, err := client.InitDBClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Database.Driver).Msg("Failed to init database")
	}

	gateways := map[string]client.PaymentGateway{
		dto.PaymentOptionCard:   client.NewBraintreeClient(&cfg.BrainTree),
		dto.PaymentOptionPaypal: client.NewPaypalClient(&cfg.Paypal),
	}

	itemRepo := repository.NewItemRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	addressRepo := repository.NewAddressRepository(db)
	couponRepo := repository.NewCouponRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	refundRepo := repository.NewRefundRepository(db)

	currency := cfg.Store.Currency
	srv := server.NewServer(
		server.Options{
			JWTSecret:       []byte(cfg.Auth.JWTSecret),
			RefundRateLimit: cfg.Store.RefundRateLimit,
			AllowOrigins:    []string{cfg.BaseURL},
		},
		service.NewCatalogService(itemRepo, cfg.Store.PageSize),
		service.NewCartService(db, currency, itemRepo, orderRepo),
		service.NewCheckoutService(db, currency, orderRepo, addressRepo, couponRepo),
		service.NewPaymentService(db, currency, gateways, orderRepo, paymentRepo),
		service.NewRefundService(db, orderRepo, refundRepo),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", cfg.HTTP.Addr()).Msg("Starting HTTP server")
		if err := srv.Start(cfg.HTTP.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("HTTP server error")
		os.Exit(1)
	}
	log.Info().Msg("Server stopped")
}
