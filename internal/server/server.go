package server

import (
	"context"
	"net/http"
	"time"

	"storefront/internal/handler"
	authmw "storefront/internal/middleware"
	"storefront/internal/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

type Options struct {
	JWTSecret []byte
	// RefundRateLimit is the steady number of refund requests per second
	// allowed from one client address.
	RefundRateLimit float64
	// AllowOrigins lists the browser origins allowed to call the API. Empty
	// allows any origin.
	AllowOrigins []string
}

type Server struct {
	echo            *echo.Echo
	opts            Options
	catalogHandler  *handler.CatalogHandler
	cartHandler     *handler.CartHandler
	checkoutHandler *handler.CheckoutHandler
	paymentHandler  *handler.PaymentHandler
	refundHandler   *handler.RefundHandler
}

func NewServer(
	opts Options,
	catalogService service.CatalogService,
	cartService service.CartService,
	checkoutService service.CheckoutService,
	paymentService service.PaymentService,
	refundService service.RefundService,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handler.ErrorHandler

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: opts.AllowOrigins,
	}))

	s := &Server{
		echo:            e,
		opts:            opts,
		catalogHandler:  handler.NewCatalogHandler(catalogService),
		cartHandler:     handler.NewCartHandler(cartService),
		checkoutHandler: handler.NewCheckoutHandler(checkoutService),
		paymentHandler:  handler.NewPaymentHandler(paymentService),
		refundHandler:   handler.NewRefundHandler(refundService),
	}

	s.setupRoutes()
	return s
}

func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Str("remote_ip", v.RemoteIP).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}

func (s *Server) refundLimiter() echo.MiddlewareFunc {
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(s.opts.RefundRateLimit),
			Burst:     3,
			ExpiresIn: 3 * time.Minute,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, "Too many refund requests. Please try again later.")
		},
	})
}

func (s *Server) setupRoutes() {
	getPost := []string{http.MethodGet, http.MethodPost}
	auth := authmw.AuthMiddleware(s.opts.JWTSecret)

	s.echo.GET("/api/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// -------- catalog --------
	s.echo.GET("/", s.catalogHandler.Home)
	s.echo.GET("/product/:slug", s.catalogHandler.Product)

	// -------- cart --------
	s.echo.GET("/order-summary/", s.cartHandler.OrderSummary, auth)
	s.echo.Match(getPost, "/add-to-cart/:slug", s.cartHandler.AddToCart, auth)
	s.echo.Match(getPost, "/add-item-to-cart/:slug", s.cartHandler.AddItemToCart, auth)
	s.echo.Match(getPost, "/remove-from-cart/:slug", s.cartHandler.RemoveFromCart, auth)
	s.echo.Match(getPost, "/remove-item-from-cart/:slug", s.cartHandler.RemoveSingleItem, auth)
	s.echo.Match(getPost, "/remove-at-checkout/:slug", s.cartHandler.RemoveAtCheckout, auth)

	// -------- checkout --------
	s.echo.GET("/checkout/", s.checkoutHandler.Checkout, auth)
	s.echo.POST("/checkout/", s.checkoutHandler.SubmitAddresses, auth)
	s.echo.POST("/add_coupon/", s.checkoutHandler.AddCoupon, auth)

	// -------- payment --------
	s.echo.GET("/payment/:option/", s.paymentHandler.PaymentPage, auth)
	s.echo.POST("/payment/:option/", s.paymentHandler.Pay, auth)

	// -------- refunds (no login) --------
	s.echo.GET("/request-refund/", s.refundHandler.RefundForm)
	s.echo.POST("/request-refund/", s.refundHandler.RequestRefund, s.refundLimiter())
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
