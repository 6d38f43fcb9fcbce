package service

import (
	"context"
	"path/filepath"
	"testing"

	"storefront/internal/client"
	"storefront/internal/config"
	"storefront/internal/dto"
	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeGateway struct {
	key      string
	err      error
	chargeID string
	calls    []client.ChargeRequest
}

func (g *fakeGateway) Charge(ctx context.Context, req *client.ChargeRequest) (*client.ChargeResult, error) {
	g.calls = append(g.calls, *req)
	if g.err != nil {
		return nil, g.err
	}
	return &client.ChargeResult{ID: g.chargeID}, nil
}

func (g *fakeGateway) PublicKey(ctx context.Context) (string, error) {
	return g.key, nil
}

type fixture struct {
	db       *gorm.DB
	ctx      context.Context
	gateway  *fakeGateway
	catalog  CatalogService
	cart     CartService
	checkout CheckoutService
	payment  PaymentService
	refund   RefundService
	coupons  repository.CouponRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := client.InitDBClient(&config.Database{
		Driver:       "sqlite",
		URL:          filepath.Join(t.TempDir(), "test.db"),
		MaxIdleConns: 2,
		MaxOpenConns: 2,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	itemRepo := repository.NewItemRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	addressRepo := repository.NewAddressRepository(db)
	couponRepo := repository.NewCouponRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	refundRepo := repository.NewRefundRepository(db)

	gw := &fakeGateway{key: "pk_test", chargeID: "ch_123"}

	f := &fixture{
		db:       db,
		ctx:      context.Background(),
		gateway:  gw,
		catalog:  NewCatalogService(itemRepo, 2),
		cart:     NewCartService(db, "USD", itemRepo, orderRepo),
		checkout: NewCheckoutService(db, "USD", orderRepo, addressRepo, couponRepo),
		payment:  NewPaymentService(db, "USD", map[string]client.PaymentGateway{dto.PaymentOptionCard: gw}, orderRepo, paymentRepo),
		refund:   NewRefundService(db, orderRepo, refundRepo),
		coupons:  couponRepo,
	}

	for _, item := range []*model.Item{
		{Title: "Shorts", Slug: "shorts", Price: decimal.RequireFromString("20.00"), DiscountPrice: decimal.NewNullDecimal(decimal.RequireFromString("15.00")), Category: model.CategorySportsWear, Label: model.LabelDanger},
		{Title: "Coat", Slug: "coat", Price: decimal.RequireFromString("25.00"), Category: model.CategoryOutwear, Label: model.LabelPrimary},
		{Title: "Shirt", Slug: "shirt", Price: decimal.RequireFromString("10.00"), Category: model.CategoryShirt, Label: model.LabelSecondary},
	} {
		require.NoError(t, itemRepo.Create(f.ctx, item))
	}

	return f
}

func (f *fixture) add(t *testing.T, userID, slug string, times int) {
	t.Helper()
	for i := 0; i < times; i++ {
		_, err := f.cart.AddItem(f.ctx, userID, slug)
		require.NoError(t, err)
	}
}

func (f *fixture) submitAddresses(t *testing.T, userID string) {
	t.Helper()
	_, err := f.checkout.SubmitAddresses(f.ctx, userID, &dto.CheckoutForm{
		ShippingAddress:    "1 Main St",
		ShippingCountry:    "US",
		ShippingZip:        "10001",
		SameBillingAddress: true,
		PaymentOption:      dto.PaymentOptionCard,
	})
	require.NoError(t, err)
}

func (f *fixture) count(t *testing.T, m interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	q := f.db.Model(m)
	if query != "" {
		q = q.Where(query, args...)
	}
	require.NoError(t, q.Count(&n).Error)
	return n
}
