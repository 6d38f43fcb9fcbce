package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"storefront/internal/client"
	"storefront/internal/dto"
	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type PaymentService interface {
	PaymentPage(ctx context.Context, userID, option string) (*dto.PaymentPage, error)
	Pay(ctx context.Context, userID, option string, form *dto.PaymentForm) (*dto.PaymentResult, error)
}

type paymentServiceImpl struct {
	db          *gorm.DB
	currency    string
	gateways    map[string]client.PaymentGateway
	orderRepo   repository.OrderRepository
	paymentRepo repository.PaymentRepository
	newRefCode  func() string
}

// NewPaymentService takes one gateway per payment option, keyed by the option
// name the checkout form uses.
func NewPaymentService(
	db *gorm.DB,
	currency string,
	gateways map[string]client.PaymentGateway,
	orderRepo repository.OrderRepository,
	paymentRepo repository.PaymentRepository,
) PaymentService {
	return &paymentServiceImpl{
		db:          db,
		currency:    currency,
		gateways:    gateways,
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		newRefCode:  NewRefCode,
	}
}

func (s *paymentServiceImpl) gateway(option string) (client.PaymentGateway, error) {
	gw, ok := s.gateways[option]
	if !ok {
		return nil, Invalid(MsgInvalidOption, nil)
	}
	return gw, nil
}

// payableOrder loads the active order and checks it is ready to be charged.
func (s *paymentServiceImpl) payableOrder(ctx context.Context, userID string) (*model.Order, error) {
	order, err := s.orderRepo.FindActive(ctx, nil, userID)
	if err != nil {
		return nil, lookupErr(err, MsgNoActiveOrder, "find active order")
	}
	if order.BillingAddressID == nil {
		return nil, Invalid(MsgNoBillingAddress, nil)
	}
	if len(order.Items) == 0 {
		return nil, Invalid(MsgEmptyCart, nil)
	}
	return order, nil
}

func (s *paymentServiceImpl) PaymentPage(ctx context.Context, userID, option string) (*dto.PaymentPage, error) {
	gw, err := s.gateway(option)
	if err != nil {
		return nil, err
	}

	order, err := s.payableOrder(ctx, userID)
	if err != nil {
		return nil, err
	}

	key, err := gw.PublicKey(ctx)
	if err != nil {
		return nil, fmt.Errorf("get %s public key: %w", option, err)
	}

	return &dto.PaymentPage{
		Option:    option,
		Order:     dto.NewOrderSummary(order, s.currency),
		PublicKey: key,
	}, nil
}

// Pay charges the order total through the option's gateway and finalizes the
// order. Nothing is written when the charge fails.
func (s *paymentServiceImpl) Pay(ctx context.Context, userID, option string, form *dto.PaymentForm) (*dto.PaymentResult, error) {
	gw, err := s.gateway(option)
	if err != nil {
		return nil, err
	}
	if fields := form.Validate(); len(fields) > 0 {
		return nil, Invalid(MsgInvalidForm, fields)
	}

	order, err := s.payableOrder(ctx, userID)
	if err != nil {
		return nil, err
	}

	total := order.Total()
	charge, err := gw.Charge(ctx, &client.ChargeRequest{
		AmountCents: model.ToCents(total),
		Currency:    s.currency,
		Token:       form.Token,
		Reference:   strconv.FormatUint(uint64(order.ID), 10),
	})
	if err != nil {
		logChargeFailure(err, option, order.ID, userID)
		return nil, fmt.Errorf("charge order %d: %w", order.ID, err)
	}

	now := time.Now()
	refCode := s.newRefCode()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		payment := &model.Payment{
			ChargeID:  charge.ID,
			Provider:  option,
			UserID:    userID,
			Amount:    total,
			Timestamp: now,
		}
		if err := s.paymentRepo.Create(ctx, tx, payment); err != nil {
			return fmt.Errorf("store payment: %w", err)
		}

		if err := s.orderRepo.MarkOrdered(ctx, tx, order.ID, payment.ID, refCode, now); err != nil {
			return fmt.Errorf("mark order ordered: %w", err)
		}
		return nil
	})
	if err != nil {
		// the buyer has been charged at this point
		log.Error().Err(err).
			Str("charge_id", charge.ID).
			Str("provider", option).
			Uint("order_id", order.ID).
			Msg("charge succeeded but order was not finalized")
		return nil, err
	}

	log.Info().
		Uint("order_id", order.ID).
		Str("user_id", userID).
		Str("provider", option).
		Str("ref_code", refCode).
		Str("amount", total.StringFixed(2)).
		Msg("order finalized")

	return &dto.PaymentResult{
		RefCode:  refCode,
		ChargeID: charge.ID,
		Amount:   total.StringFixed(2),
		Currency: s.currency,
	}, nil
}

// logChargeFailure logs declines and other buyer-side failures as warnings and
// failures on our side as errors.
func logChargeFailure(err error, option string, orderID uint, userID string) {
	kind := client.ChargeGenericFailure
	var ce *client.ChargeError
	if errors.As(err, &ce) {
		kind = ce.Kind
	}

	ev := log.Warn()
	if kind == client.ChargeAuthFailure || kind == client.ChargeGenericFailure {
		ev = log.Error()
	}
	ev.Err(err).
		Str("category", kind.String()).
		Str("provider", option).
		Uint("order_id", orderID).
		Str("user_id", userID).
		Msg("payment failed")
}
