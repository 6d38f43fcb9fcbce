package service

import (
	"context"
	"fmt"

	"storefront/internal/dto"
	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const MsgCouponAdded = "Successfully added coupon"

type CheckoutService interface {
	Checkout(ctx context.Context, userID string) (*dto.CheckoutPage, error)
	SubmitAddresses(ctx context.Context, userID string, form *dto.CheckoutForm) (*dto.CheckoutResult, error)
	AddCoupon(ctx context.Context, userID string, form *dto.CouponForm) (string, error)
}

type checkoutServiceImpl struct {
	db          *gorm.DB
	currency    string
	orderRepo   repository.OrderRepository
	addressRepo repository.AddressRepository
	couponRepo  repository.CouponRepository
}

func NewCheckoutService(
	db *gorm.DB,
	currency string,
	orderRepo repository.OrderRepository,
	addressRepo repository.AddressRepository,
	couponRepo repository.CouponRepository,
) CheckoutService {
	return &checkoutServiceImpl{
		db:          db,
		currency:    currency,
		orderRepo:   orderRepo,
		addressRepo: addressRepo,
		couponRepo:  couponRepo,
	}
}

// Checkout returns the active order along with the user's default addresses
// so the form can offer them.
func (s *checkoutServiceImpl) Checkout(ctx context.Context, userID string) (*dto.CheckoutPage, error) {
	order, err := s.orderRepo.FindActive(ctx, nil, userID)
	if err != nil {
		return nil, lookupErr(err, MsgNoActiveOrder, "find active order")
	}

	page := &dto.CheckoutPage{Order: dto.NewOrderSummary(order, s.currency)}

	page.DefaultShipping, err = s.optionalDefault(ctx, userID, model.AddressShipping)
	if err != nil {
		return nil, err
	}
	page.DefaultBilling, err = s.optionalDefault(ctx, userID, model.AddressBilling)
	if err != nil {
		return nil, err
	}

	return page, nil
}

func (s *checkoutServiceImpl) optionalDefault(ctx context.Context, userID string, addressType model.AddressType) (*model.Address, error) {
	address, err := s.addressRepo.FindDefault(ctx, nil, userID, addressType)
	if repository.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find default address: %w", err)
	}
	return address, nil
}

// SubmitAddresses attaches a shipping and a billing address to the active
// order. Each one is either the user's default or a new record built from the
// form, and a billing address may be a copy of the shipping one.
func (s *checkoutServiceImpl) SubmitAddresses(ctx context.Context, userID string, form *dto.CheckoutForm) (*dto.CheckoutResult, error) {
	if fields := form.Validate(); len(fields) > 0 {
		return nil, Invalid(MsgInvalidForm, fields)
	}

	var result *dto.CheckoutResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.FindActive(ctx, tx, userID)
		if err != nil {
			return lookupErr(err, MsgNoActiveOrder, "find active order")
		}

		shipping, err := s.resolveAddress(ctx, tx, userID, model.AddressShipping, form.UseDefaultShipping, form.SetDefaultShipping, &model.Address{
			StreetAddress:    form.ShippingAddress,
			ApartmentAddress: form.ShippingAddress2,
			Country:          form.ShippingCountry,
			Zip:              form.ShippingZip,
		})
		if err != nil {
			return err
		}

		var billing *model.Address
		if form.SameBillingAddress {
			billing = &model.Address{
				UserID:           userID,
				StreetAddress:    shipping.StreetAddress,
				ApartmentAddress: shipping.ApartmentAddress,
				Country:          shipping.Country,
				Zip:              shipping.Zip,
				AddressType:      model.AddressBilling,
			}
			if err := s.addressRepo.Create(ctx, tx, billing); err != nil {
				return fmt.Errorf("copy shipping address to billing: %w", err)
			}
		} else {
			billing, err = s.resolveAddress(ctx, tx, userID, model.AddressBilling, form.UseDefaultBilling, form.SetDefaultBilling, &model.Address{
				StreetAddress:    form.BillingAddress,
				ApartmentAddress: form.BillingAddress2,
				Country:          form.BillingCountry,
				Zip:              form.BillingZip,
			})
			if err != nil {
				return err
			}
		}

		if err := s.orderRepo.SetAddresses(ctx, tx, order.ID, shipping.ID, billing.ID); err != nil {
			return fmt.Errorf("attach addresses: %w", err)
		}

		result = &dto.CheckoutResult{OrderID: order.ID, PaymentOption: form.PaymentOption}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Uint("order_id", result.OrderID).Str("user_id", userID).Msg("checkout addresses saved")
	return result, nil
}

// resolveAddress returns the user's default address of addressType when
// useDefault is set. Otherwise it stores entered as a new address, first
// clearing the previous default when makeDefault is set.
func (s *checkoutServiceImpl) resolveAddress(
	ctx context.Context,
	tx *gorm.DB,
	userID string,
	addressType model.AddressType,
	useDefault, makeDefault bool,
	entered *model.Address,
) (*model.Address, error) {
	if useDefault {
		address, err := s.addressRepo.FindDefault(ctx, tx, userID, addressType)
		if repository.IsNotFound(err) {
			msg := MsgNoDefaultShipping
			if addressType == model.AddressBilling {
				msg = MsgNoDefaultBilling
			}
			return nil, Invalid(msg, nil)
		}
		if err != nil {
			return nil, fmt.Errorf("find default address: %w", err)
		}
		return address, nil
	}

	if makeDefault {
		if err := s.addressRepo.ClearDefault(ctx, tx, userID, addressType); err != nil {
			return nil, fmt.Errorf("clear default address: %w", err)
		}
	}

	entered.UserID = userID
	entered.AddressType = addressType
	entered.Default = makeDefault
	if err := s.addressRepo.Create(ctx, tx, entered); err != nil {
		return nil, fmt.Errorf("create address: %w", err)
	}
	return entered, nil
}

func (s *checkoutServiceImpl) AddCoupon(ctx context.Context, userID string, form *dto.CouponForm) (string, error) {
	if fields := form.Validate(); len(fields) > 0 {
		return "", Invalid(MsgInvalidForm, fields)
	}

	order, err := s.orderRepo.FindActive(ctx, nil, userID)
	if err != nil {
		return "", lookupErr(err, MsgNoActiveOrder, "find active order")
	}

	coupon, err := s.couponRepo.FindByCode(ctx, form.Code)
	if err != nil {
		return "", lookupErr(err, MsgCouponNotFound, "find coupon")
	}

	if err := s.orderRepo.SetCoupon(ctx, nil, order.ID, coupon.ID); err != nil {
		return "", fmt.Errorf("attach coupon: %w", err)
	}

	return MsgCouponAdded, nil
}
