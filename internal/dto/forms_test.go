package dto

import (
	"testing"

	"storefront/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func validCheckout() CheckoutForm {
	return CheckoutForm{
		ShippingAddress: "1 Main St",
		ShippingCountry: "us",
		ShippingZip:     "10001",
		BillingAddress:  "2 Side St",
		BillingCountry:  "CA",
		BillingZip:      "H2X",
		PaymentOption:   PaymentOptionCard,
	}
}

func TestCheckoutFormValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(f *CheckoutForm)
		want   []string
	}{
		{
			name:   "valid",
			modify: func(f *CheckoutForm) {},
		},
		{
			name: "missing shipping fields",
			modify: func(f *CheckoutForm) {
				f.ShippingAddress = "  "
				f.ShippingZip = ""
			},
			want: []string{"shipping_address", "shipping_zip"},
		},
		{
			name: "default shipping skips shipping fields",
			modify: func(f *CheckoutForm) {
				f.ShippingAddress = ""
				f.ShippingCountry = ""
				f.ShippingZip = ""
				f.UseDefaultShipping = true
			},
		},
		{
			name: "same billing skips billing fields",
			modify: func(f *CheckoutForm) {
				f.BillingAddress = ""
				f.BillingCountry = ""
				f.BillingZip = ""
				f.SameBillingAddress = true
			},
		},
		{
			name: "default billing skips billing fields",
			modify: func(f *CheckoutForm) {
				f.BillingAddress = ""
				f.UseDefaultBilling = true
			},
		},
		{
			name: "bad country",
			modify: func(f *CheckoutForm) {
				f.BillingCountry = "XX"
			},
			want: []string{"billing_country"},
		},
		{
			name: "unknown payment option",
			modify: func(f *CheckoutForm) {
				f.PaymentOption = "stripe"
			},
			want: []string{"payment_option"},
		},
		{
			name: "apartment too long",
			modify: func(f *CheckoutForm) {
				f.ShippingAddress2 = string(make([]byte, 101))
			},
			want: []string{"shipping_address2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validCheckout()
			tt.modify(&f)

			errs := f.Validate()

			keys := make([]string, 0, len(errs))
			for k := range errs {
				keys = append(keys, k)
			}
			assert.ElementsMatch(t, tt.want, keys)
		})
	}
}

func TestCheckoutFormNormalizesCountry(t *testing.T) {
	f := validCheckout()
	assert.Empty(t, f.Validate())
	assert.Equal(t, "US", f.ShippingCountry)
}

func TestRefundFormValidate(t *testing.T) {
	f := RefundForm{RefCode: "abc", Message: "broken", Email: "not-an-email"}
	errs := f.Validate()
	assert.Equal(t, FieldErrors{"email": "Enter a valid email address."}, errs)

	f.Email = "buyer@example.com"
	assert.Empty(t, f.Validate())

	empty := RefundForm{}
	assert.Len(t, empty.Validate(), 3)
}

func TestCouponFormValidate(t *testing.T) {
	f := CouponForm{Code: " SAVE5 "}
	assert.Empty(t, f.Validate())
	assert.Equal(t, "SAVE5", f.Code)

	long := CouponForm{Code: "THIS-CODE-IS-TOO-LONG"}
	assert.Equal(t, FieldErrors{"code": "Ensure this value has at most 15 characters."}, long.Validate())
}

func TestNewOrderSummary(t *testing.T) {
	order := &model.Order{
		ID: 3,
		Items: []model.OrderItem{
			{Quantity: 3, Item: model.Item{Slug: "shorts", Price: decimal.RequireFromString("20"), DiscountPrice: decimal.NewNullDecimal(decimal.RequireFromString("15"))}},
			{Quantity: 1, Item: model.Item{Slug: "coat", Price: decimal.RequireFromString("25")}},
		},
	}

	s := NewOrderSummary(order, "USD")

	assert.Equal(t, "70.00", s.Total)
	assert.Len(t, s.Lines, 2)
	assert.Equal(t, "45.00", s.Lines[0].FinalPrice)
	assert.Equal(t, "15.00", s.Lines[0].AmountSaved)
	assert.Equal(t, "0.00", s.Lines[1].AmountSaved)
	assert.Equal(t, "shorts", s.Lines[0].Item.Slug)
}
