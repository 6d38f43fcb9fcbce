package dto

import "strings"

const (
	PaymentOptionCard   = "card"
	PaymentOptionPaypal = "paypal"
)

// CheckoutForm carries the shipping and billing choices made at checkout.
// Address fields are only checked for the addresses the buyer actually types in.
type CheckoutForm struct {
	ShippingAddress  string `json:"shipping_address" form:"shipping_address" validate:"required,max=100"`
	ShippingAddress2 string `json:"shipping_address2" form:"shipping_address2" validate:"max=100"`
	ShippingCountry  string `json:"shipping_country" form:"shipping_country" validate:"required,iso3166_1_alpha2"`
	ShippingZip      string `json:"shipping_zip" form:"shipping_zip" validate:"required,max=100"`

	BillingAddress  string `json:"billing_address" form:"billing_address" validate:"required,max=100"`
	BillingAddress2 string `json:"billing_address2" form:"billing_address2" validate:"max=100"`
	BillingCountry  string `json:"billing_country" form:"billing_country" validate:"required,iso3166_1_alpha2"`
	BillingZip      string `json:"billing_zip" form:"billing_zip" validate:"required,max=100"`

	SameBillingAddress bool `json:"same_billing_address" form:"same_billing_address"`
	SetDefaultShipping bool `json:"set_default_shipping" form:"set_default_shipping"`
	UseDefaultShipping bool `json:"use_default_shipping" form:"use_default_shipping"`
	SetDefaultBilling  bool `json:"set_default_billing" form:"set_default_billing"`
	UseDefaultBilling  bool `json:"use_default_billing" form:"use_default_billing"`

	PaymentOption string `json:"payment_option" form:"payment_option" validate:"required,oneof=card paypal"`
}

func (f *CheckoutForm) normalize() {
	f.ShippingAddress = strings.TrimSpace(f.ShippingAddress)
	f.ShippingAddress2 = strings.TrimSpace(f.ShippingAddress2)
	f.ShippingCountry = strings.ToUpper(strings.TrimSpace(f.ShippingCountry))
	f.ShippingZip = strings.TrimSpace(f.ShippingZip)
	f.BillingAddress = strings.TrimSpace(f.BillingAddress)
	f.BillingAddress2 = strings.TrimSpace(f.BillingAddress2)
	f.BillingCountry = strings.ToUpper(strings.TrimSpace(f.BillingCountry))
	f.BillingZip = strings.TrimSpace(f.BillingZip)
	f.PaymentOption = strings.TrimSpace(f.PaymentOption)
}

// EntersBilling reports whether the billing address comes from the form fields.
func (f *CheckoutForm) EntersBilling() bool {
	return !f.SameBillingAddress && !f.UseDefaultBilling
}

// Validate trims the input and checks the fields that apply to the chosen
// flags.
func (f *CheckoutForm) Validate() FieldErrors {
	f.normalize()

	fields := []string{"PaymentOption"}
	if !f.UseDefaultShipping {
		fields = append(fields, "ShippingAddress", "ShippingAddress2", "ShippingCountry", "ShippingZip")
	}
	if f.EntersBilling() {
		fields = append(fields, "BillingAddress", "BillingAddress2", "BillingCountry", "BillingZip")
	}

	return fieldErrors(validate.StructPartial(f, fields...))
}

type CouponForm struct {
	Code string `json:"code" form:"code" validate:"required,max=15"`
}

func (f *CouponForm) Validate() FieldErrors {
	f.Code = strings.TrimSpace(f.Code)
	return fieldErrors(validate.Struct(f))
}

type RefundForm struct {
	RefCode string `json:"ref_code" form:"ref_code" validate:"required,max=20"`
	Message string `json:"message" form:"message" validate:"required"`
	Email   string `json:"email" form:"email" validate:"required,email"`
}

func (f *RefundForm) Validate() FieldErrors {
	f.RefCode = strings.TrimSpace(f.RefCode)
	f.Message = strings.TrimSpace(f.Message)
	f.Email = strings.TrimSpace(f.Email)
	return fieldErrors(validate.Struct(f))
}

// PaymentForm carries the buyer's payment credential: a Braintree nonce for
// cards or the approved PayPal order id.
type PaymentForm struct {
	Token string `json:"token" form:"token" validate:"required"`
}

func (f *PaymentForm) Validate() FieldErrors {
	f.Token = strings.TrimSpace(f.Token)
	return fieldErrors(validate.Struct(f))
}
