package dto

import (
	"time"

	"storefront/internal/model"
)

const (
	LevelSuccess = "success"
	LevelInfo    = "info"
	LevelWarning = "warning"
	LevelError   = "error"
)

// Response is the envelope every storefront endpoint answers with. Redirect
// names the page a browser client should show next.
type Response struct {
	Level    string      `json:"level"`
	Message  string      `json:"message,omitempty"`
	Fields   FieldErrors `json:"fields,omitempty"`
	Redirect string      `json:"redirect,omitempty"`
	Data     interface{} `json:"data,omitempty"`
}

type ItemPage struct {
	Items      []*model.Item `json:"items"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalPages int           `json:"total_pages"`
	TotalCount int64         `json:"total_count"`
}

type OrderLine struct {
	Item        *model.Item `json:"item"`
	Quantity    int         `json:"quantity"`
	ItemTotal   string      `json:"item_total"`
	FinalPrice  string      `json:"final_price"`
	AmountSaved string      `json:"amount_saved"`
}

type OrderSummary struct {
	ID        uint           `json:"id"`
	StartDate time.Time      `json:"start_date"`
	Lines     []OrderLine    `json:"lines"`
	Total     string         `json:"total"`
	Currency  string         `json:"currency"`
	Coupon    *model.Coupon  `json:"coupon,omitempty"`
	Shipping  *model.Address `json:"shipping_address,omitempty"`
	Billing   *model.Address `json:"billing_address,omitempty"`
}

// NewOrderSummary renders an order with preloaded lines. Amounts are fixed to
// two decimal places.
func NewOrderSummary(order *model.Order, currency string) *OrderSummary {
	lines := make([]OrderLine, len(order.Items))
	for i := range order.Items {
		oi := &order.Items[i]
		lines[i] = OrderLine{
			Item:        &oi.Item,
			Quantity:    oi.Quantity,
			ItemTotal:   oi.ItemTotal().StringFixed(2),
			FinalPrice:  oi.FinalPrice().StringFixed(2),
			AmountSaved: oi.AmountSaved().StringFixed(2),
		}
	}

	return &OrderSummary{
		ID:        order.ID,
		StartDate: order.StartDate,
		Lines:     lines,
		Total:     order.Total().StringFixed(2),
		Currency:  currency,
		Coupon:    order.Coupon,
		Shipping:  order.ShippingAddress,
		Billing:   order.BillingAddress,
	}
}

type CheckoutPage struct {
	Order           *OrderSummary  `json:"order"`
	DefaultShipping *model.Address `json:"default_shipping_address,omitempty"`
	DefaultBilling  *model.Address `json:"default_billing_address,omitempty"`
}

type CheckoutResult struct {
	OrderID       uint   `json:"order_id"`
	PaymentOption string `json:"payment_option"`
}

type PaymentPage struct {
	Option    string        `json:"payment_option"`
	Order     *OrderSummary `json:"order"`
	PublicKey string        `json:"public_key"`
}

type PaymentResult struct {
	RefCode  string `json:"ref_code"`
	ChargeID string `json:"charge_id"`
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}
