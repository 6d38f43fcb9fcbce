package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestOrderItem_FinalPrice(t *testing.T) {
	tests := []struct {
		name     string
		item     Item
		quantity int
		want     string
		saved    string
	}{
		{
			name:     "discount_applies",
			item:     Item{Price: dec("20"), DiscountPrice: decimal.NewNullDecimal(dec("15"))},
			quantity: 3,
			want:     "45",
			saved:    "15",
		},
		{
			name:     "no_discount",
			item:     Item{Price: dec("20")},
			quantity: 2,
			want:     "40",
			saved:    "0",
		},
		{
			name:     "zero_discount_is_ignored",
			item:     Item{Price: dec("9.99"), DiscountPrice: decimal.NewNullDecimal(decimal.Zero)},
			quantity: 1,
			want:     "9.99",
			saved:    "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oi := OrderItem{Item: tt.item, Quantity: tt.quantity}
			assert.True(t, dec(tt.want).Equal(oi.FinalPrice()), "final price %s", oi.FinalPrice())
			assert.True(t, dec(tt.saved).Equal(oi.AmountSaved()), "amount saved %s", oi.AmountSaved())
		})
	}
}

func TestOrder_Total(t *testing.T) {
	order := Order{Items: []OrderItem{
		{Item: Item{Price: dec("20"), DiscountPrice: decimal.NewNullDecimal(dec("15"))}, Quantity: 3},
		{Item: Item{Price: dec("12.50")}, Quantity: 2},
	}}

	assert.True(t, dec("70").Equal(order.Total()))
	assert.True(t, decimal.Zero.Equal((&Order{}).Total()))
}

func TestCents(t *testing.T) {
	assert.Equal(t, int64(4500), ToCents(dec("45")))
	assert.Equal(t, int64(1999), ToCents(dec("19.99")))
	assert.Equal(t, int64(1000), ToCents(dec("9.995")))
	assert.True(t, dec("19.99").Equal(FromCents(1999)))
}
