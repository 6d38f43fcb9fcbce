package model

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// HasDiscount reports whether the item carries a non-zero discount price.
func (i *Item) HasDiscount() bool {
	return i.DiscountPrice.Valid && !i.DiscountPrice.Decimal.IsZero()
}

// EffectivePrice is the discount price when present, the list price otherwise.
func (i *Item) EffectivePrice() decimal.Decimal {
	if i.HasDiscount() {
		return i.DiscountPrice.Decimal
	}
	return i.Price
}

func (oi *OrderItem) ItemTotal() decimal.Decimal {
	return oi.Item.Price.Mul(decimal.NewFromInt(int64(oi.Quantity)))
}

func (oi *OrderItem) DiscountTotal() decimal.Decimal {
	return oi.Item.DiscountPrice.Decimal.Mul(decimal.NewFromInt(int64(oi.Quantity)))
}

// AmountSaved is zero for items without a discount.
func (oi *OrderItem) AmountSaved() decimal.Decimal {
	if !oi.Item.HasDiscount() {
		return decimal.Zero
	}
	return oi.ItemTotal().Sub(oi.DiscountTotal())
}

func (oi *OrderItem) FinalPrice() decimal.Decimal {
	return oi.Item.EffectivePrice().Mul(decimal.NewFromInt(int64(oi.Quantity)))
}

// Total sums the final price of every line. Items must be preloaded.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for i := range o.Items {
		total = total.Add(o.Items[i].FinalPrice())
	}
	return total
}

// ToCents converts a currency amount to minor units, rounding half away from zero.
func ToCents(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).Round(0).IntPart()
}

// FromCents is the inverse of ToCents.
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}
