package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryShirt      Category = "S"
	CategorySportsWear Category = "SW"
	CategoryOutwear    Category = "OW"
)

type Label string

const (
	LabelPrimary   Label = "P"
	LabelSecondary Label = "S"
	LabelDanger    Label = "D"
)

type AddressType string

const (
	AddressShipping AddressType = "S"
	AddressBilling  AddressType = "B"
)

type Item struct {
	ID            uint                `gorm:"primaryKey" json:"id"`
	Title         string              `gorm:"size:100;not null" json:"title"`
	Price         decimal.Decimal     `gorm:"type:decimal(10,2);not null;check:price >= 0" json:"price"`
	DiscountPrice decimal.NullDecimal `gorm:"type:decimal(10,2);check:discount_price >= 0" json:"discount_price"`
	Category      Category            `gorm:"size:2;not null" json:"category"`
	Label         Label               `gorm:"size:1;not null" json:"label"`
	Slug          string              `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Description   string              `gorm:"type:text" json:"description"`
	CreatedAt     time.Time           `json:"-"`
	UpdatedAt     time.Time           `json:"-"`
}

type OrderItem struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	UserID   string `gorm:"size:64;index;not null" json:"-"`
	OrderID  uint   `gorm:"index;not null" json:"order_id"`
	ItemID   uint   `gorm:"index;not null" json:"item_id"`
	Item     Item   `gorm:"foreignKey:ItemID" json:"item"`
	Quantity int    `gorm:"not null;check:quantity >= 1" json:"quantity"`
	Ordered  bool   `gorm:"not null;index" json:"ordered"`
}

type Order struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID string `gorm:"size:64;index;not null" json:"-"`
	// ActiveUserID equals UserID while the order is unfinalized and is NULL
	// afterwards. The unique index keeps one open cart per user.
	ActiveUserID *string     `gorm:"size:64;uniqueIndex" json:"-"`
	Items        []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	StartDate    time.Time   `gorm:"not null" json:"start_date"`
	OrderedDate  *time.Time  `json:"ordered_date,omitempty"`
	Ordered      bool        `gorm:"not null;index" json:"ordered"`

	ShippingAddressID *uint    `json:"shipping_address_id,omitempty"`
	ShippingAddress   *Address `gorm:"foreignKey:ShippingAddressID" json:"shipping_address,omitempty"`
	BillingAddressID  *uint    `json:"billing_address_id,omitempty"`
	BillingAddress    *Address `gorm:"foreignKey:BillingAddressID" json:"billing_address,omitempty"`
	PaymentID         *uint    `json:"payment_id,omitempty"`
	Payment           *Payment `gorm:"foreignKey:PaymentID" json:"payment,omitempty"`
	CouponID          *uint    `json:"coupon_id,omitempty"`
	Coupon            *Coupon  `gorm:"foreignKey:CouponID" json:"coupon,omitempty"`

	RefCode         *string  `gorm:"size:20;uniqueIndex" json:"ref_code,omitempty"`
	RefundRequested bool     `gorm:"not null;index" json:"refund_requested"`
	RefundGranted   bool     `gorm:"not null" json:"refund_granted"`
	Refunds         []Refund `gorm:"foreignKey:OrderID" json:"-"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

type Address struct {
	ID               uint        `gorm:"primaryKey" json:"id"`
	UserID           string      `gorm:"size:64;index:idx_address_owner;not null" json:"-"`
	StreetAddress    string      `gorm:"size:100;not null" json:"street_address"`
	ApartmentAddress string      `gorm:"size:100" json:"apartment_address"`
	Country          string      `gorm:"size:2;not null" json:"country"`
	Zip              string      `gorm:"size:100;not null" json:"zip"`
	AddressType      AddressType `gorm:"size:1;index:idx_address_owner;not null" json:"address_type"`
	Default          bool        `gorm:"column:is_default;not null" json:"default"`
	CreatedAt        time.Time   `json:"-"`
}

type Coupon struct {
	ID     uint            `gorm:"primaryKey" json:"id"`
	Code   string          `gorm:"size:15;uniqueIndex;not null" json:"code"`
	Amount decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
}

type Payment struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	ChargeID  string          `gorm:"size:100;not null" json:"charge_id"`
	Provider  string          `gorm:"size:16;not null" json:"provider"`
	UserID    string          `gorm:"size:64;index" json:"-"`
	Amount    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Timestamp time.Time       `gorm:"not null" json:"timestamp"`
}

type Refund struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"index;not null" json:"order_id"`
	Order     *Order    `gorm:"foreignKey:OrderID" json:"-"`
	Reason    string    `gorm:"type:text;not null" json:"reason"`
	Email     string    `gorm:"size:254;not null" json:"email"`
	Accepted  bool      `gorm:"not null" json:"accepted"`
	CreatedAt time.Time `json:"created_at"`
}

// AllModels lists every table the storefront migrates.
func AllModels() []interface{} {
	return []interface{}{
		&Item{},
		&Address{},
		&Coupon{},
		&Payment{},
		&Order{},
		&OrderItem{},
		&Refund{},
	}
}
