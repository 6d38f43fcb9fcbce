package repository

import (
	"context"
	"time"

	"storefront/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository interface {
	FindActive(ctx context.Context, tx *gorm.DB, userID string) (*model.Order, error)
	FindOrCreateActive(ctx context.Context, tx *gorm.DB, userID string) (*model.Order, error)
	Delete(ctx context.Context, tx *gorm.DB, orderID uint) error

	FindItem(ctx context.Context, tx *gorm.DB, orderID, itemID uint) (*model.OrderItem, error)
	CreateItem(ctx context.Context, tx *gorm.DB, orderItem *model.OrderItem) error
	AdjustItemQuantity(ctx context.Context, tx *gorm.DB, orderItemID uint, delta int) error
	DeleteItem(ctx context.Context, tx *gorm.DB, orderItemID uint) error
	CountItems(ctx context.Context, tx *gorm.DB, orderID uint) (int64, error)

	SetAddresses(ctx context.Context, tx *gorm.DB, orderID, shippingID, billingID uint) error
	SetCoupon(ctx context.Context, tx *gorm.DB, orderID, couponID uint) error
	MarkOrdered(ctx context.Context, tx *gorm.DB, orderID, paymentID uint, refCode string, orderedAt time.Time) error

	FindByRefCode(ctx context.Context, tx *gorm.DB, refCode string) (*model.Order, error)
	MarkRefundRequested(ctx context.Context, tx *gorm.DB, orderID uint) error
	ListRefundRequested(ctx context.Context) ([]*model.Order, error)
	GrantRefunds(ctx context.Context, tx *gorm.DB, refCodes []string) ([]uint, error)
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

func withCart(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("order_items.id") }).
		Preload("Items.Item").
		Preload("Coupon").
		Preload("ShippingAddress").
		Preload("BillingAddress")
}

// FindActive returns the user's unfinalized order: active_user_id = userID,
// which holds exactly when user_id = userID AND ordered = false.
func (r *orderRepoImpl) FindActive(ctx context.Context, tx *gorm.DB, userID string) (*model.Order, error) {
	var order model.Order
	err := withCart(conn(r.db, tx).WithContext(ctx)).
		Where("active_user_id = ?", userID).
		First(&order).Error

	if err != nil {
		return nil, err
	}

	return &order, nil
}

// FindOrCreateActive returns the user's unfinalized order, starting one when
// there is none. A concurrent insert for the same user loses on the
// active_user_id index and the winner's row is read back.
func (r *orderRepoImpl) FindOrCreateActive(ctx context.Context, tx *gorm.DB, userID string) (*model.Order, error) {
	order, err := r.FindActive(ctx, tx, userID)
	if err == nil {
		return order, nil
	}
	if !IsNotFound(err) {
		return nil, err
	}

	active := userID
	err = conn(r.db, tx).WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.Order{
			UserID:       userID,
			ActiveUserID: &active,
			StartDate:    time.Now(),
		}).Error
	if err != nil {
		return nil, err
	}

	return r.FindActive(ctx, tx, userID)
}

// Delete removes an unfinalized order (id = ? AND ordered = false).
func (r *orderRepoImpl) Delete(ctx context.Context, tx *gorm.DB, orderID uint) error {
	return conn(r.db, tx).WithContext(ctx).
		Where("id = ? AND ordered = ?", orderID, false).
		Delete(&model.Order{}).Error
}

// FindItem matches order_id = ? AND item_id = ? AND ordered = false.
func (r *orderRepoImpl) FindItem(ctx context.Context, tx *gorm.DB, orderID, itemID uint) (*model.OrderItem, error) {
	var orderItem model.OrderItem
	err := conn(r.db, tx).WithContext(ctx).
		Where("order_id = ? AND item_id = ? AND ordered = ?", orderID, itemID, false).
		First(&orderItem).Error

	if err != nil {
		return nil, err
	}

	return &orderItem, nil
}

func (r *orderRepoImpl) CreateItem(ctx context.Context, tx *gorm.DB, orderItem *model.OrderItem) error {
	return conn(r.db, tx).WithContext(ctx).Omit("Item").Create(orderItem).Error
}

// AdjustItemQuantity adds delta to the line's quantity in a single statement.
func (r *orderRepoImpl) AdjustItemQuantity(ctx context.Context, tx *gorm.DB, orderItemID uint, delta int) error {
	res := conn(r.db, tx).WithContext(ctx).Model(&model.OrderItem{}).
		Where("id = ? AND ordered = ?", orderItemID, false).
		Update("quantity", gorm.Expr("quantity + ?", delta))

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *orderRepoImpl) DeleteItem(ctx context.Context, tx *gorm.DB, orderItemID uint) error {
	return conn(r.db, tx).WithContext(ctx).
		Where("id = ? AND ordered = ?", orderItemID, false).
		Delete(&model.OrderItem{}).Error
}

// CountItems counts the lines with order_id = ?.
func (r *orderRepoImpl) CountItems(ctx context.Context, tx *gorm.DB, orderID uint) (int64, error) {
	var count int64
	err := conn(r.db, tx).WithContext(ctx).Model(&model.OrderItem{}).
		Where("order_id = ?", orderID).
		Count(&count).Error
	return count, err
}

func (r *orderRepoImpl) SetAddresses(ctx context.Context, tx *gorm.DB, orderID, shippingID, billingID uint) error {
	return r.updateActive(ctx, tx, orderID, map[string]interface{}{
		"shipping_address_id": shippingID,
		"billing_address_id":  billingID,
	})
}

func (r *orderRepoImpl) SetCoupon(ctx context.Context, tx *gorm.DB, orderID, couponID uint) error {
	return r.updateActive(ctx, tx, orderID, map[string]interface{}{
		"coupon_id": couponID,
	})
}

// MarkOrdered finalizes an unfinalized order and every one of its lines. The
// order's active_user_id is cleared so the user can open a new cart.
func (r *orderRepoImpl) MarkOrdered(ctx context.Context, tx *gorm.DB, orderID, paymentID uint, refCode string, orderedAt time.Time) error {
	db := conn(r.db, tx).WithContext(ctx)

	err := db.Model(&model.OrderItem{}).
		Where("order_id = ? AND ordered = ?", orderID, false).
		Update("ordered", true).Error
	if err != nil {
		return err
	}

	return r.updateActive(ctx, tx, orderID, map[string]interface{}{
		"ordered":        true,
		"ordered_date":   orderedAt,
		"payment_id":     paymentID,
		"ref_code":       refCode,
		"active_user_id": nil,
	})
}

// updateActive applies values to the order with id = ? AND ordered = false.
func (r *orderRepoImpl) updateActive(ctx context.Context, tx *gorm.DB, orderID uint, values map[string]interface{}) error {
	res := conn(r.db, tx).WithContext(ctx).Model(&model.Order{}).
		Where("id = ? AND ordered = ?", orderID, false).
		Updates(values)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindByRefCode matches ref_code = ?. Only paid orders carry a ref code.
func (r *orderRepoImpl) FindByRefCode(ctx context.Context, tx *gorm.DB, refCode string) (*model.Order, error) {
	var order model.Order
	err := conn(r.db, tx).WithContext(ctx).
		Where("ref_code = ?", refCode).
		First(&order).Error

	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) MarkRefundRequested(ctx context.Context, tx *gorm.DB, orderID uint) error {
	return conn(r.db, tx).WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("refund_requested", true).Error
}

// ListRefundRequested returns orders with refund_requested = true, oldest
// first, with their refund requests attached.
func (r *orderRepoImpl) ListRefundRequested(ctx context.Context) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Preload("Refunds").
		Where("refund_requested = ?", true).
		Order("id").
		Find(&orders).Error

	if err != nil {
		return nil, err
	}

	return orders, nil
}

// GrantRefunds flips refund_requested to refund_granted on orders with
// ref_code IN refCodes AND refund_requested = true. It returns the ids it
// changed.
func (r *orderRepoImpl) GrantRefunds(ctx context.Context, tx *gorm.DB, refCodes []string) ([]uint, error) {
	db := conn(r.db, tx).WithContext(ctx)

	var ids []uint
	err := db.Model(&model.Order{}).
		Where("ref_code IN ? AND refund_requested = ?", refCodes, true).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	err = db.Model(&model.Order{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{
			"refund_requested": false,
			"refund_granted":   true,
		}).Error
	if err != nil {
		return nil, err
	}

	return ids, nil
}
