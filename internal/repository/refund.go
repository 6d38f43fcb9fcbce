package repository

import (
	"context"

	"storefront/internal/model"

	"gorm.io/gorm"
)

type RefundRepository interface {
	Create(ctx context.Context, tx *gorm.DB, refund *model.Refund) error
	MarkAccepted(ctx context.Context, tx *gorm.DB, orderIDs []uint) error
}

type refundRepoImpl struct {
	db *gorm.DB
}

func NewRefundRepository(db *gorm.DB) RefundRepository {
	return &refundRepoImpl{
		db: db,
	}
}

func (r *refundRepoImpl) Create(ctx context.Context, tx *gorm.DB, refund *model.Refund) error {
	return conn(r.db, tx).WithContext(ctx).Omit("Order").Create(refund).Error
}

// MarkAccepted sets accepted on refunds with order_id IN orderIDs.
func (r *refundRepoImpl) MarkAccepted(ctx context.Context, tx *gorm.DB, orderIDs []uint) error {
	if len(orderIDs) == 0 {
		return nil
	}
	return conn(r.db, tx).WithContext(ctx).Model(&model.Refund{}).
		Where("order_id IN ? AND accepted = ?", orderIDs, false).
		Update("accepted", true).Error
}
