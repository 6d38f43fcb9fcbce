package repository

import (
	"context"

	"storefront/internal/model"

	"gorm.io/gorm"
)

type CouponRepository interface {
	Create(ctx context.Context, coupon *model.Coupon) error
	FindByCode(ctx context.Context, code string) (*model.Coupon, error)
}

type couponRepoImpl struct {
	db *gorm.DB
}

func NewCouponRepository(db *gorm.DB) CouponRepository {
	return &couponRepoImpl{
		db: db,
	}
}

func (r *couponRepoImpl) Create(ctx context.Context, coupon *model.Coupon) error {
	return r.db.WithContext(ctx).Create(coupon).Error
}

func (r *couponRepoImpl) FindByCode(ctx context.Context, code string) (*model.Coupon, error) {
	var coupon model.Coupon
	err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&coupon).Error

	if err != nil {
		return nil, err
	}

	return &coupon, nil
}
