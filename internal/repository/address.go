package repository

import (
	"context"

	"storefront/internal/model"

	"gorm.io/gorm"
)

type AddressRepository interface {
	Create(ctx context.Context, tx *gorm.DB, address *model.Address) error
	FindDefault(ctx context.Context, tx *gorm.DB, userID string, addressType model.AddressType) (*model.Address, error)
	ClearDefault(ctx context.Context, tx *gorm.DB, userID string, addressType model.AddressType) error
}

type addressRepoImpl struct {
	db *gorm.DB
}

func NewAddressRepository(db *gorm.DB) AddressRepository {
	return &addressRepoImpl{
		db: db,
	}
}

func (r *addressRepoImpl) Create(ctx context.Context, tx *gorm.DB, address *model.Address) error {
	return conn(r.db, tx).WithContext(ctx).Create(address).Error
}

// FindDefault matches user_id = ? AND address_type = ? AND is_default = true.
// The newest address wins if more than one is flagged.
func (r *addressRepoImpl) FindDefault(ctx context.Context, tx *gorm.DB, userID string, addressType model.AddressType) (*model.Address, error) {
	var address model.Address
	err := conn(r.db, tx).WithContext(ctx).
		Where("user_id = ? AND address_type = ? AND is_default = ?", userID, addressType, true).
		Order("id DESC").
		First(&address).Error

	if err != nil {
		return nil, err
	}

	return &address, nil
}

// ClearDefault unsets is_default on every address with user_id = ? AND
// address_type = ?. Addresses of the other type are untouched.
func (r *addressRepoImpl) ClearDefault(ctx context.Context, tx *gorm.DB, userID string, addressType model.AddressType) error {
	return conn(r.db, tx).WithContext(ctx).Model(&model.Address{}).
		Where("user_id = ? AND address_type = ? AND is_default = ?", userID, addressType, true).
		Update("is_default", false).Error
}
