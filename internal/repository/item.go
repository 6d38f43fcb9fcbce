package repository

import (
	"context"

	"storefront/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ItemRepository interface {
	Seed(ctx context.Context) error
	Create(ctx context.Context, item *model.Item) error
	List(ctx context.Context, offset, limit int) ([]*model.Item, error)
	Count(ctx context.Context) (int64, error)
	FindBySlug(ctx context.Context, slug string) (*model.Item, error)
}

type itemRepoImpl struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepoImpl{
		db: db,
	}
}

// Seed inserts the sample catalog. Items whose slug already exists are left alone.
func (r *itemRepoImpl) Seed(ctx context.Context) error {
	items := []model.Item{
		{Title: "Classic White Shirt", Price: decimal.RequireFromString("25.00"), Category: model.CategoryShirt, Label: model.LabelPrimary, Slug: "classic-white-shirt", Description: "Cotton shirt with a regular fit."},
		{Title: "Striped Oxford Shirt", Price: decimal.RequireFromString("32.00"), DiscountPrice: decimal.NewNullDecimal(decimal.RequireFromString("27.50")), Category: model.CategoryShirt, Label: model.LabelSecondary, Slug: "striped-oxford-shirt", Description: "Button-down oxford with blue stripes."},
		{Title: "Running Shorts", Price: decimal.RequireFromString("20.00"), DiscountPrice: decimal.NewNullDecimal(decimal.RequireFromString("15.00")), Category: model.CategorySportsWear, Label: model.LabelDanger, Slug: "running-shorts", Description: "Lightweight shorts with a liner."},
		{Title: "Training Hoodie", Price: decimal.RequireFromString("48.00"), Category: model.CategorySportsWear, Label: model.LabelPrimary, Slug: "training-hoodie", Description: "Fleece hoodie for cold mornings."},
		{Title: "Rain Jacket", Price: decimal.RequireFromString("89.99"), Category: model.CategoryOutwear, Label: model.LabelSecondary, Slug: "rain-jacket", Description: "Waterproof shell with taped seams."},
		{Title: "Wool Coat", Price: decimal.RequireFromString("159.00"), DiscountPrice: decimal.NewNullDecimal(decimal.RequireFromString("129.00")), Category: model.CategoryOutwear, Label: model.LabelDanger, Slug: "wool-coat", Description: "Long coat in a wool blend."},
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&items).Error
}

func (r *itemRepoImpl) Create(ctx context.Context, item *model.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// List returns a page of items ordered by id.
func (r *itemRepoImpl) List(ctx context.Context, offset, limit int) ([]*model.Item, error) {
	var items []*model.Item
	err := r.db.WithContext(ctx).
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&items).
		Error

	if err != nil {
		return nil, err
	}

	return items, nil
}

func (r *itemRepoImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Item{}).Count(&count).Error
	return count, err
}

// FindBySlug matches slug = ?.
func (r *itemRepoImpl) FindBySlug(ctx context.Context, slug string) (*model.Item, error) {
	var item model.Item
	err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&item).Error

	if err != nil {
		return nil, err
	}

	return &item, nil
}
