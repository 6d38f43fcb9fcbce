package service

import (
	"context"
	"fmt"

	"storefront/internal/dto"
	"storefront/internal/model"
	"storefront/internal/repository"
)

type CatalogService interface {
	ListItems(ctx context.Context, page int) (*dto.ItemPage, error)
	GetItem(ctx context.Context, slug string) (*model.Item, error)
	Seed(ctx context.Context) error
}

type catalogServiceImpl struct {
	itemRepo repository.ItemRepository
	pageSize int
}

func NewCatalogService(itemRepo repository.ItemRepository, pageSize int) CatalogService {
	return &catalogServiceImpl{
		itemRepo: itemRepo,
		pageSize: pageSize,
	}
}

// ListItems returns a 1-based page. Pages past the end come back empty with
// the totals filled in.
func (s *catalogServiceImpl) ListItems(ctx context.Context, page int) (*dto.ItemPage, error) {
	if page < 1 {
		page = 1
	}

	count, err := s.itemRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count items: %w", err)
	}

	totalPages := int((count + int64(s.pageSize) - 1) / int64(s.pageSize))
	// anything past the last page is the same empty page
	if page > totalPages+1 {
		page = totalPages + 1
	}

	items, err := s.itemRepo.List(ctx, (page-1)*s.pageSize, s.pageSize)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	if items == nil {
		items = []*model.Item{}
	}

	return &dto.ItemPage{
		Items:      items,
		Page:       page,
		PageSize:   s.pageSize,
		TotalPages: totalPages,
		TotalCount: count,
	}, nil
}

func (s *catalogServiceImpl) GetItem(ctx context.Context, slug string) (*model.Item, error) {
	item, err := s.itemRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, lookupErr(err, MsgItemNotFound, "find item")
	}
	return item, nil
}

func (s *catalogServiceImpl) Seed(ctx context.Context) error {
	if err := s.itemRepo.Seed(ctx); err != nil {
		return fmt.Errorf("seed items: %w", err)
	}
	return nil
}
