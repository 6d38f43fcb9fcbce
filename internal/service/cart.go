package service

import (
	"context"
	"fmt"

	"storefront/internal/dto"
	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type RemoveMode int

const (
	// RemoveLine drops the whole line from the cart.
	RemoveLine RemoveMode = iota
	// RemoveOne takes one unit off and drops the line when none are left.
	RemoveOne
)

const (
	MsgItemAdded   = "This item was added to your cart."
	MsgItemUpdated = "This item quantity was updated."
	MsgItemRemoved = "This item was removed from your cart."
)

type CartService interface {
	AddItem(ctx context.Context, userID, slug string) (string, error)
	RemoveItem(ctx context.Context, userID, slug string, mode RemoveMode) (string, error)
	Summary(ctx context.Context, userID string) (*dto.OrderSummary, error)
}

type cartServiceImpl struct {
	db        *gorm.DB
	currency  string
	itemRepo  repository.ItemRepository
	orderRepo repository.OrderRepository
}

func NewCartService(
	db *gorm.DB,
	currency string,
	itemRepo repository.ItemRepository,
	orderRepo repository.OrderRepository,
) CartService {
	return &cartServiceImpl{
		db:        db,
		currency:  currency,
		itemRepo:  itemRepo,
		orderRepo: orderRepo,
	}
}

// AddItem puts one unit of the item in the user's cart, opening a cart when
// the user has none. A second add of the same item bumps the existing line.
func (s *cartServiceImpl) AddItem(ctx context.Context, userID, slug string) (string, error) {
	item, err := s.itemRepo.FindBySlug(ctx, slug)
	if err != nil {
		return "", lookupErr(err, MsgItemNotFound, "find item")
	}

	var msg string
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.FindOrCreateActive(ctx, tx, userID)
		if err != nil {
			return fmt.Errorf("find or create active order: %w", err)
		}

		line, err := s.orderRepo.FindItem(ctx, tx, order.ID, item.ID)
		switch {
		case err == nil:
			if err := s.orderRepo.AdjustItemQuantity(ctx, tx, line.ID, 1); err != nil {
				return fmt.Errorf("increment order item: %w", err)
			}
			msg = MsgItemUpdated
		case repository.IsNotFound(err):
			err := s.orderRepo.CreateItem(ctx, tx, &model.OrderItem{
				UserID:   userID,
				OrderID:  order.ID,
				ItemID:   item.ID,
				Quantity: 1,
			})
			if err != nil {
				return fmt.Errorf("create order item: %w", err)
			}
			msg = MsgItemAdded
		default:
			return fmt.Errorf("find order item: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return msg, nil
}

// RemoveItem takes the item out of the user's cart according to mode. A cart
// left without lines is deleted.
func (s *cartServiceImpl) RemoveItem(ctx context.Context, userID, slug string, mode RemoveMode) (string, error) {
	item, err := s.itemRepo.FindBySlug(ctx, slug)
	if err != nil {
		return "", lookupErr(err, MsgItemNotFound, "find item")
	}

	var msg string
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.FindActive(ctx, tx, userID)
		if err != nil {
			return lookupErr(err, MsgNoActiveOrder, "find active order")
		}

		line, err := s.orderRepo.FindItem(ctx, tx, order.ID, item.ID)
		if err != nil {
			return lookupErr(err, MsgNotInCart, "find order item")
		}

		if mode == RemoveOne && line.Quantity > 1 {
			if err := s.orderRepo.AdjustItemQuantity(ctx, tx, line.ID, -1); err != nil {
				return fmt.Errorf("decrement order item: %w", err)
			}
			msg = MsgItemUpdated
			return nil
		}

		if err := s.orderRepo.DeleteItem(ctx, tx, line.ID); err != nil {
			return fmt.Errorf("delete order item: %w", err)
		}
		msg = MsgItemRemoved
		if mode == RemoveOne {
			msg = MsgItemUpdated
		}

		left, err := s.orderRepo.CountItems(ctx, tx, order.ID)
		if err != nil {
			return fmt.Errorf("count order items: %w", err)
		}
		if left == 0 {
			if err := s.orderRepo.Delete(ctx, tx, order.ID); err != nil {
				return fmt.Errorf("delete empty order: %w", err)
			}
			log.Debug().Uint("order_id", order.ID).Str("user_id", userID).Msg("empty cart deleted")
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return msg, nil
}

func (s *cartServiceImpl) Summary(ctx context.Context, userID string) (*dto.OrderSummary, error) {
	order, err := s.orderRepo.FindActive(ctx, nil, userID)
	if err != nil {
		return nil, lookupErr(err, MsgNoActiveOrder, "find active order")
	}
	return dto.NewOrderSummary(order, s.currency), nil
}
