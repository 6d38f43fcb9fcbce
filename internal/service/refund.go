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

const MsgRefundReceived = "Your request was received."

type RefundService interface {
	RequestRefund(ctx context.Context, form *dto.RefundForm) (string, error)
	ListRefundRequests(ctx context.Context) ([]*model.Order, error)
	GrantRefunds(ctx context.Context, refCodes []string) (int, error)
}

type refundServiceImpl struct {
	db         *gorm.DB
	orderRepo  repository.OrderRepository
	refundRepo repository.RefundRepository
}

func NewRefundService(
	db *gorm.DB,
	orderRepo repository.OrderRepository,
	refundRepo repository.RefundRepository,
) RefundService {
	return &refundServiceImpl{
		db:         db,
		orderRepo:  orderRepo,
		refundRepo: refundRepo,
	}
}

// RequestRefund flags the order with the given ref code and records the
// reason. It needs no login, so an unknown code gets the same answer whether
// or not it ever existed.
func (s *refundServiceImpl) RequestRefund(ctx context.Context, form *dto.RefundForm) (string, error) {
	if fields := form.Validate(); len(fields) > 0 {
		return "", Invalid(MsgInvalidForm, fields)
	}

	var orderID uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.FindByRefCode(ctx, tx, form.RefCode)
		if err != nil {
			return lookupErr(err, MsgOrderNotFound, "find order by ref code")
		}
		orderID = order.ID

		if err := s.orderRepo.MarkRefundRequested(ctx, tx, order.ID); err != nil {
			return fmt.Errorf("mark refund requested: %w", err)
		}

		err = s.refundRepo.Create(ctx, tx, &model.Refund{
			OrderID: order.ID,
			Reason:  form.Message,
			Email:   form.Email,
		})
		if err != nil {
			return fmt.Errorf("store refund: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	log.Info().Uint("order_id", orderID).Msg("refund requested")
	return MsgRefundReceived, nil
}

func (s *refundServiceImpl) ListRefundRequests(ctx context.Context) ([]*model.Order, error) {
	orders, err := s.orderRepo.ListRefundRequested(ctx)
	if err != nil {
		return nil, fmt.Errorf("list refund requests: %w", err)
	}
	return orders, nil
}

// GrantRefunds accepts the pending requests on the given orders and returns
// how many orders changed. Codes without a pending request are skipped.
func (s *refundServiceImpl) GrantRefunds(ctx context.Context, refCodes []string) (int, error) {
	if len(refCodes) == 0 {
		return 0, Invalid("no reference codes given", nil)
	}

	var granted []uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids, err := s.orderRepo.GrantRefunds(ctx, tx, refCodes)
		if err != nil {
			return fmt.Errorf("grant refunds: %w", err)
		}
		if err := s.refundRepo.MarkAccepted(ctx, tx, ids); err != nil {
			return fmt.Errorf("accept refunds: %w", err)
		}
		granted = ids
		return nil
	})
	if err != nil {
		return 0, err
	}

	log.Info().Int("count", len(granted)).Msg("refunds granted")
	return len(granted), nil
}
