package service

import (
	"testing"

	"storefront/internal/dto"
	"storefront/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paidOrder(t *testing.T, f *fixture, userID string) string {
	t.Helper()
	f.add(t, userID, "coat", 1)
	f.submitAddresses(t, userID)
	res, err := f.payment.Pay(f.ctx, userID, dto.PaymentOptionCard, &dto.PaymentForm{Token: "nonce"})
	require.NoError(t, err)
	return res.RefCode
}

func TestRequestRefundUnknownCode(t *testing.T) {
	f := newFixture(t)

	_, err := f.refund.RequestRefund(f.ctx, &dto.RefundForm{RefCode: "doesnotexist", Message: "broken", Email: "a@example.com"})
	assert.True(t, IsKind(err, KindNotFound))
	assert.EqualError(t, err, MsgOrderNotFound)
	assert.Zero(t, f.count(t, &model.Refund{}, ""))
}

func TestRequestRefundKnownCode(t *testing.T) {
	f := newFixture(t)
	refCode := paidOrder(t, f, "alice")

	msg, err := f.refund.RequestRefund(f.ctx, &dto.RefundForm{RefCode: refCode, Message: "wrong size", Email: "alice@example.com"})
	require.NoError(t, err)
	assert.Equal(t, MsgRefundReceived, msg)

	var order model.Order
	require.NoError(t, f.db.Where("ref_code = ?", refCode).First(&order).Error)
	assert.True(t, order.RefundRequested)
	assert.False(t, order.RefundGranted)

	var refunds []model.Refund
	require.NoError(t, f.db.Find(&refunds).Error)
	require.Len(t, refunds, 1)
	assert.Equal(t, order.ID, refunds[0].OrderID)
	assert.Equal(t, "wrong size", refunds[0].Reason)
	assert.Equal(t, "alice@example.com", refunds[0].Email)
}

func TestRequestRefundValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.refund.RequestRefund(f.ctx, &dto.RefundForm{RefCode: "abc", Message: "x", Email: "bad"})

	var se *Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, KindValidation, se.Kind)
	assert.Contains(t, se.Fields, "email")
}

func TestGrantRefunds(t *testing.T) {
	f := newFixture(t)
	requested := paidOrder(t, f, "alice")
	notRequested := paidOrder(t, f, "bob")

	_, err := f.refund.RequestRefund(f.ctx, &dto.RefundForm{RefCode: requested, Message: "late", Email: "alice@example.com"})
	require.NoError(t, err)

	pending, err := f.refund.ListRefundRequests(f.ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, requested, *pending[0].RefCode)

	n, err := f.refund.GrantRefunds(f.ctx, []string{requested, notRequested})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	var order model.Order
	require.NoError(t, f.db.Where("ref_code = ?", requested).First(&order).Error)
	assert.False(t, order.RefundRequested)
	assert.True(t, order.RefundGranted)
	assert.EqualValues(t, 1, f.count(t, &model.Refund{}, "accepted = ?", true))
	assert.EqualValues(t, 0, f.count(t, &model.Order{}, "ref_code = ? AND refund_granted = ?", notRequested, true))

	_, err = f.refund.GrantRefunds(f.ctx, nil)
	assert.True(t, IsKind(err, KindValidation))
}
