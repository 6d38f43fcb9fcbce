package service

import (
	"errors"
	"fmt"

	"storefront/internal/dto"
	"storefront/internal/repository"
)

type ErrorKind int

const (
	KindNotFound ErrorKind = iota + 1
	KindValidation
)

// Messages shown to the buyer.
const (
	MsgItemNotFound      = "item not found"
	MsgNoActiveOrder     = "You do not have an active order"
	MsgNotInCart         = "This item was not in your cart"
	MsgCouponNotFound    = "This coupon does not exist"
	MsgOrderNotFound     = "This order does not exist."
	MsgNoBillingAddress  = "You have not added a billing address"
	MsgNoDefaultShipping = "No default shipping address available"
	MsgNoDefaultBilling  = "No default billing address available"
	MsgInvalidOption     = "Invalid payment option selected"
	MsgInvalidForm       = "Please correct the errors below."
	MsgEmptyCart         = "Your cart is empty"
)

// Error is a failure the buyer can act on. Anything else returned by a
// service is unexpected.
type Error struct {
	Kind    ErrorKind
	Message string
	Fields  dto.FieldErrors
}

func (e *Error) Error() string {
	return e.Message
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Invalid(message string, fields dto.FieldErrors) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

func IsKind(err error, kind ErrorKind) bool {
	var se *Error
	return errors.As(err, &se) && se.Kind == kind
}

// lookupErr turns a missing row into a NotFound with message and wraps
// anything else with op.
func lookupErr(err error, message, op string) error {
	if repository.IsNotFound(err) {
		return NotFound(message)
	}
	return fmt.Errorf("%s: %w", op, err)
}
