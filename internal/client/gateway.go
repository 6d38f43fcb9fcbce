package client

import (
	"context"
	"errors"
	"net"
)

type ChargeErrorKind int

const (
	ChargeGenericFailure ChargeErrorKind = iota
	ChargeDeclined
	ChargeRateLimited
	ChargeInvalidRequest
	ChargeAuthFailure
	ChargeNetworkError
)

func (k ChargeErrorKind) String() string {
	switch k {
	case ChargeDeclined:
		return "declined"
	case ChargeRateLimited:
		return "rate_limited"
	case ChargeInvalidRequest:
		return "invalid_request"
	case ChargeAuthFailure:
		return "auth_failure"
	case ChargeNetworkError:
		return "network_error"
	default:
		return "generic_failure"
	}
}

// ChargeError is returned by a PaymentGateway when the charge did not happen.
// Message is the provider's text and may be shown to the buyer for declines.
type ChargeError struct {
	Kind    ChargeErrorKind
	Message string
	Err     error
}

func (e *ChargeError) Error() string {
	if e.Err != nil {
		return "charge " + e.Kind.String() + ": " + e.Message + ": " + e.Err.Error()
	}
	return "charge " + e.Kind.String() + ": " + e.Message
}

func (e *ChargeError) Unwrap() error {
	return e.Err
}

type ChargeRequest struct {
	AmountCents int64
	Currency    string
	// Token is the buyer's payment credential: a Braintree nonce or an
	// approved PayPal order id.
	Token     string
	Reference string
}

type ChargeResult struct {
	ID string
}

type PaymentGateway interface {
	// Charge moves AmountCents from the buyer. It returns a *ChargeError for
	// every failure.
	Charge(ctx context.Context, req *ChargeRequest) (*ChargeResult, error)
	// PublicKey is what the browser needs to collect a Token.
	PublicKey(ctx context.Context) (string, error)
}

// transportError classifies errors that never reached the provider.
func transportError(err error) (*ChargeError, bool) {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &ChargeError{Kind: ChargeNetworkError, Message: "request to payment provider timed out", Err: err}, true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return &ChargeError{Kind: ChargeNetworkError, Message: "could not reach payment provider", Err: err}, true
	}
	return nil, false
}

func chargeErrorFromStatus(status int, message string, err error) *ChargeError {
	kind := ChargeGenericFailure
	switch {
	case status == 401 || status == 403:
		kind = ChargeAuthFailure
	case status == 429:
		kind = ChargeRateLimited
	case status >= 400 && status < 500:
		kind = ChargeInvalidRequest
	}
	return &ChargeError{Kind: kind, Message: message, Err: err}
}
