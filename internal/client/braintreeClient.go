package client

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/config"

	"github.com/braintree-go/braintree-go"
)

// responseCarrier matches braintree's invalid response errors, which expose
// the raw HTTP response.
type responseCarrier interface {
	Response() *braintree.Response
}

type braintreeClientImpl struct {
	gateway *braintree.Braintree
}

// NewBraintreeClient initializes the Braintree SDK gateway used for card payments.
func NewBraintreeClient(cfg *config.Braintree) PaymentGateway {
	env := braintree.Sandbox
	if cfg.Environment == "production" {
		env = braintree.Production
	}

	gateway := braintree.New(
		env,
		cfg.MerchantID,
		cfg.PublicKey,
		cfg.PrivateKey,
	)

	return &braintreeClientImpl{
		gateway: gateway,
	}
}

func (c *braintreeClientImpl) PublicKey(ctx context.Context) (string, error) {
	token, err := c.gateway.ClientToken().Generate(ctx)
	if err != nil {
		return "", fmt.Errorf("generate braintree client token: %w", err)
	}
	return token, nil
}

// Charge runs a sale against a payment method nonce and settles it immediately.
// The currency is fixed by the merchant account, so req.Currency is not sent.
func (c *braintreeClientImpl) Charge(ctx context.Context, req *ChargeRequest) (*ChargeResult, error) {
	if req.Token == "" {
		return nil, &ChargeError{Kind: ChargeInvalidRequest, Message: "missing payment method nonce"}
	}

	tx, err := c.gateway.Transaction().Create(ctx, &braintree.TransactionRequest{
		Type:               "sale",
		Amount:             braintree.NewDecimal(req.AmountCents, 2),
		PaymentMethodNonce: req.Token,
		OrderId:            req.Reference,
		Options: &braintree.TransactionOptions{
			SubmitForSettlement: true,
		},
	})
	if err != nil {
		return nil, classifyBraintreeError(err)
	}

	if tx.Status == braintree.TransactionStatusProcessorDeclined || tx.Status == braintree.TransactionStatusGatewayRejected {
		return nil, &ChargeError{Kind: ChargeDeclined, Message: declineMessage(tx)}
	}

	return &ChargeResult{ID: tx.Id}, nil
}

func declineMessage(tx *braintree.Transaction) string {
	if tx.ProcessorResponseText != "" {
		return tx.ProcessorResponseText
	}
	return "Your card was declined."
}

func classifyBraintreeError(err error) *ChargeError {
	if ce, ok := transportError(err); ok {
		return ce
	}

	var apiErr *braintree.BraintreeError
	if errors.As(err, &apiErr) {
		// validation failures carry no transaction; declines and gateway
		// rejections come back as 422 with the failed transaction attached
		if apiErr.Transaction != nil {
			return &ChargeError{Kind: ChargeDeclined, Message: declineMessage(apiErr.Transaction), Err: err}
		}
		return &ChargeError{Kind: ChargeInvalidRequest, Message: apiErr.Error(), Err: err}
	}

	var rc responseCarrier
	if errors.As(err, &rc) && rc.Response() != nil {
		return chargeErrorFromStatus(rc.Response().StatusCode, "braintree request failed", err)
	}

	return &ChargeError{Kind: ChargeGenericFailure, Message: "braintree request failed", Err: err}
}
