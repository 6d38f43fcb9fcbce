package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"storefront/internal/config"
	"storefront/internal/model"

	"github.com/shopspring/decimal"
)

// declineIssues are the 422 issue codes where the buyer's funding was refused.
var declineIssues = map[string]bool{
	"INSTRUMENT_DECLINED":   true,
	"PAYER_ACTION_REQUIRED": true,
	"TRANSACTION_REFUSED":   true,
	"PAYER_CANNOT_PAY":      true,
}

type paypalClientImpl struct {
	httpClient         *http.Client
	baseApiURL         string
	paypalClientID     string
	paypalClientSecret string
}

// NewPaypalClient returns a gateway that captures buyer-approved PayPal orders.
func NewPaypalClient(paypalCfg *config.Paypal) PaymentGateway {
	return &paypalClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseApiURL:         strings.TrimRight(paypalCfg.BaseApiURL, "/"),
		paypalClientID:     paypalCfg.ClientID,
		paypalClientSecret: paypalCfg.ClientSecret,
	}
}

func (c *paypalClientImpl) PublicKey(ctx context.Context) (string, error) {
	return c.paypalClientID, nil
}

// Charge checks that the approved order matches the cart total and captures it.
func (c *paypalClientImpl) Charge(ctx context.Context, req *ChargeRequest) (*ChargeResult, error) {
	if req.Token == "" {
		return nil, &ChargeError{Kind: ChargeInvalidRequest, Message: "missing paypal order id"}
	}

	accessToken, err := c.getAccessToken(ctx)
	if err != nil {
		return nil, err
	}

	order, err := c.getOrder(ctx, accessToken, req.Token)
	if err != nil {
		return nil, err
	}
	if err := checkOrderAmount(order, req); err != nil {
		return nil, err
	}

	captured, err := c.captureOrder(ctx, accessToken, req.Token)
	if err != nil {
		return nil, err
	}

	capture := firstCapture(captured)
	if capture == nil {
		return nil, &ChargeError{Kind: ChargeGenericFailure, Message: "paypal returned no capture"}
	}
	if capture.Status == "DECLINED" || capture.Status == "FAILED" {
		return nil, &ChargeError{Kind: ChargeDeclined, Message: "PayPal declined the payment."}
	}

	return &ChargeResult{ID: capture.ID}, nil
}

func (c *paypalClientImpl) getAccessToken(ctx context.Context) (string, error) {
	auth := base64.StdEncoding.EncodeToString(
		[]byte(c.paypalClientID + ":" + c.paypalClientSecret),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseApiURL+"/v1/oauth2/token",
		bytes.NewBufferString("grant_type=client_credentials"))
	if err != nil {
		return "", &ChargeError{Kind: ChargeGenericFailure, Message: "build token request", Err: err}
	}
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var res struct {
		AccessToken string `json:"access_token"`
	}
	if err := c.do(req, &res); err != nil {
		return "", err
	}
	if res.AccessToken == "" {
		return "", &ChargeError{Kind: ChargeAuthFailure, Message: "paypal returned an empty access token"}
	}

	return res.AccessToken, nil
}

func (c *paypalClientImpl) getOrder(ctx context.Context, accessToken, orderID string) (*model.PaypalOrder, error) {
	url := fmt.Sprintf("%s/v2/checkout/orders/%s", c.baseApiURL, orderID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &ChargeError{Kind: ChargeGenericFailure, Message: "build order request", Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	var order model.PaypalOrder
	if err := c.do(req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *paypalClientImpl) captureOrder(ctx context.Context, accessToken, orderID string) (*model.PaypalOrder, error) {
	url := fmt.Sprintf(
		"%s/v2/checkout/orders/%s/capture",
		c.baseApiURL,
		orderID,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return nil, &ChargeError{Kind: ChargeGenericFailure, Message: "build capture request", Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	var order model.PaypalOrder
	if err := c.do(req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// do sends req and decodes a 2xx JSON body into out. Failures come back as
// *ChargeError.
func (c *paypalClientImpl) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ce, ok := transportError(err); ok {
			return ce
		}
		return &ChargeError{Kind: ChargeNetworkError, Message: "paypal request failed", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &ChargeError{Kind: ChargeNetworkError, Message: "read paypal response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return paypalStatusError(resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &ChargeError{Kind: ChargeGenericFailure, Message: "decode paypal response", Err: err}
	}
	return nil
}

func paypalStatusError(status int, body []byte) *ChargeError {
	var apiErr model.PaypalError
	_ = json.Unmarshal(body, &apiErr)

	message := apiErr.Message
	if message == "" {
		message = fmt.Sprintf("paypal error %d", status)
	}
	cause := fmt.Errorf("paypal error %d: %s", status, string(body))

	for _, d := range apiErr.Details {
		if declineIssues[d.Issue] {
			msg := d.Description
			if msg == "" {
				msg = "PayPal declined the payment."
			}
			return &ChargeError{Kind: ChargeDeclined, Message: msg, Err: cause}
		}
	}

	return chargeErrorFromStatus(status, message, cause)
}

func checkOrderAmount(order *model.PaypalOrder, req *ChargeRequest) error {
	if len(order.PurchaseUnits) == 0 {
		return &ChargeError{Kind: ChargeInvalidRequest, Message: "paypal order has no purchase units"}
	}

	amount := order.PurchaseUnits[0].Amount
	value, err := decimal.NewFromString(amount.Value)
	if err != nil {
		return &ChargeError{Kind: ChargeInvalidRequest, Message: "paypal order amount is not a number", Err: err}
	}

	if model.ToCents(value) != req.AmountCents || !strings.EqualFold(amount.Currency, req.Currency) {
		return &ChargeError{
			Kind: ChargeInvalidRequest,
			Message: fmt.Sprintf("paypal order amount %s %s does not match order total %s %s",
				amount.Value, amount.Currency, model.FromCents(req.AmountCents).StringFixed(2), req.Currency),
		}
	}
	return nil
}

func firstCapture(order *model.PaypalOrder) *model.Capture {
	for _, unit := range order.PurchaseUnits {
		if len(unit.Payments.Captures) > 0 {
			return &unit.Payments.Captures[0]
		}
	}
	return nil
}
