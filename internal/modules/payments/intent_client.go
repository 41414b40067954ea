package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const createIntentPath = "/payment/create-payment-intent"

// UserInfo is the donor profile as the intent backend expects it.
type UserInfo struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
}

type IntentRequest struct {
	Amount             int64     `json:"amount"`
	Currency           string    `json:"currency"`
	PaymentMethodTypes []string  `json:"payment_method_types"`
	Recurring          bool      `json:"recurring"`
	UserInfo           *UserInfo `json:"user_info,omitempty"`
}

type IntentResponse struct {
	ClientSecret string `json:"client_secret"`
}

type IntentCreator interface {
	CreateIntent(ctx context.Context, req IntentRequest) (string, error)
}

// IntentClient talks to the backend that owns payment intent creation.
type IntentClient struct {
	http *resty.Client
}

func NewIntentClient(baseURL string, timeout time.Duration) *IntentClient {
	c := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	return &IntentClient{http: c}
}

// CreateIntent returns the client secret of a new payment intent.
func (c *IntentClient) CreateIntent(ctx context.Context, req IntentRequest) (string, error) {
	if req.Currency == "" {
		req.Currency = Currency
	}
	if len(req.PaymentMethodTypes) == 0 {
		req.PaymentMethodTypes = []string{"card"}
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		Post(createIntentPath)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrIntentTransport, err)
	}
	if resp.IsError() {
		return "", &HTTPStatusError{StatusCode: resp.StatusCode(), Body: truncate(resp.String(), 256)}
	}

	var out IntentResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedIntentResponse, err)
	}
	if strings.TrimSpace(out.ClientSecret) == "" {
		return "", ErrMalformedIntentResponse
	}
	return out.ClientSecret, nil
}
