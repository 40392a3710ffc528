package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// SessionIDPlaceholder is the template the gateway substitutes with the real
// session id when redirecting back to the success URL. Seeing it verbatim on
// a confirmation request means the substitution never happened.
const SessionIDPlaceholder = "{CHECKOUT_SESSION_ID}"

// Session payment statuses reported by the gateway.
const (
	SessionStatusPaid   = "paid"
	SessionStatusUnpaid = "unpaid"
)

var paymentHTTPClient = &http.Client{Timeout: 15 * time.Second}

// PaymentService talks to the external payment gateway's checkout-session API.
type PaymentService struct {
	baseURL   string
	secretKey string
}

// NewPaymentService constructs a PaymentService.
func NewPaymentService(baseURL, secretKey string) *PaymentService {
	return &PaymentService{
		baseURL:   strings.TrimRight(baseURL, "/"),
		secretKey: secretKey,
	}
}

// SessionLineItem is one purchasable line within a checkout session. The
// unit amount is in the currency's minor units.
type SessionLineItem struct {
	Name       string `json:"name"`
	UnitAmount int64  `json:"unit_amount"`
	Quantity   int    `json:"quantity"`
}

// CreateSessionParams configures a new checkout session. OrderID travels as
// correlation metadata so the confirmation step can find the order again.
type CreateSessionParams struct {
	LineItems     []SessionLineItem
	Currency      string
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
	OrderID       string
}

// CheckoutSession is the gateway's view of a session.
type CheckoutSession struct {
	ID            string
	URL           string
	PaymentStatus string
	OrderID       string
}

type sessionRequest struct {
	LineItems     []SessionLineItem `json:"line_items"`
	Currency      string            `json:"currency"`
	CustomerEmail string            `json:"customer_email"`
	Mode          string            `json:"mode"`
	SuccessURL    string            `json:"success_url"`
	CancelURL     string            `json:"cancel_url"`
	Metadata      map[string]string `json:"metadata"`
}

type sessionResponse struct {
	ID            string            `json:"id"`
	URL           string            `json:"url"`
	PaymentStatus string            `json:"payment_status"`
	Metadata      map[string]string `json:"metadata"`
}

// CreateSession opens a checkout session and returns the off-site redirect URL.
func (s *PaymentService) CreateSession(ctx context.Context, params CreateSessionParams) (*CheckoutSession, error) {
	if s.secretKey == "" {
		return nil, errors.New("payment gateway secret key is not configured")
	}

	payload := sessionRequest{
		LineItems:     params.LineItems,
		Currency:      params.Currency,
		CustomerEmail: params.CustomerEmail,
		Mode:          "payment",
		SuccessURL:    params.SuccessURL,
		CancelURL:     params.CancelURL,
		Metadata:      map[string]string{"order_id": params.OrderID},
	}

	var resp sessionResponse
	if err := s.do(ctx, http.MethodPost, "/v1/checkout/sessions", payload, &resp); err != nil {
		return nil, fmt.Errorf("payment session create: %w", err)
	}

	return sessionFromResponse(resp), nil
}

// RetrieveSession loads a session's current payment status.
func (s *PaymentService) RetrieveSession(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	if s.secretKey == "" {
		return nil, errors.New("payment gateway secret key is not configured")
	}

	var resp sessionResponse
	if err := s.do(ctx, http.MethodGet, "/v1/checkout/sessions/"+sessionID, nil, &resp); err != nil {
		return nil, fmt.Errorf("payment session retrieve: %w", err)
	}

	return sessionFromResponse(resp), nil
}

func sessionFromResponse(resp sessionResponse) *CheckoutSession {
	return &CheckoutSession{
		ID:            resp.ID,
		URL:           resp.URL,
		PaymentStatus: resp.PaymentStatus,
		OrderID:       resp.Metadata["order_id"],
	}
}

func (s *PaymentService) do(ctx context.Context, method, path string, body, out any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.secretKey)

	resp, err := paymentHTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("status %d, body: %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}

// MinorUnits converts a decimal amount to the gateway's minor-unit integer
// representation: amount x 100, rounded half away from zero. The same rule
// applies to every conversion so totals never drift by a cent against the
// gateway ledger.
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
