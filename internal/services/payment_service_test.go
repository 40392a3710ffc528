package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSession(t *testing.T) {
	var gotAuth string
	var gotBody sessionRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/checkout/sessions", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(sessionResponse{
			ID:            "cs_live_42",
			URL:           "https://gateway.example.com/pay/cs_live_42",
			PaymentStatus: SessionStatusUnpaid,
			Metadata:      gotBody.Metadata,
		})
	}))
	defer server.Close()

	svc := NewPaymentService(server.URL, "sk_test_key")
	session, err := svc.CreateSession(context.Background(), CreateSessionParams{
		LineItems:     []SessionLineItem{{Name: "french press", UnitAmount: 10000, Quantity: 2}},
		Currency:      "usd",
		CustomerEmail: "ada@example.com",
		SuccessURL:    "http://localhost:8080/api/checkout/success?order_id=abc&session_id=" + SessionIDPlaceholder,
		CancelURL:     "http://localhost:8080/api/checkout/cancel",
		OrderID:       "abc",
	})

	require.NoError(t, err)
	assert.Equal(t, "Bearer sk_test_key", gotAuth)
	assert.Equal(t, "payment", gotBody.Mode)
	assert.Equal(t, "abc", gotBody.Metadata["order_id"])
	assert.Equal(t, "cs_live_42", session.ID)
	assert.Equal(t, "https://gateway.example.com/pay/cs_live_42", session.URL)
	assert.Equal(t, "abc", session.OrderID)
}

func TestCreateSessionGatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"card_declined"}`, http.StatusPaymentRequired)
	}))
	defer server.Close()

	svc := NewPaymentService(server.URL, "sk_test_key")
	_, err := svc.CreateSession(context.Background(), CreateSessionParams{OrderID: "abc"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "payment session create")
	assert.Contains(t, err.Error(), "status 402")
}

func TestCreateSessionWithoutSecretKey(t *testing.T) {
	svc := NewPaymentService("https://gateway.example.com", "")

	_, err := svc.CreateSession(context.Background(), CreateSessionParams{})

	assert.Error(t, err)
}

func TestRetrieveSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/v1/checkout/sessions/cs_live_42", r.URL.Path)

		json.NewEncoder(w).Encode(sessionResponse{
			ID:            "cs_live_42",
			PaymentStatus: SessionStatusPaid,
			Metadata:      map[string]string{"order_id": "abc"},
		})
	}))
	defer server.Close()

	svc := NewPaymentService(server.URL, "sk_test_key")
	session, err := svc.RetrieveSession(context.Background(), "cs_live_42")

	require.NoError(t, err)
	assert.Equal(t, SessionStatusPaid, session.PaymentStatus)
	assert.Equal(t, "abc", session.OrderID)
}

func TestMinorUnits(t *testing.T) {
	cases := []struct {
		amount string
		want   int64
	}{
		{"100.00", 10000},
		{"0.00", 0},
		{"12.50", 1250},
		{"0.01", 1},
		{"10.555", 1056},
		{"10.554", 1055},
		{"99.999", 10000},
	}

	for _, tc := range cases {
		got := MinorUnits(decimal.RequireFromString(tc.amount))
		assert.Equal(t, tc.want, got, "amount %s", tc.amount)
	}
}
