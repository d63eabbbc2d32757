package paymentgw

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/corray333/storefront/internal/service/models/payment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_CreateCharge(t *testing.T) {
	var gotBody createChargeRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/charges", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"reference":"ch_123","actionUrl":"https://pay.example/ch_123"}`))
	}))
	defer server.Close()

	client := NewClientWith(server.URL, server.Client())

	charge, err := client.CreateCharge(context.Background(), 42, 157000, "IDR", "Budi", "+62811111111")
	require.NoError(t, err)
	assert.Equal(t, "ch_123", charge.Reference)
	assert.Equal(t, "https://pay.example/ch_123", charge.ActionURL)
	assert.Equal(t, int64(42), gotBody.OrderID)
	assert.Equal(t, int64(157000), gotBody.AmountCents)
	assert.Equal(t, "IDR", gotBody.Currency)
	assert.Equal(t, "Budi", gotBody.CustomerName)
	assert.Equal(t, "+62811111111", gotBody.CustomerPhone)
}

func TestClient_CreateCharge_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClientWith(server.URL, server.Client())

	_, err := client.CreateCharge(context.Background(), 42, 157000, "IDR", "", "")
	assert.True(t, errors.Is(err, payment.ErrGatewayUnavailable))
}

func TestClient_CreateCharge_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := NewClientWith(server.URL, server.Client())

	_, err := client.CreateCharge(context.Background(), 42, 157000, "IDR", "", "")
	assert.True(t, errors.Is(err, payment.ErrGatewayUnavailable))
}

func TestClient_CreateCharge_Unreachable(t *testing.T) {
	client := NewClientWith("http://127.0.0.1:1", nil)

	_, err := client.CreateCharge(context.Background(), 42, 157000, "IDR", "", "")
	assert.True(t, errors.Is(err, payment.ErrGatewayUnavailable))
}
