package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/corray333/storefront/internal/service/models/actor"
	"github.com/corray333/storefront/internal/service/models/address"
	"github.com/corray333/storefront/internal/service/models/geo"
	"github.com/corray333/storefront/internal/service/models/order"
	"github.com/corray333/storefront/internal/service/models/payment"
	"github.com/corray333/storefront/internal/service/models/stock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{order.ErrNotFound, http.StatusNotFound},
		{address.ErrNotFound, http.StatusNotFound},
		{address.ErrNoDefault, http.StatusNotFound},
		{stock.ErrProductNotFound, http.StatusNotFound},
		{order.ErrNotCheckoutable, http.StatusConflict},
		{stock.ErrInsufficientStock, http.StatusConflict},
		{actor.ErrForbidden, http.StatusForbidden},
		{geo.ErrNotResolvable, http.StatusUnprocessableEntity},
		{order.ErrInvalidTransition, http.StatusBadRequest},
		{order.ErrEmptyOrder, http.StatusBadRequest},
		{payment.ErrInvalidMethod, http.StatusBadRequest},
		{geo.ErrUnavailable, http.StatusBadGateway},
		{payment.ErrGatewayUnavailable, http.StatusBadGateway},
		{errors.New("pool exhausted"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), "error %v", tt.err)
	}
}

func TestStatusFor_WrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("product %d: %w", 7, stock.ErrInsufficientStock)
	assert.Equal(t, http.StatusConflict, statusFor(wrapped))

	wrapped = fmt.Errorf("%w: status is %s", order.ErrNotCheckoutable, order.StatusShipped)
	assert.Equal(t, http.StatusConflict, statusFor(wrapped))
}

func TestWrite(t *testing.T) {
	recorder := httptest.NewRecorder()
	Write(recorder, order.ErrNotFound)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "order not found", body["error"])
}
