package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/storeroomlabs/storeroom/internal/checkout"
	"github.com/storeroomlabs/storeroom/internal/domain"
)

func TestHandleCartMutation(t *testing.T) {
	t.Run("Add success", func(t *testing.T) {
		svc := new(MockCheckoutService)
		svc.On("MutateCart", mock.Anything, checkout.CartMutation{
			UserID:       "user-1",
			LocationID:   "loc-1",
			Action:       domain.CartActionAdd,
			ItemID:       "item-1",
			CheckoutType: domain.CheckoutTypeTemporary,
			Quantity:     2,
		}).Return(nil)

		body := `{"user_id":"user-1","location_id":"loc-1","action":"ADD","item_id":"item-1","checkout_type":"TEMPORARY","quantity":2}`
		req := httptest.NewRequest("POST", "/api/v1/cart", strings.NewReader(body))
		w := httptest.NewRecorder()

		HandleCartMutation(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"success":true`)
		svc.AssertExpectations(t)
	})

	t.Run("Clear success", func(t *testing.T) {
		svc := new(MockCheckoutService)
		svc.On("MutateCart", mock.Anything, checkout.CartMutation{
			UserID:     "user-1",
			LocationID: "loc-1",
			Action:     domain.CartActionClear,
		}).Return(nil)

		body := `{"user_id":"user-1","location_id":"loc-1","action":"CLEAR"}`
		req := httptest.NewRequest("POST", "/api/v1/cart", strings.NewReader(body))
		w := httptest.NewRecorder()

		HandleCartMutation(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Invalid JSON", func(t *testing.T) {
		svc := new(MockCheckoutService)

		req := httptest.NewRequest("POST", "/api/v1/cart", strings.NewReader("{not json"))
		w := httptest.NewRecorder()

		HandleCartMutation(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgInvalidRequest)
	})

	t.Run("Invalid action rejected by validation", func(t *testing.T) {
		svc := new(MockCheckoutService)

		body := `{"user_id":"user-1","location_id":"loc-1","action":"DESTROY"}`
		req := httptest.NewRequest("POST", "/api/v1/cart", strings.NewReader(body))
		w := httptest.NewRecorder()

		HandleCartMutation(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Must be ADD, REMOVE or CLEAR")
		svc.AssertNotCalled(t, "MutateCart", mock.Anything, mock.Anything)
	})

	t.Run("Invalid checkout type rejected by validation", func(t *testing.T) {
		svc := new(MockCheckoutService)

		body := `{"user_id":"user-1","location_id":"loc-1","action":"ADD","item_id":"item-1","checkout_type":"FOREVER","quantity":1}`
		req := httptest.NewRequest("POST", "/api/v1/cart", strings.NewReader(body))
		w := httptest.NewRecorder()

		HandleCartMutation(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Must be PERMANENT or TEMPORARY")
	})

	t.Run("Write conflict maps to 409", func(t *testing.T) {
		svc := new(MockCheckoutService)
		svc.On("MutateCart", mock.Anything, mock.Anything).Return(domain.ErrWriteConflict)

		body := `{"user_id":"user-1","location_id":"loc-1","action":"REMOVE","item_id":"item-1","checkout_type":"TEMPORARY","quantity":1}`
		req := httptest.NewRequest("POST", "/api/v1/cart", strings.NewReader(body))
		w := httptest.NewRecorder()

		HandleCartMutation(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgWriteConflictError)
	})

	t.Run("Missing line maps to 404", func(t *testing.T) {
		svc := new(MockCheckoutService)
		svc.On("MutateCart", mock.Anything, mock.Anything).Return(domain.ErrCartItemNotFound)

		body := `{"user_id":"user-1","location_id":"loc-1","action":"REMOVE","item_id":"item-1","checkout_type":"TEMPORARY","quantity":1}`
		req := httptest.NewRequest("POST", "/api/v1/cart", strings.NewReader(body))
		w := httptest.NewRecorder()

		HandleCartMutation(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgCartItemNotFoundError)
	})
}
