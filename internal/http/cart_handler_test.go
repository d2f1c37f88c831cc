package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Sarahvrq/Practica-3/internal/domain"
	"github.com/Sarahvrq/Practica-3/internal/service"
)

type cartServiceMock struct {
	cart     *domain.Cart
	err      error
	addCalls int
}

func (m *cartServiceMock) AddItem(_ context.Context, _, _ string, _ int) (*domain.Cart, error) {
	m.addCalls++
	if m.err != nil {
		return nil, m.err
	}
	return m.cart, nil
}

func (m *cartServiceMock) GetCart(context.Context, string) (*domain.Cart, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.cart, nil
}

func authedRequest(method, target string, body []byte) *http.Request {
	request := httptest.NewRequest(method, target, bytes.NewReader(body))
	ctx := context.WithValue(request.Context(), userIDKey, primitive.NewObjectID().Hex())
	return request.WithContext(ctx)
}

func testCart() *domain.Cart {
	return &domain.Cart{
		ID:     primitive.NewObjectID(),
		UserID: primitive.NewObjectID(),
		Items: []domain.CartItem{
			{ProductID: primitive.NewObjectID(), Quantity: 3},
		},
	}
}

func TestAddItem_Success(t *testing.T) {
	mock := &cartServiceMock{cart: testCart()}
	handler := NewCartHandler(mock, 5*time.Second)

	body, _ := json.Marshal(map[string]interface{}{
		"productId": mock.cart.Items[0].ProductID.Hex(),
		"quantity":  3,
	})
	recorder := httptest.NewRecorder()
	handler.AddItem(recorder, authedRequest("PUT", "/add", body))

	require.Equal(t, http.StatusOK, recorder.Code)

	var response domain.Cart
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	require.Len(t, response.Items, 1)
	assert.Equal(t, 3, response.Items[0].Quantity)
}

func TestAddItem_MissingFields(t *testing.T) {
	handler := NewCartHandler(&cartServiceMock{cart: testCart()}, 5*time.Second)

	bodies := []string{
		`{}`,
		`{"productId": "abc"}`,
		`{"quantity": 2}`,
	}
	for _, body := range bodies {
		recorder := httptest.NewRecorder()
		handler.AddItem(recorder, authedRequest("PUT", "/add", []byte(body)))
		assert.Equal(t, http.StatusBadRequest, recorder.Code, "body %s", body)
	}
}

func TestAddItem_InvalidQuantity(t *testing.T) {
	mock := &cartServiceMock{cart: testCart()}
	handler := NewCartHandler(mock, 5*time.Second)

	bodies := []string{
		`{"productId": "abc", "quantity": 0}`,
		`{"productId": "abc", "quantity": -1}`,
		`{"productId": "abc", "quantity": 1.5}`,
	}
	for _, body := range bodies {
		recorder := httptest.NewRecorder()
		handler.AddItem(recorder, authedRequest("PUT", "/add", []byte(body)))
		assert.Equal(t, http.StatusBadRequest, recorder.Code, "body %s", body)
	}
	assert.Equal(t, 0, mock.addCalls, "invalid quantity must not reach the service")
}

func TestAddItem_Unauthenticated(t *testing.T) {
	handler := NewCartHandler(&cartServiceMock{cart: testCart()}, 5*time.Second)

	body := []byte(`{"productId": "abc", "quantity": 1}`)
	recorder := httptest.NewRecorder()
	handler.AddItem(recorder, httptest.NewRequest("PUT", "/add", bytes.NewReader(body)))

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestAddItem_ProductNotFound(t *testing.T) {
	handler := NewCartHandler(&cartServiceMock{err: service.ErrProductNotFound}, 5*time.Second)

	body := []byte(`{"productId": "abc", "quantity": 1}`)
	recorder := httptest.NewRecorder()
	handler.AddItem(recorder, authedRequest("PUT", "/add", body))

	require.Equal(t, http.StatusNotFound, recorder.Code)

	var response messageResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	assert.Equal(t, "product not found", response.Message)
}

func TestAddItem_InsufficientStock(t *testing.T) {
	handler := NewCartHandler(&cartServiceMock{err: service.ErrInsufficientStock}, 5*time.Second)

	body := []byte(`{"productId": "abc", "quantity": 99}`)
	recorder := httptest.NewRecorder()
	handler.AddItem(recorder, authedRequest("PUT", "/add", body))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestGetCart_Success(t *testing.T) {
	mock := &cartServiceMock{cart: testCart()}
	handler := NewCartHandler(mock, 5*time.Second)

	recorder := httptest.NewRecorder()
	handler.GetCart(recorder, authedRequest("GET", "/", nil))

	require.Equal(t, http.StatusOK, recorder.Code)

	var response domain.Cart
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	assert.Equal(t, mock.cart.UserID, response.UserID)
}

func TestGetCart_EmptyCartSerializesItemsArray(t *testing.T) {
	mock := &cartServiceMock{cart: &domain.Cart{
		UserID: primitive.NewObjectID(),
		Items:  []domain.CartItem{},
	}}
	handler := NewCartHandler(mock, 5*time.Second)

	recorder := httptest.NewRecorder()
	handler.GetCart(recorder, authedRequest("GET", "/", nil))

	require.Equal(t, http.StatusOK, recorder.Code)

	var response map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	assert.JSONEq(t, `[]`, string(response["items"]), "empty cart must serialize items as [] not null")
	assert.NotContains(t, response, "_id", "synthetic cart has no document id")
}

func TestGetCart_Unauthenticated(t *testing.T) {
	handler := NewCartHandler(&cartServiceMock{cart: testCart()}, 5*time.Second)

	recorder := httptest.NewRecorder()
	handler.GetCart(recorder, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
