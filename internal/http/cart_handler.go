package http

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"time"

	"github.com/Sarahvrq/Practica-3/internal/domain"
	"github.com/Sarahvrq/Practica-3/internal/service"
)

// CartService is the slice of the cart reconciler the handler needs.
type CartService interface {
	AddItem(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error)
	GetCart(ctx context.Context, userID string) (*domain.Cart, error)
}

type CartHandler struct {
	service CartService
	timeout time.Duration
}

func NewCartHandler(service CartService, timeout time.Duration) *CartHandler {
	return &CartHandler{
		service: service,
		timeout: timeout,
	}
}

// Pointers distinguish absent fields from zero values; quantity is a
// float so a fractional value fails validation instead of silently
// truncating.
type addItemRequest struct {
	ProductID *string  `json:"productId"`
	Quantity  *float64 `json:"quantity"`
}

// AddItem handles PUT /api/cart/add.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := UserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.ProductID == nil || req.Quantity == nil {
		handleServiceError(w, service.ErrMissingField)
		return
	}

	quantity := *req.Quantity
	if quantity != math.Trunc(quantity) || quantity <= 0 {
		handleServiceError(w, service.ErrInvalidQuantity)
		return
	}

	cart, err := h.service.AddItem(ctx, userID, *req.ProductID, int(quantity))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, cart)
}

// GetCart handles GET /api/cart.
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := UserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	cart, err := h.service.GetCart(ctx, userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, cart)
}
