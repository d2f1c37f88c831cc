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

type CatalogService interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	CreateProduct(ctx context.Context, name, description string, price float64, stock int) (*domain.Product, error)
}

type ProductHandler struct {
	service CatalogService
	timeout time.Duration
}

func NewProductHandler(service CatalogService, timeout time.Duration) *ProductHandler {
	return &ProductHandler{
		service: service,
		timeout: timeout,
	}
}

type createProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Stock       *float64 `json:"stock"`
}

// List handles GET /api/products.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	products, err := h.service.ListProducts(ctx)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, products)
}

// Create handles POST /api/products.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.Name == nil || req.Price == nil || req.Stock == nil {
		respondError(w, http.StatusBadRequest, "name, price and stock are required")
		return
	}

	stock := *req.Stock
	if stock != math.Trunc(stock) || stock < 0 {
		handleServiceError(w, service.ErrInvalidStock)
		return
	}

	description := ""
	if req.Description != nil {
		description = *req.Description
	}

	product, err := h.service.CreateProduct(ctx, *req.Name, description, *req.Price, int(stock))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, product)
}
