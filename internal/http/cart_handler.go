package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/MoolaPravalesh19/PrintDukan/internal/domain"
	"github.com/go-chi/chi/v5"
)

// CartService is the slice of the cart layer the HTTP surface consumes.
type CartService interface {
	GetCart(ctx context.Context, cartID string) (*domain.Cart, error)
	AddItem(ctx context.Context, cartID, productID string, color *string, quantity int) (*domain.CartItem, error)
	UpdateQuantity(ctx context.Context, cartID, itemID string, quantity int) (*domain.CartItem, error)
	RemoveItem(ctx context.Context, cartID, itemID string) error
	ClearCart(ctx context.Context, cartID string) error
}

type CartHandler struct {
	cart    CartService
	timeout time.Duration
}

func NewCartHandler(cart CartService, timeout time.Duration) *CartHandler {
	return &CartHandler{
		cart:    cart,
		timeout: timeout,
	}
}

type AddItemRequestDTO struct {
	ProductID string  `json:"product_id"`
	Color     *string `json:"color"`
	Quantity  int     `json:"quantity"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	cartID := getCartIDFromContext(r.Context())
	if cartID == "" {
		respondError(w, http.StatusBadRequest, "missing_cart", "no cart session")
		return
	}

	cart, err := h.cart.GetCart(ctx, cartID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, cart)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	cartID := getCartIDFromContext(r.Context())
	if cartID == "" {
		respondError(w, http.StatusBadRequest, "missing_cart", "no cart session")
		return
	}

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 1 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}

	item, err := h.cart.AddItem(ctx, cartID, req.ProductID, req.Color, req.Quantity)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, item)
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	cartID := getCartIDFromContext(r.Context())
	if cartID == "" {
		respondError(w, http.StatusBadRequest, "missing_cart", "no cart session")
		return
	}

	itemID := chi.URLParam(r, "item_id")
	if itemID == "" {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item_id is required")
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.Quantity < 1 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}

	item, err := h.cart.UpdateQuantity(ctx, cartID, itemID, req.Quantity)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, item)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	cartID := getCartIDFromContext(r.Context())
	if cartID == "" {
		respondError(w, http.StatusBadRequest, "missing_cart", "no cart session")
		return
	}

	itemID := chi.URLParam(r, "item_id")
	if itemID == "" {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item_id is required")
		return
	}

	if err := h.cart.RemoveItem(ctx, cartID, itemID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	cartID := getCartIDFromContext(r.Context())
	if cartID == "" {
		respondError(w, http.StatusBadRequest, "missing_cart", "no cart session")
		return
	}

	if err := h.cart.ClearCart(ctx, cartID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
