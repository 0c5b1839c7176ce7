package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	cartservice "github.com/MoolaPravalesh19/PrintDukan/internal/cart/service"
	catalog "github.com/MoolaPravalesh19/PrintDukan/internal/catalog/repository"
	ordersrepo "github.com/MoolaPravalesh19/PrintDukan/internal/orders/repository"
	ordersservice "github.com/MoolaPravalesh19/PrintDukan/internal/orders/service"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleServiceError maps the domain's sentinel errors to HTTP statuses.
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, cartservice.ErrItemNotFound):
		respondError(w, http.StatusNotFound, "item_not_found", "no such item in cart")
	case errors.Is(err, catalog.ErrProductNotFound):
		respondError(w, http.StatusNotFound, "product_not_found", "no such product")
	case errors.Is(err, ordersrepo.ErrOrderNotFound):
		respondError(w, http.StatusNotFound, "order_not_found", "no such order")
	case errors.Is(err, cartservice.ErrInvalidQuantity):
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
	case errors.Is(err, ordersservice.ErrEmptyCart):
		respondError(w, http.StatusBadRequest, "empty_cart", "cart is empty")
	case errors.Is(err, ordersservice.ErrInvalidCustomer):
		respondError(w, http.StatusBadRequest, "invalid_customer", err.Error())
	default:
		log.Printf("internal error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
