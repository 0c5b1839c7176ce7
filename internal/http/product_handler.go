package http

import (
	"context"
	"net/http"
	"time"

	catalog "github.com/MoolaPravalesh19/PrintDukan/internal/catalog/repository"
	"github.com/MoolaPravalesh19/PrintDukan/internal/domain"
	"github.com/go-chi/chi/v5"
)

// Catalog is the read-only product surface consumed by the handlers.
type Catalog interface {
	GetAllProducts(ctx context.Context) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	GetCategories(ctx context.Context) ([]*domain.Category, error)
	GetReviewsByProduct(ctx context.Context, productID string) ([]*domain.Review, error)
}

var _ Catalog = (catalog.RepoInterface)(nil)

type ProductHandler struct {
	catalog Catalog
	timeout time.Duration
}

func NewProductHandler(cat Catalog, timeout time.Duration) *ProductHandler {
	return &ProductHandler{
		catalog: cat,
		timeout: timeout,
	}
}

func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	products, err := h.catalog.GetAllProducts(ctx)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id := chi.URLParam(r, "id")
	product, err := h.catalog.GetProduct(ctx, id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	categories, err := h.catalog.GetCategories(ctx)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, categories)
}

func (h *ProductHandler) ListProductReviews(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id := chi.URLParam(r, "id")
	reviews, err := h.catalog.GetReviewsByProduct(ctx, id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, reviews)
}
