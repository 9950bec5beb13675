package controller

import (
	"net/http"

	"github.com/davidrico/checkout/internal/application/checkout"
	"github.com/go-chi/chi/v5"
)

// ProductController handles product-related HTTP requests.
type ProductController struct {
	getProductUC *checkout.GetProductUseCase
}

// NewProductController creates a new ProductController.
func NewProductController(getProductUC *checkout.GetProductUseCase) *ProductController {
	return &ProductController{getProductUC: getProductUC}
}

// Get handles GET /api/v1/products/{id}
func (h *ProductController) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "missing product id", Code: "invalid_id"})
		return
	}

	p, err := h.getProductUC.Execute(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, FromProductWithStock(p))
}
