package controller

import (
	"net/http"

	"github.com/davidrico/checkout/internal/application/checkout"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// TransactionController handles transaction-related HTTP requests.
type TransactionController struct {
	getStatusUC *checkout.GetTransactionStatusUseCase
}

// NewTransactionController creates a new TransactionController.
func NewTransactionController(getStatusUC *checkout.GetTransactionStatusUseCase) *TransactionController {
	return &TransactionController{getStatusUC: getStatusUC}
}

// Get handles GET /api/v1/transactions/{id}
func (h *TransactionController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid transaction id", Code: "invalid_id"})
		return
	}

	tx, err := h.getStatusUC.Execute(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, FromTransaction(tx))
}
