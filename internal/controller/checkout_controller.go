package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/davidrico/checkout/internal/application/checkout"
	domainErrors "github.com/davidrico/checkout/internal/domain/errors"
	"github.com/davidrico/checkout/internal/domain/transaction"
	"github.com/davidrico/checkout/internal/infrastructure/observability"
	"github.com/google/uuid"
)

// CheckoutController handles the checkout HTTP endpoints.
type CheckoutController struct {
	startUC     *checkout.StartCheckoutUseCase
	confirmUC   *checkout.ConfirmCheckoutUseCase
	metrics     *observability.Metrics
	baseFee     int64
	deliveryFee int64
}

// NewCheckoutController creates a new CheckoutController. The fees are the
// deployment's flat checkout fees applied to every transaction.
func NewCheckoutController(
	startUC *checkout.StartCheckoutUseCase,
	confirmUC *checkout.ConfirmCheckoutUseCase,
	metrics *observability.Metrics,
	baseFee, deliveryFee int64,
) *CheckoutController {
	return &CheckoutController{
		startUC:     startUC,
		confirmUC:   confirmUC,
		metrics:     metrics,
		baseFee:     baseFee,
		deliveryFee: deliveryFee,
	}
}

// Start handles POST /api/v1/checkout/start
func (h *CheckoutController) Start(w http.ResponseWriter, r *http.Request) {
	var req StartCheckoutRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	start := time.Now()
	resp, err := h.startUC.Execute(r.Context(), checkout.StartCheckoutRequest{
		ProductID: req.ProductID,
		DeliveryInfo: transaction.CustomerInfo{
			FullName: req.DeliveryInfo.FullName,
			Phone:    req.DeliveryInfo.Phone,
			Address:  req.DeliveryInfo.Address,
			City:     req.DeliveryInfo.City,
		},
		BaseFee:     h.baseFee,
		DeliveryFee: h.deliveryFee,
	})
	h.metrics.CheckoutDuration.WithLabelValues("start").Observe(time.Since(start).Seconds())
	if err != nil {
		h.metrics.CheckoutsTotal.WithLabelValues("start", "error").Inc()
		writeError(w, err)
		return
	}

	h.metrics.CheckoutsTotal.WithLabelValues("start", "pending").Inc()
	writeJSON(w, http.StatusCreated, StartCheckoutResponse{
		TransactionID: resp.TransactionID.String(),
	})
}

// Confirm handles POST /api/v1/checkout/confirm
func (h *CheckoutController) Confirm(w http.ResponseWriter, r *http.Request) {
	var req ConfirmCheckoutRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	txID, err := uuid.Parse(req.TransactionID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid transaction_id", Code: "invalid_id"})
		return
	}

	start := time.Now()
	resp, err := h.confirmUC.Execute(r.Context(), checkout.ConfirmCheckoutRequest{
		TransactionID: txID,
		Card: checkout.CardData{
			Number:   req.Card.Number,
			ExpMonth: req.Card.ExpMonth,
			ExpYear:  req.Card.ExpYear,
			Cvc:      req.Card.Cvc,
			Holder:   req.Card.Holder,
		},
	})
	h.metrics.CheckoutDuration.WithLabelValues("confirm").Observe(time.Since(start).Seconds())
	if err != nil {
		h.metrics.CheckoutsTotal.WithLabelValues("confirm", "error").Inc()
		if errors.Is(err, domainErrors.ErrInsufficientStock) {
			h.metrics.StockDecrementsTotal.WithLabelValues("insufficient").Inc()
		}
		writeError(w, err)
		return
	}

	tx := resp.Transaction
	message := "Payment pending"
	switch tx.Status {
	case transaction.StatusSuccess:
		message = "Payment successful"
		if !resp.AlreadyCompleted {
			h.metrics.CheckoutsTotal.WithLabelValues("confirm", "success").Inc()
			h.metrics.StockDecrementsTotal.WithLabelValues("ok").Inc()
			h.metrics.DeliveriesCreatedTotal.Inc()
		}
	case transaction.StatusFailed:
		message = "Payment failed"
		if !resp.AlreadyCompleted {
			h.metrics.CheckoutsTotal.WithLabelValues("confirm", "failed").Inc()
		}
	}

	writeJSON(w, http.StatusOK, ConfirmCheckoutResponse{
		Message:     message,
		Transaction: FromTransaction(tx),
	})
}
