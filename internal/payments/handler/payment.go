package handler

import (
	"encoding/json"
	"net/http"

	"staybook/internal/payments/service"
	httputil "staybook/pkg/http"
	"staybook/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type PaymentHandler struct {
	service service.PaymentService
	log     *logger.Logger
}

func NewPaymentHandler(service service.PaymentService, log *logger.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log,
	}
}

type initiateRequest struct {
	BookingID string `json:"booking_id"`
	Email     string `json:"email"`
}

func (h *PaymentHandler) Initiate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req initiateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Initiate", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	result, err := h.service.Initiate(r.Context(), req.BookingID, req.Email)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Initiate", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, result); err != nil {
		h.log.Error("failed to write created response", "handler", "Initiate", "operation", "WriteCreated", "error", err)
	}
}

func (h *PaymentHandler) Verify(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	reference := ps.ByName("reference")

	payment, err := h.service.Verify(r.Context(), reference)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Verify", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, payment); err != nil {
		h.log.Error("failed to write success response", "handler", "Verify", "operation", "WriteSuccess", "error", err)
	}
}

func (h *PaymentHandler) GetByReference(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	reference := ps.ByName("reference")

	payment, err := h.service.GetByReference(r.Context(), reference)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByReference", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, payment); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByReference", "operation", "WriteSuccess", "error", err)
	}
}

func (h *PaymentHandler) ListForBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	bookingID := ps.ByName("id")

	payments, err := h.service.ListForBooking(r.Context(), bookingID)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListForBooking", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, payments); err != nil {
		h.log.Error("failed to write success response", "handler", "ListForBooking", "operation", "WriteSuccess", "error", err)
	}
}

func (h *PaymentHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/payments", h.Initiate)
	router.GET("/api/v1/payments/:reference", h.GetByReference)
	router.POST("/api/v1/payments/:reference/verify", h.Verify)
	router.GET("/api/v1/bookings/:id/payments", h.ListForBooking)
}
