package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"staybook/internal/bookings/service"
	apperrors "staybook/pkg/errors"
	httputil "staybook/pkg/http"
	"staybook/pkg/logger"
	"staybook/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type BookingHandler struct {
	service service.BookingService
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log,
	}
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	booking, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, booking); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	booking, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	filter, err := parseBookingFilter(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "List", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	h.list(w, r, filter)
}

// ListForListing serves the nested route: all bookings of one listing.
func (h *BookingHandler) ListForListing(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	filter, err := parseBookingFilter(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListForListing", "operation", "WriteError", "error", writeErr)
		}
		return
	}
	filter.ListingID = ps.ByName("id")

	h.list(w, r, filter)
}

func (h *BookingHandler) list(w http.ResponseWriter, r *http.Request, filter model.BookingFilter) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "List", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	bookings, total, err := h.service.List(r.Context(), filter, limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "List", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, bookings, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "List", "operation", "WritePaginated", "error", err)
	}
}

func parseBookingFilter(r *http.Request) (model.BookingFilter, error) {
	query := r.URL.Query()

	filter := model.BookingFilter{
		GuestID:   query.Get("guest_id"),
		ListingID: query.Get("listing_id"),
	}

	if statusStr := query.Get("status"); statusStr != "" {
		status, err := model.ParseBookingStatus(statusStr)
		if err != nil {
			return model.BookingFilter{}, apperrors.InvalidInput(fmt.Sprintf("invalid status parameter: %s", statusStr))
		}
		filter.Status = status
	}

	if afterStr := query.Get("check_in_after"); afterStr != "" {
		parsed, err := time.Parse(time.RFC3339, afterStr)
		if err != nil {
			return model.BookingFilter{}, apperrors.InvalidInput("invalid check_in_after format, must be RFC3339")
		}
		filter.CheckInAfter = &parsed
	}

	if beforeStr := query.Get("check_out_before"); beforeStr != "" {
		parsed, err := time.Parse(time.RFC3339, beforeStr)
		if err != nil {
			return model.BookingFilter{}, apperrors.InvalidInput("invalid check_out_before format, must be RFC3339")
		}
		filter.CheckOutBefore = &parsed
	}

	return filter, nil
}

func (h *BookingHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	var updates model.BookingUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Update", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := h.service.Update(r.Context(), id, &updates); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Update", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/bookings", h.Create)
	router.GET("/api/v1/bookings", h.List)
	router.GET("/api/v1/bookings/:id", h.GetByID)
	router.PATCH("/api/v1/bookings/:id", h.Update)
	router.DELETE("/api/v1/bookings/:id", h.Delete)
	router.GET("/api/v1/listings/:id/bookings", h.ListForListing)
}
