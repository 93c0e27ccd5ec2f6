package handler

import (
	"encoding/json"
	"net/http"

	"staybook/internal/reviews/service"
	httputil "staybook/pkg/http"
	"staybook/pkg/logger"
	"staybook/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type ReviewHandler struct {
	service service.ReviewService
	log     *logger.Logger
}

func NewReviewHandler(service service.ReviewService, log *logger.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		log:     log,
	}
}

func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var review model.Review
	if err := json.NewDecoder(r.Body).Decode(&review); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}
	review.ListingID = ps.ByName("id")

	if err := h.service.Create(r.Context(), &review); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, review); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *ReviewHandler) ListForListing(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	listingID := ps.ByName("id")

	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListForListing", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	reviews, total, err := h.service.ListForListing(r.Context(), listingID, limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListForListing", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, reviews, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "ListForListing", "operation", "WritePaginated", "error", err)
	}
}

func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *ReviewHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/listings/:id/reviews", h.Create)
	router.GET("/api/v1/listings/:id/reviews", h.ListForListing)
	router.DELETE("/api/v1/reviews/:id", h.Delete)
}
