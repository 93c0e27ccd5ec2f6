package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"staybook/internal/listings/service"
	apperrors "staybook/pkg/errors"
	httputil "staybook/pkg/http"
	"staybook/pkg/logger"
	"staybook/pkg/model"
	"staybook/pkg/money"

	"github.com/julienschmidt/httprouter"
)

type ListingHandler struct {
	service service.ListingService
	log     *logger.Logger
}

func NewListingHandler(service service.ListingService, log *logger.Logger) *ListingHandler {
	return &ListingHandler{
		service: service,
		log:     log,
	}
}

func (h *ListingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var listing model.Listing
	if err := json.NewDecoder(r.Body).Decode(&listing); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := h.service.Create(r.Context(), &listing); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, listing); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *ListingHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	listing, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, listing); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ListingHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	filter, err := parseListingFilter(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "List", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "List", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	listings, total, err := h.service.List(r.Context(), filter, limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "List", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, listings, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "List", "operation", "WritePaginated", "error", err)
	}
}

func parseListingFilter(r *http.Request) (model.ListingFilter, error) {
	query := r.URL.Query()

	filter := model.ListingFilter{
		City:         query.Get("city"),
		Country:      query.Get("country"),
		PropertyType: query.Get("property_type"),
	}

	if maxPriceStr := query.Get("max_price"); maxPriceStr != "" {
		maxPrice, err := money.Parse(maxPriceStr)
		if err != nil {
			return model.ListingFilter{}, apperrors.InvalidInput(fmt.Sprintf("invalid max_price parameter: %s", maxPriceStr))
		}
		filter.MaxPrice = &maxPrice
	}

	if isActiveStr := query.Get("is_active"); isActiveStr != "" {
		isActive, err := strconv.ParseBool(isActiveStr)
		if err != nil {
			return model.ListingFilter{}, apperrors.InvalidInput(fmt.Sprintf("invalid is_active parameter: %s", isActiveStr))
		}
		filter.IsActive = &isActive
	}

	return filter, nil
}

func (h *ListingHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	var updates model.ListingUpdate
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

func (h *ListingHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *ListingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/listings", h.Create)
	router.GET("/api/v1/listings", h.List)
	router.GET("/api/v1/listings/:id", h.GetByID)
	router.PATCH("/api/v1/listings/:id", h.Update)
	router.DELETE("/api/v1/listings/:id", h.Delete)
}
