package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "staybook/pkg/errors"
	"staybook/pkg/logger"
	"staybook/pkg/model"
	"staybook/pkg/money"

	"github.com/julienschmidt/httprouter"
)

type mockListingService struct {
	createFunc  func(ctx context.Context, l *model.Listing) error
	getByIDFunc func(ctx context.Context, id string) (*model.Listing, error)
	listFunc    func(ctx context.Context, filter model.ListingFilter, limit int, offset int64) ([]*model.Listing, int64, error)
	deleteFunc  func(ctx context.Context, id string) error
}

func (m *mockListingService) Create(ctx context.Context, l *model.Listing) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, l)
	}
	return nil
}

func (m *mockListingService) GetByID(ctx context.Context, id string) (*model.Listing, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockListingService) List(ctx context.Context, filter model.ListingFilter, limit int, offset int64) ([]*model.Listing, int64, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filter, limit, offset)
	}
	return []*model.Listing{}, 0, nil
}

func (m *mockListingService) Update(ctx context.Context, id string, updates *model.ListingUpdate) error {
	return nil
}

func (m *mockListingService) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func testHandler(svc *mockListingService) *ListingHandler {
	log := logger.New(logger.Config{
		Level:   logger.INFO,
		Format:  logger.JSON,
		Service: "test",
	})
	return &ListingHandler{service: svc, log: log}
}

func TestListFilterParsing(t *testing.T) {
	var received model.ListingFilter
	svc := &mockListingService{
		listFunc: func(ctx context.Context, filter model.ListingFilter, limit int, offset int64) ([]*model.Listing, int64, error) {
			received = filter
			return []*model.Listing{}, 0, nil
		},
	}
	h := testHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/listings?city=Paris&property_type=apartment&max_price=100.00&is_active=true", nil)
	w := httptest.NewRecorder()

	h.List(w, req, httprouter.Params{})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if received.City != "Paris" {
		t.Errorf("city = %q, want Paris", received.City)
	}
	if received.PropertyType != "apartment" {
		t.Errorf("property_type = %q, want apartment", received.PropertyType)
	}
	if received.MaxPrice == nil || *received.MaxPrice != money.MustParse("100.00") {
		t.Errorf("max_price = %v, want 100.00", received.MaxPrice)
	}
	if received.IsActive == nil || !*received.IsActive {
		t.Errorf("is_active = %v, want true", received.IsActive)
	}
}

func TestListRejectsBadMaxPrice(t *testing.T) {
	h := testHandler(&mockListingService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/listings?max_price=cheap", nil)
	w := httptest.NewRecorder()

	h.List(w, req, httprouter.Params{})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	svc := &mockListingService{
		getByIDFunc: func(ctx context.Context, id string) (*model.Listing, error) {
			return nil, apperrors.NotFoundWithID("Listing", id)
		},
	}
	h := testHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/listings/66f000000000000000000001", nil)
	w := httptest.NewRecorder()

	h.GetByID(w, req, httprouter.Params{{Key: "id", Value: "66f000000000000000000001"}})

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}

	var resp struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Code != apperrors.CodeNotFound {
		t.Errorf("code = %q, want %q", resp.Code, apperrors.CodeNotFound)
	}
}

func TestCreateRejectsMalformedBody(t *testing.T) {
	h := testHandler(&mockListingService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/listings", strings.NewReader("{not json"))
	w := httptest.NewRecorder()

	h.Create(w, req, httprouter.Params{})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestCreateReturnsCreated(t *testing.T) {
	svc := &mockListingService{
		createFunc: func(ctx context.Context, l *model.Listing) error {
			l.ID = "66f000000000000000000001"
			return nil
		},
	}
	h := testHandler(svc)

	body := `{"title":"Cozy Studio","description":"Nice place","address":"12 Rue des Lilas","city":"Paris","country":"France","property_type":"apartment","price_per_night":"90.00","max_guests":2,"host_id":"host-001"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/listings", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Create(w, req, httprouter.Params{})

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}

	var resp struct {
		Data model.Listing `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Data.ID != "66f000000000000000000001" {
		t.Errorf("id = %q, want the assigned ID", resp.Data.ID)
	}
}

func TestDeleteConflict(t *testing.T) {
	svc := &mockListingService{
		deleteFunc: func(ctx context.Context, id string) error {
			return apperrors.Conflict("Listing has 2 booking(s) and cannot be deleted")
		},
	}
	h := testHandler(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/listings/66f000000000000000000001", nil)
	w := httptest.NewRecorder()

	h.Delete(w, req, httprouter.Params{{Key: "id", Value: "66f000000000000000000001"}})

	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", w.Code)
	}
}
