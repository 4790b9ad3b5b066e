package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/sweetshop/inventory-system/internal/core/domain"
	"github.com/sweetshop/inventory-system/internal/core/ports"
)

type stubSweetService struct {
	listFn     func(ctx context.Context) ([]*domain.Sweet, error)
	searchFn   func(ctx context.Context, filter ports.SearchFilter) ([]*domain.Sweet, error)
	addFn      func(ctx context.Context, input ports.AddSweetInput) (*domain.Sweet, error)
	purchaseFn func(ctx context.Context, id string, qty int64) (*domain.Sweet, error)
	restockFn  func(ctx context.Context, id string, qty int64) (*domain.Sweet, error)
	updateFn   func(ctx context.Context, id string, fields ports.UpdateFields) (*domain.Sweet, error)
	deleteFn   func(ctx context.Context, id string) (*domain.Sweet, error)
}

func (s *stubSweetService) List(ctx context.Context) ([]*domain.Sweet, error) {
	return s.listFn(ctx)
}

func (s *stubSweetService) Search(ctx context.Context, filter ports.SearchFilter) ([]*domain.Sweet, error) {
	return s.searchFn(ctx, filter)
}

func (s *stubSweetService) Add(ctx context.Context, input ports.AddSweetInput) (*domain.Sweet, error) {
	return s.addFn(ctx, input)
}

func (s *stubSweetService) Purchase(ctx context.Context, id string, qty int64) (*domain.Sweet, error) {
	return s.purchaseFn(ctx, id, qty)
}

func (s *stubSweetService) Restock(ctx context.Context, id string, qty int64) (*domain.Sweet, error) {
	return s.restockFn(ctx, id, qty)
}

func (s *stubSweetService) Update(ctx context.Context, id string, fields ports.UpdateFields) (*domain.Sweet, error) {
	return s.updateFn(ctx, id, fields)
}

func (s *stubSweetService) Delete(ctx context.Context, id string) (*domain.Sweet, error) {
	return s.deleteFn(ctx, id)
}

func TestSweetHandler_List(t *testing.T) {
	e := newTestEcho()
	stub := &stubSweetService{
		listFn: func(ctx context.Context) ([]*domain.Sweet, error) {
			return []*domain.Sweet{
				{ID: "1", Name: "Gulab Jamun", Category: "Indian", Price: 10, Quantity: 50},
				{ID: "2", Name: "Rasgulla", Category: "Indian", Price: 12, Quantity: 30},
			}, nil
		},
	}
	handler := NewSweetHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/sweets", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var sweets []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &sweets); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(sweets) != 2 {
		t.Fatalf("expected 2 sweets, got %d", len(sweets))
	}
}

func TestSweetHandler_Search_ParsesPriceBounds(t *testing.T) {
	e := newTestEcho()
	stub := &stubSweetService{
		searchFn: func(ctx context.Context, filter ports.SearchFilter) ([]*domain.Sweet, error) {
			if filter.MinPrice == nil || *filter.MinPrice != 10 {
				t.Fatalf("min_price not parsed: %+v", filter)
			}
			if filter.MaxPrice == nil || *filter.MaxPrice != 12 {
				t.Fatalf("max_price not parsed: %+v", filter)
			}
			if filter.Category != "Indian" {
				t.Fatalf("category not passed: %+v", filter)
			}
			return []*domain.Sweet{}, nil
		},
	}
	handler := NewSweetHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/sweets/search?category=Indian&min_price=10&max_price=12", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Search(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestSweetHandler_Search_RejectsBadPrice(t *testing.T) {
	e := newTestEcho()
	stub := &stubSweetService{
		searchFn: func(ctx context.Context, filter ports.SearchFilter) ([]*domain.Sweet, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewSweetHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/sweets/search?min_price=abc", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = handler.Search(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSweetHandler_Create_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubSweetService{
		addFn: func(ctx context.Context, input ports.AddSweetInput) (*domain.Sweet, error) {
			return &domain.Sweet{ID: "1", Name: input.Name, Category: input.Category, Price: input.Price, Quantity: input.Quantity}, nil
		},
	}
	handler := NewSweetHandler(stub)

	body := strings.NewReader(`{"name":"Barfi","category":"Indian","price":15,"quantity":20}`)
	req := httptest.NewRequest(http.MethodPost, "/api/sweets", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	sweet, ok := resp["sweet"].(map[string]any)
	if !ok {
		t.Fatalf("expected sweet in response")
	}
	if sweet["quantity"].(float64) != 20 {
		t.Fatalf("unexpected quantity: %v", sweet["quantity"])
	}
}

func TestSweetHandler_Create_ValidationFailure(t *testing.T) {
	e := newTestEcho()
	stub := &stubSweetService{
		addFn: func(ctx context.Context, input ports.AddSweetInput) (*domain.Sweet, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewSweetHandler(stub)

	// price missing entirely
	body := strings.NewReader(`{"name":"Barfi","category":"Indian","quantity":20}`)
	req := httptest.NewRequest(http.MethodPost, "/api/sweets", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = handler.Create(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func purchaseContext(e *echo.Echo, id, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/api/sweets/"+id+"/purchase", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)
	c.Set("user_id", "user-1")
	c.Set("role", domain.RoleUser)
	return c, rec
}

func TestSweetHandler_Purchase_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubSweetService{
		purchaseFn: func(ctx context.Context, id string, qty int64) (*domain.Sweet, error) {
			if id != "abc" || qty != 5 {
				t.Fatalf("unexpected args: %s %d", id, qty)
			}
			return &domain.Sweet{ID: id, Name: "Barfi", Category: "Indian", Price: 15, Quantity: 15}, nil
		},
	}
	handler := NewSweetHandler(stub)

	c, rec := purchaseContext(e, "abc", `{"quantity":5}`)
	if err := handler.Purchase(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "Purchase successful" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
}

func TestSweetHandler_Purchase_InsufficientStock(t *testing.T) {
	e := newTestEcho()
	stub := &stubSweetService{
		purchaseFn: func(ctx context.Context, id string, qty int64) (*domain.Sweet, error) {
			return nil, domain.ErrInsufficientStock
		},
	}
	handler := NewSweetHandler(stub)

	c, rec := purchaseContext(e, "abc", `{"quantity":100}`)
	_ = handler.Purchase(c)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestSweetHandler_Purchase_NotFound(t *testing.T) {
	e := newTestEcho()
	stub := &stubSweetService{
		purchaseFn: func(ctx context.Context, id string, qty int64) (*domain.Sweet, error) {
			return nil, domain.ErrSweetNotFound
		},
	}
	handler := NewSweetHandler(stub)

	c, rec := purchaseContext(e, "missing", `{"quantity":1}`)
	_ = handler.Purchase(c)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestSweetHandler_Purchase_MissingIdentity(t *testing.T) {
	e := newTestEcho()
	stub := &stubSweetService{
		purchaseFn: func(ctx context.Context, id string, qty int64) (*domain.Sweet, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewSweetHandler(stub)

	// No role in context: middleware did not run.
	req := httptest.NewRequest(http.MethodPost, "/api/sweets/abc/purchase", strings.NewReader(`{"quantity":1}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	err := handler.Purchase(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestSweetHandler_Purchase_ZeroQuantityRejected(t *testing.T) {
	e := newTestEcho()
	stub := &stubSweetService{
		purchaseFn: func(ctx context.Context, id string, qty int64) (*domain.Sweet, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewSweetHandler(stub)

	c, rec := purchaseContext(e, "abc", `{"quantity":0}`)
	_ = handler.Purchase(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSweetHandler_Restock_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubSweetService{
		restockFn: func(ctx context.Context, id string, qty int64) (*domain.Sweet, error) {
			return &domain.Sweet{ID: id, Name: "Barfi", Quantity: 25}, nil
		},
	}
	handler := NewSweetHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/api/sweets/abc/restock", strings.NewReader(`{"quantity":10}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	if err := handler.Restock(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestSweetHandler_Update_PartialBody(t *testing.T) {
	e := newTestEcho()
	stub := &stubSweetService{
		updateFn: func(ctx context.Context, id string, fields ports.UpdateFields) (*domain.Sweet, error) {
			if fields.Price == nil || *fields.Price != 18 {
				t.Fatalf("price not passed: %+v", fields)
			}
			if fields.Name != nil || fields.Category != nil || fields.Quantity != nil {
				t.Fatalf("absent fields must stay nil: %+v", fields)
			}
			return &domain.Sweet{ID: id, Name: "Barfi", Price: 18, Quantity: 20}, nil
		},
	}
	handler := NewSweetHandler(stub)

	req := httptest.NewRequest(http.MethodPut, "/api/sweets/abc", strings.NewReader(`{"price":18}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestSweetHandler_Delete_ReturnsSnapshot(t *testing.T) {
	e := newTestEcho()
	stub := &stubSweetService{
		deleteFn: func(ctx context.Context, id string) (*domain.Sweet, error) {
			return &domain.Sweet{ID: id, Name: "Barfi", Quantity: 25}, nil
		},
	}
	handler := NewSweetHandler(stub)

	req := httptest.NewRequest(http.MethodDelete, "/api/sweets/abc", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	sweet := resp["sweet"].(map[string]any)
	if sweet["quantity"].(float64) != 25 {
		t.Fatalf("expected pre-deletion snapshot, got %+v", sweet)
	}
}

func TestSweetHandler_Delete_NotFound(t *testing.T) {
	e := newTestEcho()
	stub := &stubSweetService{
		deleteFn: func(ctx context.Context, id string) (*domain.Sweet, error) {
			return nil, domain.ErrSweetNotFound
		},
	}
	handler := NewSweetHandler(stub)

	req := httptest.NewRequest(http.MethodDelete, "/api/sweets/missing", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	_ = handler.Delete(c)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
