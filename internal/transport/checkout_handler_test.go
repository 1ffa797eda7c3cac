package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Gaurav-0801/E-com-Platform/internal/domain"
	"github.com/Gaurav-0801/E-com-Platform/internal/middleware"
	"github.com/Gaurav-0801/E-com-Platform/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type mockCheckoutService struct {
	lastInput service.CheckoutInput
	receipt   *domain.Receipt
	err       error
}

func (m *mockCheckoutService) Checkout(ctx context.Context, input service.CheckoutInput) (*domain.Receipt, error) {
	m.lastInput = input
	if m.err != nil {
		return nil, m.err
	}
	return m.receipt, nil
}

func newCheckoutRouter(svc service.CheckoutService) chi.Router {
	logger, _ := zap.NewDevelopment()
	router := chi.NewRouter()
	NewCheckoutHandler(svc, logger).RegisterRoutes(router)
	return router
}

func postCheckout(t *testing.T, router chi.Router, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/checkout", bytes.NewBufferString(body))
	r.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, r)
	return w
}

func TestCheckoutHandler_Success(t *testing.T) {
	receipt := &domain.Receipt{
		OrderID:       uuid.New(),
		CustomerName:  "Jane Doe",
		CustomerEmail: "jane@x.com",
		Total:         decimal.RequireFromString("20.00"),
		Items: []domain.OrderLine{
			{ProductID: 1, ProductName: "Wireless Headphones", Quantity: 2, Subtotal: decimal.RequireFromString("20.00")},
		},
		Timestamp: time.Now(),
	}
	svc := &mockCheckoutService{receipt: receipt}
	router := newCheckoutRouter(svc)

	w := postCheckout(t, router,
		`{"name":"Jane Doe","email":"jane@x.com","cartItems":[{"product_id":1,"quantity":2}]}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp middleware.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if !resp.Success {
		t.Error("expected success envelope")
	}

	// Without an explicit userId the placeholder shopper is charged.
	if svc.lastInput.UserID != middleware.PlaceholderUserID {
		t.Errorf("expected placeholder user, got %q", svc.lastInput.UserID)
	}
	if len(svc.lastInput.Items) != 1 || svc.lastInput.Items[0].Quantity != 2 {
		t.Errorf("snapshot not forwarded: %+v", svc.lastInput.Items)
	}
}

func TestCheckoutHandler_RequestValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"email":"jane@x.com","cartItems":[{"product_id":1,"quantity":2}]}`},
		{"bad email", `{"name":"Jane Doe","email":"nope","cartItems":[{"product_id":1,"quantity":2}]}`},
		{"empty cart", `{"name":"Jane Doe","email":"jane@x.com","cartItems":[]}`},
		{"zero quantity", `{"name":"Jane Doe","email":"jane@x.com","cartItems":[{"product_id":1,"quantity":0}]}`},
		{"malformed json", `{"name":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockCheckoutService{}
			router := newCheckoutRouter(svc)

			w := postCheckout(t, router, tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
			}

			var resp middleware.Response
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if resp.Success {
				t.Error("validation failure must not be marked success")
			}
			if resp.Message == "" {
				t.Error("validation failure must carry a message")
			}
		})
	}
}

func TestCheckoutHandler_ServiceValidationError(t *testing.T) {
	svc := &mockCheckoutService{err: service.NewValidationError("product with ID 999 not found")}
	router := newCheckoutRouter(svc)

	w := postCheckout(t, router,
		`{"name":"Jane Doe","email":"jane@x.com","cartItems":[{"product_id":999,"quantity":1}]}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	var resp middleware.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.Message != "product with ID 999 not found" {
		t.Errorf("validation message must pass through verbatim, got %q", resp.Message)
	}
}

func TestCheckoutHandler_InfrastructureError(t *testing.T) {
	svc := &mockCheckoutService{err: errors.New("pq: connection refused")}
	router := newCheckoutRouter(svc)

	w := postCheckout(t, router,
		`{"name":"Jane Doe","email":"jane@x.com","cartItems":[{"product_id":1,"quantity":1}]}`)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}

	var resp middleware.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.Message != "failed to place order" {
		t.Errorf("internal detail leaked to the client: %q", resp.Message)
	}
}
