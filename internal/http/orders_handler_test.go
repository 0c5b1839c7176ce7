package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MoolaPravalesh19/PrintDukan/internal/domain"
	ordersrepo "github.com/MoolaPravalesh19/PrintDukan/internal/orders/repository"
	ordersservice "github.com/MoolaPravalesh19/PrintDukan/internal/orders/service"
)

type orderServiceMock struct {
	order  *domain.Order
	orders []*domain.Order
	err    error
}

func (m orderServiceMock) CreateOrder(ctx context.Context, cartID string, customer domain.CustomerInfo) (*domain.Order, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.order, nil
}

func (m orderServiceMock) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.order, nil
}

func (m orderServiceMock) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.orders, nil
}

func TestCreateOrder_Success(t *testing.T) {
	mock := orderServiceMock{
		order: &domain.Order{
			ID:          "order-1",
			CartID:      "cart-1",
			TotalAmount: 2099,
			Currency:    "INR",
		},
	}

	handler := NewOrdersHandler(mock, 5*time.Second)
	customer := domain.CustomerInfo{
		CustomerName:    "Asha Rao",
		CustomerEmail:   "asha@example.com",
		CustomerPhone:   "9876543210",
		ShippingAddress: "12 MG Road, Bengaluru",
	}
	reqBytes, _ := json.Marshal(customer)
	recorder := httptest.NewRecorder()
	request := withCartSession(httptest.NewRequest("POST", "/orders", bytes.NewReader(reqBytes)), "cart-1")

	handler.CreateOrder(recorder, request)

	if recorder.Code != http.StatusCreated {
		t.Errorf("Expected status code %d, got %d", http.StatusCreated, recorder.Code)
	}

	var response domain.Order
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if response.ID != "order-1" {
		t.Errorf("Expected order id 'order-1', got '%s'", response.ID)
	}
	if response.TotalAmount != 2099 {
		t.Errorf("Expected total 2099, got %v", response.TotalAmount)
	}
}

func TestCreateOrder_MissingSession(t *testing.T) {
	handler := NewOrdersHandler(orderServiceMock{}, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/orders", bytes.NewReader([]byte(`{}`)))
	// No cart id in context

	handler.CreateOrder(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, recorder.Code)
	}

	var response ErrorResponse
	json.NewDecoder(recorder.Body).Decode(&response)
	if response.Code != "missing_cart" {
		t.Errorf("Expected error code 'missing_cart', got '%s'", response.Code)
	}
}

func TestCreateOrder_InvalidJSON(t *testing.T) {
	handler := NewOrdersHandler(orderServiceMock{}, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := withCartSession(httptest.NewRequest("POST", "/orders", bytes.NewReader([]byte("not json"))), "cart-1")

	handler.CreateOrder(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, recorder.Code)
	}

	var response ErrorResponse
	json.NewDecoder(recorder.Body).Decode(&response)
	if response.Code != "invalid_request" {
		t.Errorf("Expected error code 'invalid_request', got '%s'", response.Code)
	}
}

func TestCreateOrder_EmptyCart(t *testing.T) {
	handler := NewOrdersHandler(orderServiceMock{err: ordersservice.ErrEmptyCart}, 5*time.Second)

	reqBytes, _ := json.Marshal(domain.CustomerInfo{CustomerName: "Asha"})
	recorder := httptest.NewRecorder()
	request := withCartSession(httptest.NewRequest("POST", "/orders", bytes.NewReader(reqBytes)), "cart-1")

	handler.CreateOrder(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, recorder.Code)
	}

	var response ErrorResponse
	json.NewDecoder(recorder.Body).Decode(&response)
	if response.Code != "empty_cart" {
		t.Errorf("Expected error code 'empty_cart', got '%s'", response.Code)
	}
}

func TestCreateOrder_InvalidCustomer(t *testing.T) {
	handler := NewOrdersHandler(orderServiceMock{err: ordersservice.ErrInvalidCustomer}, 5*time.Second)

	reqBytes, _ := json.Marshal(domain.CustomerInfo{})
	recorder := httptest.NewRecorder()
	request := withCartSession(httptest.NewRequest("POST", "/orders", bytes.NewReader(reqBytes)), "cart-1")

	handler.CreateOrder(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, recorder.Code)
	}

	var response ErrorResponse
	json.NewDecoder(recorder.Body).Decode(&response)
	if response.Code != "invalid_customer" {
		t.Errorf("Expected error code 'invalid_customer', got '%s'", response.Code)
	}
}

func TestGetOrder_Success(t *testing.T) {
	mock := orderServiceMock{
		order: &domain.Order{ID: "order-1", Currency: "INR"},
	}

	handler := NewOrdersHandler(mock, 5*time.Second)
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/orders/order-1", nil)
	request = withURLParam(request, "id", "order-1")

	handler.GetOrder(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}

	var response domain.Order
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if response.ID != "order-1" {
		t.Errorf("Expected order id 'order-1', got '%s'", response.ID)
	}
}

func TestGetOrder_NotFound(t *testing.T) {
	handler := NewOrdersHandler(orderServiceMock{err: ordersrepo.ErrOrderNotFound}, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/orders/nope", nil)
	request = withURLParam(request, "id", "nope")

	handler.GetOrder(recorder, request)

	if recorder.Code != http.StatusNotFound {
		t.Errorf("Expected status code %d, got %d", http.StatusNotFound, recorder.Code)
	}

	var response ErrorResponse
	json.NewDecoder(recorder.Body).Decode(&response)
	if response.Code != "order_not_found" {
		t.Errorf("Expected error code 'order_not_found', got '%s'", response.Code)
	}
}

func TestListOrders_Success(t *testing.T) {
	mock := orderServiceMock{
		orders: []*domain.Order{
			{ID: "order-2"},
			{ID: "order-1"},
		},
	}

	handler := NewOrdersHandler(mock, 5*time.Second)
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/orders", nil)

	handler.ListOrders(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}

	var response []*domain.Order
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if len(response) != 2 {
		t.Fatalf("Expected 2 orders, got %d", len(response))
	}
	if response[0].ID != "order-2" {
		t.Errorf("Expected newest order first, got '%s'", response[0].ID)
	}
}
