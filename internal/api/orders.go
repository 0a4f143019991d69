package api

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/jeongphys/g-bird-platform/internal/model"
	"github.com/jeongphys/g-bird-platform/internal/store"
)

// OrdersHandler handles the order lifecycle endpoints.
type OrdersHandler struct {
	DB *sql.DB
}

type createOrderRequest struct {
	Items []string `json:"items"`
}

type rejectOrderRequest struct {
	Reason string `json:"reason"`
}

// Create handles POST /api/orders. The buyer identity comes from the verified
// token, never from the request body.
func (h *OrdersHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	var req createOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Items) == 0 {
		jsonError(w, http.StatusBadRequest, "items required")
		return
	}

	order, err := store.CreateOrder(r.Context(), h.DB, claims.Name, req.Items)
	if err != nil {
		jsonDomainError(w, err)
		return
	}

	slog.Info("order created", "order", order.ID, "buyer", order.UserName,
		"items", len(order.Items), "total", order.TotalPrice)
	jsonResponse(w, http.StatusCreated, order)
}

// List handles GET /api/orders (admin), optionally filtered by ?status=.
func (h *OrdersHandler) List(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status != "" && status != model.OrderStatusPending &&
		status != model.OrderStatusApproved && status != model.OrderStatusRejected {
		jsonError(w, http.StatusBadRequest, "invalid status")
		return
	}

	orders, err := store.ListOrders(r.Context(), h.DB, status, "")
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list orders")
		return
	}
	if orders == nil {
		orders = []model.Order{}
	}
	jsonResponse(w, http.StatusOK, orders)
}

// ListMine handles GET /api/orders/mine, the buyer's own order history.
func (h *OrdersHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	orders, err := store.ListOrders(r.Context(), h.DB, "", claims.Name)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list orders")
		return
	}
	if orders == nil {
		orders = []model.Order{}
	}
	jsonResponse(w, http.StatusOK, orders)
}

// Get handles GET /api/orders/{id}. Buyers can only see their own orders;
// admins can see any.
func (h *OrdersHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	order, err := store.GetOrder(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get order")
		return
	}
	if order == nil {
		jsonError(w, http.StatusNotFound, "order not found")
		return
	}
	if order.UserName != claims.Name && !model.RoleAtLeast(claims.Role, model.RoleAdmin) {
		jsonError(w, http.StatusForbidden, "not your order")
		return
	}

	jsonResponse(w, http.StatusOK, order)
}

// Approve handles POST /api/orders/{id}/approve (admin). This is where the
// stock deduction is committed.
func (h *OrdersHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	order, err := store.ApproveOrder(r.Context(), h.DB, id)
	if err != nil {
		jsonDomainError(w, err)
		return
	}

	claims := GetClaims(r.Context())
	slog.Info("order approved", "order", order.ID, "buyer", order.UserName, "by", claims.Name)
	jsonResponse(w, http.StatusOK, order)
}

// Reject handles POST /api/orders/{id}/reject (admin).
func (h *OrdersHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req rejectOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Reason == "" {
		jsonError(w, http.StatusBadRequest, "reason required")
		return
	}

	order, err := store.RejectOrder(r.Context(), h.DB, id, req.Reason)
	if err != nil {
		jsonDomainError(w, err)
		return
	}

	claims := GetClaims(r.Context())
	slog.Info("order rejected", "order", order.ID, "reason", req.Reason, "by", claims.Name)
	jsonResponse(w, http.StatusOK, order)
}
