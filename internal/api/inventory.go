package api

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/jeongphys/g-bird-platform/internal/model"
	"github.com/jeongphys/g-bird-platform/internal/shop"
	"github.com/jeongphys/g-bird-platform/internal/store"
)

// InventoryHandler handles shuttlecock stock endpoints.
type InventoryHandler struct {
	DB       *sql.DB
	Selector *shop.Selector
}

type seedRequest struct {
	Boxes       int `json:"boxes"`
	UnitsPerBox int `json:"units_per_box"`
	Price       int `json:"price"`
}

type resetRequest struct {
	Confirm string `json:"confirm"`
}

type clickRequest struct {
	Selection []string `json:"selection"`
	UnitID    string   `json:"unit_id"`
}

type clickResponse struct {
	Selection  []string `json:"selection"`
	TotalPrice int      `json:"total_price"`
}

// List handles GET /api/inventory, returning the snapshot in canonical order.
func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	units, err := store.ListInventory(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list inventory")
		return
	}
	if units == nil {
		units = []model.Unit{}
	}
	jsonResponse(w, http.StatusOK, units)
}

// Summary handles GET /api/inventory/summary.
func (h *InventoryHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := store.GetInventorySummary(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to summarize inventory")
		return
	}
	jsonResponse(w, http.StatusOK, summary)
}

// Seed handles POST /api/inventory/seed (admin).
func (h *InventoryHandler) Seed(w http.ResponseWriter, r *http.Request) {
	var req seedRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	count, err := store.SeedInventory(r.Context(), h.DB, req.Boxes, req.UnitsPerBox, req.Price)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	slog.Info("inventory seeded", "boxes", req.Boxes, "units_per_box", req.UnitsPerBox, "price", req.Price)
	jsonResponse(w, http.StatusCreated, map[string]int{"seeded": count})
}

// Reset handles POST /api/inventory/reset (admin). Requires the confirmation
// phrase; order history is untouched.
func (h *InventoryHandler) Reset(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := store.ResetInventory(r.Context(), h.DB, req.Confirm); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	claims := GetClaims(r.Context())
	slog.Warn("inventory reset", "by", claims.Name)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "inventory reset"})
}

// Click handles POST /api/selection/click: applies one click to a buyer's
// selection against the live snapshot and returns the updated selection.
func (h *InventoryHandler) Click(w http.ResponseWriter, r *http.Request) {
	var req clickRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UnitID == "" {
		jsonError(w, http.StatusBadRequest, "unit_id required")
		return
	}

	snapshot, err := store.ListInventory(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to load inventory")
		return
	}

	selection, err := h.Selector.Click(snapshot, req.Selection, req.UnitID)
	if err != nil {
		jsonDomainError(w, err)
		return
	}

	total := 0
	for _, u := range snapshot {
		for _, id := range selection {
			if u.ID() == id {
				total += u.Price
			}
		}
	}

	if selection == nil {
		selection = []string{}
	}
	jsonResponse(w, http.StatusOK, clickResponse{Selection: selection, TotalPrice: total})
}
