package api

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/jeongphys/g-bird-platform/internal/model"
	"github.com/jeongphys/g-bird-platform/internal/store"
)

// NoticesHandler handles notice board endpoints.
type NoticesHandler struct {
	DB *sql.DB
}

type noticeRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	IsPinned bool   `json:"is_pinned"`
}

// List handles GET /api/notices (pinned first).
func (h *NoticesHandler) List(w http.ResponseWriter, r *http.Request) {
	notices, err := store.ListNotices(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list notices")
		return
	}
	if notices == nil {
		notices = []model.Notice{}
	}
	jsonResponse(w, http.StatusOK, notices)
}

// Get handles GET /api/notices/{id}.
func (h *NoticesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid notice id")
		return
	}

	notice, err := store.GetNotice(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get notice")
		return
	}
	if notice == nil {
		jsonError(w, http.StatusNotFound, "notice not found")
		return
	}
	jsonResponse(w, http.StatusOK, notice)
}

// Create handles POST /api/notices (admin).
func (h *NoticesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req noticeRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" || req.Content == "" {
		jsonError(w, http.StatusBadRequest, "title and content required")
		return
	}

	claims := GetClaims(r.Context())
	notice, err := store.CreateNotice(r.Context(), h.DB, req.Title, req.Content, claims.Name, req.IsPinned)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to create notice")
		return
	}

	jsonResponse(w, http.StatusCreated, notice)
}

// Update handles PUT /api/notices/{id} (admin).
func (h *NoticesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid notice id")
		return
	}

	var req noticeRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" || req.Content == "" {
		jsonError(w, http.StatusBadRequest, "title and content required")
		return
	}

	if err := store.UpdateNotice(r.Context(), h.DB, id, req.Title, req.Content, req.IsPinned); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to update notice")
		return
	}

	notice, _ := store.GetNotice(r.Context(), h.DB, id)
	jsonResponse(w, http.StatusOK, notice)
}

// Delete handles DELETE /api/notices/{id} (admin).
func (h *NoticesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid notice id")
		return
	}

	if err := store.DeleteNotice(r.Context(), h.DB, id); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to delete notice")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "notice deleted"})
}
