package api

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/jeongphys/g-bird-platform/internal/imaging"
	"github.com/jeongphys/g-bird-platform/internal/model"
	"github.com/jeongphys/g-bird-platform/internal/store"
)

// AlbumsHandler handles photo album endpoints.
type AlbumsHandler struct {
	DB *sql.DB
}

type createAlbumRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// List handles GET /api/albums.
func (h *AlbumsHandler) List(w http.ResponseWriter, r *http.Request) {
	albums, err := store.ListAlbums(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list albums")
		return
	}
	if albums == nil {
		albums = []model.Album{}
	}
	jsonResponse(w, http.StatusOK, albums)
}

// Create handles POST /api/albums.
func (h *AlbumsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createAlbumRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" {
		jsonError(w, http.StatusBadRequest, "title required")
		return
	}

	claims := GetClaims(r.Context())
	album, err := store.CreateAlbum(r.Context(), h.DB, req.Title, req.Description, claims.Name)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to create album")
		return
	}

	jsonResponse(w, http.StatusCreated, album)
}

// Get handles GET /api/albums/{id}, returning the album with its photo list.
func (h *AlbumsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid album id")
		return
	}

	album, err := store.GetAlbum(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get album")
		return
	}
	if album == nil {
		jsonError(w, http.StatusNotFound, "album not found")
		return
	}

	photos, err := store.ListAlbumPhotos(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list album photos")
		return
	}
	if photos == nil {
		photos = []model.AlbumPhoto{}
	}

	jsonResponse(w, http.StatusOK, map[string]any{
		"album":  album,
		"photos": photos,
	})
}

// UploadPhoto handles POST /api/albums/{id}/photos.
func (h *AlbumsHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid album id")
		return
	}

	// Limit to 10 MB.
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("photo")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "photo file required")
		return
	}
	defer file.Close()

	processed, err := imaging.Process(file)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	claims := GetClaims(r.Context())
	photo, err := store.AddAlbumPhoto(r.Context(), h.DB, id, processed.Data, processed.MIME, claims.Name)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to save photo")
		return
	}

	jsonResponse(w, http.StatusCreated, photo)
}

// GetPhoto handles GET /api/albums/{id}/photos/{photoId}, serving the image.
func (h *AlbumsHandler) GetPhoto(w http.ResponseWriter, r *http.Request) {
	photoID, err := strconv.ParseInt(r.PathValue("photoId"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid photo id")
		return
	}

	data, mime, err := store.GetAlbumPhotoImage(r.Context(), h.DB, photoID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get photo")
		return
	}
	if data == nil {
		jsonError(w, http.StatusNotFound, "photo not found")
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(data)
}
