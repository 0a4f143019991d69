package model

import "time"

// Album groups uploaded club photos.
type Album struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	PhotoCount  int       `json:"photo_count"`
}

// AlbumPhoto is a single photo inside an album. Image bytes are stored in the
// database and served separately from the metadata.
type AlbumPhoto struct {
	ID         int64     `json:"id"`
	AlbumID    int64     `json:"album_id"`
	ImageMime  string    `json:"image_mime"`
	UploadedBy string    `json:"uploaded_by"`
	CreatedAt  time.Time `json:"created_at"`
}
