package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jeongphys/g-bird-platform/internal/model"
)

// CreateAlbum creates a new photo album.
func CreateAlbum(ctx context.Context, db *sql.DB, title, description, createdBy string) (*model.Album, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO albums (title, description, created_by) VALUES (?, ?, ?)`,
		title, description, createdBy,
	)
	if err != nil {
		return nil, fmt.Errorf("creating album: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting album id: %w", err)
	}

	return GetAlbum(ctx, db, id)
}

// GetAlbum returns an album by ID with its photo count.
func GetAlbum(ctx context.Context, db *sql.DB, id int64) (*model.Album, error) {
	a := &model.Album{}
	var description sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT a.id, a.title, a.description, a.created_by, a.created_at,
		        (SELECT COUNT(*) FROM album_photos p WHERE p.album_id = a.id)
		 FROM albums a WHERE a.id = ?`, id,
	).Scan(&a.ID, &a.Title, &description, &a.CreatedBy, &a.CreatedAt, &a.PhotoCount)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting album: %w", err)
	}
	a.Description = description.String
	return a, nil
}

// ListAlbums returns all albums, newest first.
func ListAlbums(ctx context.Context, db *sql.DB) ([]model.Album, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT a.id, a.title, a.description, a.created_by, a.created_at,
		        (SELECT COUNT(*) FROM album_photos p WHERE p.album_id = a.id)
		 FROM albums a ORDER BY a.created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing albums: %w", err)
	}
	defer rows.Close()

	var albums []model.Album
	for rows.Next() {
		var a model.Album
		var description sql.NullString
		if err := rows.Scan(&a.ID, &a.Title, &description, &a.CreatedBy, &a.CreatedAt, &a.PhotoCount); err != nil {
			return nil, fmt.Errorf("scanning album: %w", err)
		}
		a.Description = description.String
		albums = append(albums, a)
	}
	return albums, rows.Err()
}

// AddAlbumPhoto stores a processed photo in an album.
func AddAlbumPhoto(ctx context.Context, db *sql.DB, albumID int64, image []byte, mime, uploadedBy string) (*model.AlbumPhoto, error) {
	album, err := GetAlbum(ctx, db, albumID)
	if err != nil {
		return nil, err
	}
	if album == nil {
		return nil, fmt.Errorf("album not found")
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO album_photos (album_id, image, image_mime, uploaded_by) VALUES (?, ?, ?, ?)`,
		albumID, image, mime, uploadedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("adding album photo: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting photo id: %w", err)
	}

	p := &model.AlbumPhoto{}
	err = db.QueryRowContext(ctx,
		`SELECT id, album_id, image_mime, uploaded_by, created_at
		 FROM album_photos WHERE id = ?`, id,
	).Scan(&p.ID, &p.AlbumID, &p.ImageMime, &p.UploadedBy, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("getting album photo: %w", err)
	}
	return p, nil
}

// ListAlbumPhotos returns photo metadata for an album, oldest first.
func ListAlbumPhotos(ctx context.Context, db *sql.DB, albumID int64) ([]model.AlbumPhoto, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, album_id, image_mime, uploaded_by, created_at
		 FROM album_photos WHERE album_id = ? ORDER BY created_at, id`, albumID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing album photos: %w", err)
	}
	defer rows.Close()

	var photos []model.AlbumPhoto
	for rows.Next() {
		var p model.AlbumPhoto
		if err := rows.Scan(&p.ID, &p.AlbumID, &p.ImageMime, &p.UploadedBy, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning album photo: %w", err)
		}
		photos = append(photos, p)
	}
	return photos, rows.Err()
}

// GetAlbumPhotoImage returns a photo's image bytes and MIME type.
func GetAlbumPhotoImage(ctx context.Context, db *sql.DB, photoID int64) ([]byte, string, error) {
	var image []byte
	var mime string
	err := db.QueryRowContext(ctx,
		`SELECT image, image_mime FROM album_photos WHERE id = ?`, photoID,
	).Scan(&image, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting album photo image: %w", err)
	}
	return image, mime, nil
}
