package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jeongphys/g-bird-platform/internal/model"
)

// CreateNotice creates a new notice.
func CreateNotice(ctx context.Context, db *sql.DB, title, content, author string, pinned bool) (*model.Notice, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO notices (title, content, author, is_pinned) VALUES (?, ?, ?, ?)`,
		title, content, author, pinned,
	)
	if err != nil {
		return nil, fmt.Errorf("creating notice: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting notice id: %w", err)
	}

	return GetNotice(ctx, db, id)
}

// GetNotice returns a notice by ID.
func GetNotice(ctx context.Context, db *sql.DB, id int64) (*model.Notice, error) {
	n := &model.Notice{}
	err := db.QueryRowContext(ctx,
		`SELECT id, title, content, author, is_pinned, created_at, updated_at
		 FROM notices WHERE id = ?`, id,
	).Scan(&n.ID, &n.Title, &n.Content, &n.Author, &n.IsPinned, &n.CreatedAt, &n.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting notice: %w", err)
	}
	return n, nil
}

// ListNotices returns all notices, pinned first, then newest first.
func ListNotices(ctx context.Context, db *sql.DB) ([]model.Notice, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, title, content, author, is_pinned, created_at, updated_at
		 FROM notices ORDER BY is_pinned DESC, created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing notices: %w", err)
	}
	defer rows.Close()

	var notices []model.Notice
	for rows.Next() {
		var n model.Notice
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.Author, &n.IsPinned, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning notice: %w", err)
		}
		notices = append(notices, n)
	}
	return notices, rows.Err()
}

// UpdateNotice updates a notice's title, content and pinned flag.
func UpdateNotice(ctx context.Context, db *sql.DB, id int64, title, content string, pinned bool) error {
	_, err := db.ExecContext(ctx,
		`UPDATE notices SET title = ?, content = ?, is_pinned = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		title, content, pinned, id,
	)
	if err != nil {
		return fmt.Errorf("updating notice: %w", err)
	}
	return nil
}

// DeleteNotice deletes a notice.
func DeleteNotice(ctx context.Context, db *sql.DB, id int64) error {
	_, err := db.ExecContext(ctx, `DELETE FROM notices WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting notice: %w", err)
	}
	return nil
}
