package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jeongphys/g-bird-platform/internal/model"
)

// CreateMember creates a new member.
func CreateMember(ctx context.Context, db *sql.DB, name, studentID, passwordHash, role string) (*model.Member, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO members (name, student_id, password_hash, role) VALUES (?, ?, ?, ?)`,
		name, studentID, passwordHash, role,
	)
	if err != nil {
		return nil, fmt.Errorf("creating member: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting member id: %w", err)
	}

	return GetMember(ctx, db, id)
}

// GetMember returns a member by ID.
func GetMember(ctx context.Context, db *sql.DB, id int64) (*model.Member, error) {
	m := &model.Member{}
	var studentID sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT id, name, student_id, password_hash, role, is_active,
		        shuttle_discount, attendance_score, created_at, deleted_at
		 FROM members WHERE id = ?`, id,
	).Scan(&m.ID, &m.Name, &studentID, &m.PasswordHash, &m.Role, &m.IsActive,
		&m.ShuttleDiscount, &m.AttendanceScore, &m.CreatedAt, &m.DeletedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting member: %w", err)
	}
	m.StudentID = studentID.String
	return m, nil
}

// GetMemberByName returns an active member by name.
func GetMemberByName(ctx context.Context, db *sql.DB, name string) (*model.Member, error) {
	m := &model.Member{}
	var studentID sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT id, name, student_id, password_hash, role, is_active,
		        shuttle_discount, attendance_score, created_at, deleted_at
		 FROM members WHERE name = ? AND deleted_at IS NULL`, name,
	).Scan(&m.ID, &m.Name, &studentID, &m.PasswordHash, &m.Role, &m.IsActive,
		&m.ShuttleDiscount, &m.AttendanceScore, &m.CreatedAt, &m.DeletedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting member by name: %w", err)
	}
	m.StudentID = studentID.String
	return m, nil
}

// ListMembers returns all non-deleted members.
func ListMembers(ctx context.Context, db *sql.DB) ([]model.Member, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, name, student_id, password_hash, role, is_active,
		        shuttle_discount, attendance_score, created_at, deleted_at
		 FROM members WHERE deleted_at IS NULL ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing members: %w", err)
	}
	defer rows.Close()

	var members []model.Member
	for rows.Next() {
		var m model.Member
		var studentID sql.NullString
		if err := rows.Scan(&m.ID, &m.Name, &studentID, &m.PasswordHash, &m.Role, &m.IsActive,
			&m.ShuttleDiscount, &m.AttendanceScore, &m.CreatedAt, &m.DeletedAt); err != nil {
			return nil, fmt.Errorf("scanning member: %w", err)
		}
		m.StudentID = studentID.String
		members = append(members, m)
	}
	return members, rows.Err()
}

// UpdateMember updates a member's roster fields.
func UpdateMember(ctx context.Context, db *sql.DB, id int64, studentID, role string, isActive bool, shuttleDiscount, attendanceScore int) error {
	_, err := db.ExecContext(ctx,
		`UPDATE members SET student_id = ?, role = ?, is_active = ?,
		        shuttle_discount = ?, attendance_score = ?
		 WHERE id = ? AND deleted_at IS NULL`,
		studentID, role, isActive, shuttleDiscount, attendanceScore, id,
	)
	if err != nil {
		return fmt.Errorf("updating member: %w", err)
	}
	return nil
}

// UpdateMemberPassword updates a member's password hash.
func UpdateMemberPassword(ctx context.Context, db *sql.DB, id int64, passwordHash string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE members SET password_hash = ? WHERE id = ? AND deleted_at IS NULL`,
		passwordHash, id,
	)
	if err != nil {
		return fmt.Errorf("updating member password: %w", err)
	}
	return nil
}

// DeleteMember soft-deletes a member. Their name becomes reusable; their
// order history keeps referring to them by name.
func DeleteMember(ctx context.Context, db *sql.DB, id int64) error {
	_, err := db.ExecContext(ctx,
		`UPDATE members SET deleted_at = CURRENT_TIMESTAMP WHERE id = ? AND deleted_at IS NULL`,
		id,
	)
	if err != nil {
		return fmt.Errorf("deleting member: %w", err)
	}
	return nil
}
