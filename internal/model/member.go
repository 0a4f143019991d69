package model

import "time"

// Member represents a club member. Members are also the platform's login
// users; authority comes from the server-verified role, never from the client.
type Member struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	StudentID       string     `json:"student_id,omitempty"`
	PasswordHash    string     `json:"-"`
	Role            string     `json:"role"`
	IsActive        bool       `json:"is_active"`
	ShuttleDiscount int        `json:"shuttle_discount"`
	AttendanceScore int        `json:"attendance_score"`
	CreatedAt       time.Time  `json:"created_at"`
	DeletedAt       *time.Time `json:"deleted_at,omitempty"`
}

// Roles.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// RoleAtLeast checks if role meets or exceeds the minimum required role.
func RoleAtLeast(role, minimum string) bool {
	levels := map[string]int{
		RoleAdmin:  2,
		RoleMember: 1,
	}
	return levels[role] >= levels[minimum]
}
