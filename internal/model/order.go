package model

import "time"

// Order represents a buyer's purchase request. A pending order acts as a soft
// reservation on its items: stock is only deducted when the order is approved.
type Order struct {
	ID           string     `json:"id"`
	UserName     string     `json:"user_name"`
	Items        []string   `json:"items"`
	TotalPrice   int        `json:"total_price"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	ApprovedAt   *time.Time `json:"approved_at,omitempty"`
	RejectReason string     `json:"reject_reason,omitempty"`
}

// Order statuses. Pending orders transition exactly once to approved or
// rejected; both are terminal.
const (
	OrderStatusPending  = "pending"
	OrderStatusApproved = "approved"
	OrderStatusRejected = "rejected"
)

// MaxOrderItems is the per-order selection cap.
const MaxOrderItems = 5
