package shop

import "fmt"

// Domain errors for the purchase flow. Every error names the specific unit or
// order it concerns so callers can surface an actionable message instead of a
// generic failure.

// OutOfSequenceError is returned when a buyer clicks a unit that is not the
// next purchasable one in box/number order.
type OutOfSequenceError struct {
	Clicked string
	Next    string
}

func (e *OutOfSequenceError) Error() string {
	return fmt.Sprintf("unit %s is out of sequence, next purchasable unit is %s", e.Clicked, e.Next)
}

// SelectionLimitError is returned when adding a unit would exceed the
// per-order cap.
type SelectionLimitError struct {
	Limit int
}

func (e *SelectionLimitError) Error() string {
	return fmt.Sprintf("at most %d units per order", e.Limit)
}

// OutOfOrderCancelError is returned when a buyer tries to deselect anything
// other than the most recently selected unit.
type OutOfOrderCancelError struct {
	Clicked string
	Last    string
}

func (e *OutOfOrderCancelError) Error() string {
	return fmt.Sprintf("unit %s cannot be removed, cancel %s first", e.Clicked, e.Last)
}

// AlreadyReservedError is returned when a selected unit is held by another
// pending order.
type AlreadyReservedError struct {
	UnitID string
}

func (e *AlreadyReservedError) Error() string {
	return fmt.Sprintf("unit %s is already reserved by a pending order", e.UnitID)
}

// AlreadySoldError is returned when a selected unit was sold between the
// buyer's snapshot and order submission.
type AlreadySoldError struct {
	UnitID string
}

func (e *AlreadySoldError) Error() string {
	return fmt.Sprintf("unit %s has already been sold", e.UnitID)
}

// OrderNotPendingError is returned when approving or rejecting an order that
// already reached a terminal status.
type OrderNotPendingError struct {
	OrderID string
	Status  string
}

func (e *OrderNotPendingError) Error() string {
	return fmt.Sprintf("order %s is %s, not pending", e.OrderID, e.Status)
}

// NotFoundError is returned when a referenced order or unit does not exist.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}
