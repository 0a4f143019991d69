package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jeongphys/g-bird-platform/internal/model"
	"github.com/jeongphys/g-bird-platform/internal/shop"
)

// CreateOrder validates a finalized selection against live state and creates
// a pending order. Stock is not deducted here; a pending order is only a soft
// reservation, and deduction happens at approval time.
//
// The whole check-and-create runs in one transaction: the pending-order
// conflict scan, the re-read of each unit's sold state, and the insert are
// indivisible with respect to concurrent submissions, so two buyers can never
// both reserve the same unit.
func CreateOrder(ctx context.Context, db *sql.DB, userName string, unitIDs []string) (*model.Order, error) {
	if userName == "" {
		return nil, fmt.Errorf("buyer name required")
	}
	if len(unitIDs) == 0 {
		return nil, fmt.Errorf("empty selection")
	}
	if len(unitIDs) > model.MaxOrderItems {
		return nil, &shop.SelectionLimitError{Limit: model.MaxOrderItems}
	}

	type unitKey struct{ box, number int }
	keys := make([]unitKey, 0, len(unitIDs))
	seen := make(map[unitKey]bool, len(unitIDs))
	for _, id := range unitIDs {
		box, number, err := model.ParseUnitID(id)
		if err != nil {
			return nil, err
		}
		k := unitKey{box, number}
		if seen[k] {
			return nil, fmt.Errorf("duplicate unit %s in selection", id)
		}
		seen[k] = true
		keys = append(keys, k)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	// Conflict scan: no pending order may already hold any selected unit.
	for i, k := range keys {
		var held int
		err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM order_items oi
			 JOIN orders o ON o.id = oi.order_id
			 WHERE o.status = ? AND oi.box = ? AND oi.number = ?`,
			model.OrderStatusPending, k.box, k.number,
		).Scan(&held)
		if err != nil {
			return nil, fmt.Errorf("checking pending reservations: %w", err)
		}
		if held > 0 {
			return nil, &shop.AlreadyReservedError{UnitID: unitIDs[i]}
		}
	}

	// Availability re-read: every unit must still exist and be unsold.
	totalPrice := 0
	for i, k := range keys {
		var price int
		var isSold bool
		err := tx.QueryRowContext(ctx,
			`SELECT price, is_sold FROM inventory WHERE box = ? AND number = ?`,
			k.box, k.number,
		).Scan(&price, &isSold)
		if err == sql.ErrNoRows {
			return nil, &shop.NotFoundError{Kind: "unit", ID: unitIDs[i]}
		}
		if err != nil {
			return nil, fmt.Errorf("checking unit %s: %w", unitIDs[i], err)
		}
		if isSold {
			return nil, &shop.AlreadySoldError{UnitID: unitIDs[i]}
		}
		totalPrice += price
	}

	orderID := uuid.NewString()
	createdAt := time.Now().UTC()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO orders (id, user_name, total_price, status, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		orderID, userName, totalPrice, model.OrderStatusPending, createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("creating order: %w", err)
	}

	for i, k := range keys {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO order_items (order_id, box, number, position) VALUES (?, ?, ?, ?)`,
			orderID, k.box, k.number, i,
		)
		if err != nil {
			return nil, fmt.Errorf("creating order item %s: %w", unitIDs[i], err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing order: %w", err)
	}

	return GetOrder(ctx, db, orderID)
}

// ApproveOrder confirms payment for a pending order and deducts stock. This
// is the single point where units become sold. Approving a non-pending order
// fails and changes nothing.
func ApproveOrder(ctx context.Context, db *sql.DB, orderID string) (*model.Order, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var userName, status string
	err = tx.QueryRowContext(ctx,
		`SELECT user_name, status FROM orders WHERE id = ?`, orderID,
	).Scan(&userName, &status)
	if err == sql.ErrNoRows {
		return nil, &shop.NotFoundError{Kind: "order", ID: orderID}
	}
	if err != nil {
		return nil, fmt.Errorf("getting order: %w", err)
	}
	if status != model.OrderStatusPending {
		return nil, &shop.OrderNotPendingError{OrderID: orderID, Status: status}
	}

	approvedAt := time.Now().UTC()
	_, err = tx.ExecContext(ctx,
		`UPDATE orders SET status = ?, approved_at = ? WHERE id = ?`,
		model.OrderStatusApproved, approvedAt, orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("approving order: %w", err)
	}

	rows, err := tx.QueryContext(ctx,
		`SELECT box, number FROM order_items WHERE order_id = ? ORDER BY position`, orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing order items: %w", err)
	}
	type unitKey struct{ box, number int }
	var keys []unitKey
	for rows.Next() {
		var k unitKey
		if err := rows.Scan(&k.box, &k.number); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning order item: %w", err)
		}
		keys = append(keys, k)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing order items: %w", err)
	}

	for _, k := range keys {
		res, err := tx.ExecContext(ctx,
			`UPDATE inventory SET is_sold = 1, sold_to = ? WHERE box = ? AND number = ?`,
			userName, k.box, k.number,
		)
		if err != nil {
			return nil, fmt.Errorf("deducting unit %s: %w", model.UnitID(k.box, k.number), err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("deducting unit %s: %w", model.UnitID(k.box, k.number), err)
		}
		if n == 0 {
			return nil, &shop.NotFoundError{Kind: "unit", ID: model.UnitID(k.box, k.number)}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing approval: %w", err)
	}

	return GetOrder(ctx, db, orderID)
}

// RejectOrder marks a pending order rejected with a reason. Inventory is not
// touched: nothing was deducted while the order was pending, so there is
// nothing to restore.
func RejectOrder(ctx context.Context, db *sql.DB, orderID, reason string) (*model.Order, error) {
	if reason == "" {
		return nil, fmt.Errorf("rejection reason required")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var status string
	err = tx.QueryRowContext(ctx,
		`SELECT status FROM orders WHERE id = ?`, orderID,
	).Scan(&status)
	if err == sql.ErrNoRows {
		return nil, &shop.NotFoundError{Kind: "order", ID: orderID}
	}
	if err != nil {
		return nil, fmt.Errorf("getting order: %w", err)
	}
	if status != model.OrderStatusPending {
		return nil, &shop.OrderNotPendingError{OrderID: orderID, Status: status}
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE orders SET status = ?, reject_reason = ? WHERE id = ?`,
		model.OrderStatusRejected, reason, orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("rejecting order: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing rejection: %w", err)
	}

	return GetOrder(ctx, db, orderID)
}

// GetOrder returns an order with its items in selection order.
func GetOrder(ctx context.Context, db *sql.DB, id string) (*model.Order, error) {
	o := &model.Order{}
	var approvedAt sql.NullTime
	var rejectReason sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT id, user_name, total_price, status, created_at, approved_at, reject_reason
		 FROM orders WHERE id = ?`, id,
	).Scan(&o.ID, &o.UserName, &o.TotalPrice, &o.Status, &o.CreatedAt, &approvedAt, &rejectReason)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting order: %w", err)
	}
	if approvedAt.Valid {
		o.ApprovedAt = &approvedAt.Time
	}
	o.RejectReason = rejectReason.String

	o.Items, err = getOrderItems(ctx, db, id)
	if err != nil {
		return nil, err
	}
	return o, nil
}

// ListOrders returns orders newest first, optionally filtered by status
// and/or buyer name.
func ListOrders(ctx context.Context, db *sql.DB, status, userName string) ([]model.Order, error) {
	query := `SELECT id, user_name, total_price, status, created_at, approved_at, reject_reason
	          FROM orders WHERE 1=1`
	var args []any

	if status != "" {
		query += ` AND status = ?`
		args = append(args, status)
	}
	if userName != "" {
		query += ` AND user_name = ?`
		args = append(args, userName)
	}

	query += ` ORDER BY created_at DESC, id`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var o model.Order
		var approvedAt sql.NullTime
		var rejectReason sql.NullString
		if err := rows.Scan(&o.ID, &o.UserName, &o.TotalPrice, &o.Status, &o.CreatedAt, &approvedAt, &rejectReason); err != nil {
			return nil, fmt.Errorf("scanning order: %w", err)
		}
		if approvedAt.Valid {
			o.ApprovedAt = &approvedAt.Time
		}
		o.RejectReason = rejectReason.String
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		orders[i].Items, err = getOrderItems(ctx, db, orders[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func getOrderItems(ctx context.Context, db *sql.DB, orderID string) ([]string, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT box, number FROM order_items WHERE order_id = ? ORDER BY position`, orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing order items: %w", err)
	}
	defer rows.Close()

	var items []string
	for rows.Next() {
		var box, number int
		if err := rows.Scan(&box, &number); err != nil {
			return nil, fmt.Errorf("scanning order item: %w", err)
		}
		items = append(items, model.UnitID(box, number))
	}
	return items, rows.Err()
}
