package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jeongphys/g-bird-platform/internal/model"
	"github.com/jeongphys/g-bird-platform/internal/shop"
)

// SeedInventory bulk-creates a fresh box/number grid at the given price.
// It refuses to run if any inventory already exists, so a misfired seed
// cannot silently wipe the sales state.
func SeedInventory(ctx context.Context, db *sql.DB, boxes, unitsPerBox, price int) (int, error) {
	if boxes < 1 || unitsPerBox < 1 {
		return 0, fmt.Errorf("boxes and units per box must be positive")
	}
	if price <= 0 {
		return 0, fmt.Errorf("price must be positive")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var existing int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM inventory`).Scan(&existing); err != nil {
		return 0, fmt.Errorf("checking existing inventory: %w", err)
	}
	if existing > 0 {
		return 0, fmt.Errorf("inventory already seeded with %d units, reset it first", existing)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO inventory (box, number, price, is_sold, sold_to) VALUES (?, ?, ?, 0, NULL)`,
	)
	if err != nil {
		return 0, fmt.Errorf("preparing seed statement: %w", err)
	}
	defer stmt.Close()

	count := 0
	for box := 1; box <= boxes; box++ {
		for number := 1; number <= unitsPerBox; number++ {
			if _, err := stmt.ExecContext(ctx, box, number, price); err != nil {
				return 0, fmt.Errorf("seeding unit %s: %w", model.UnitID(box, number), err)
			}
			count++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing seed: %w", err)
	}
	return count, nil
}

// ListInventory returns all units in canonical (box, number) order.
func ListInventory(ctx context.Context, db *sql.DB) ([]model.Unit, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT box, number, price, is_sold, sold_to
		 FROM inventory ORDER BY box, number`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing inventory: %w", err)
	}
	defer rows.Close()

	var units []model.Unit
	for rows.Next() {
		var u model.Unit
		var soldTo sql.NullString
		if err := rows.Scan(&u.Box, &u.Number, &u.Price, &u.IsSold, &soldTo); err != nil {
			return nil, fmt.Errorf("scanning unit: %w", err)
		}
		if soldTo.Valid {
			u.SoldTo = &soldTo.String
		}
		units = append(units, u)
	}
	return units, rows.Err()
}

// GetUnit returns a single unit by composite id.
func GetUnit(ctx context.Context, db *sql.DB, id string) (*model.Unit, error) {
	box, number, err := model.ParseUnitID(id)
	if err != nil {
		return nil, err
	}

	u := &model.Unit{}
	var soldTo sql.NullString
	err = db.QueryRowContext(ctx,
		`SELECT box, number, price, is_sold, sold_to
		 FROM inventory WHERE box = ? AND number = ?`, box, number,
	).Scan(&u.Box, &u.Number, &u.Price, &u.IsSold, &soldTo)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting unit: %w", err)
	}
	if soldTo.Valid {
		u.SoldTo = &soldTo.String
	}
	return u, nil
}

// InventorySummary aggregates the stock board numbers.
type InventorySummary struct {
	Total   int `json:"total"`
	Sold    int `json:"sold"`
	Revenue int `json:"revenue"`
}

// GetInventorySummary returns unit counts and revenue from sold units.
func GetInventorySummary(ctx context.Context, db *sql.DB) (*InventorySummary, error) {
	s := &InventorySummary{}
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COALESCE(SUM(is_sold), 0),
		        COALESCE(SUM(CASE WHEN is_sold THEN price ELSE 0 END), 0)
		 FROM inventory`,
	).Scan(&s.Total, &s.Sold, &s.Revenue)
	if err != nil {
		return nil, fmt.Errorf("summarizing inventory: %w", err)
	}
	return s, nil
}

// ResetInventory marks every unit unsold and clears ownership. Order history
// is untouched. The confirmation phrase must match shop.ResetConfirmPhrase.
func ResetInventory(ctx context.Context, db *sql.DB, confirm string) error {
	if confirm != shop.ResetConfirmPhrase {
		return fmt.Errorf("confirmation phrase does not match")
	}

	_, err := db.ExecContext(ctx, `UPDATE inventory SET is_sold = 0, sold_to = NULL`)
	if err != nil {
		return fmt.Errorf("resetting inventory: %w", err)
	}
	return nil
}
