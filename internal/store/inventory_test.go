package store

import (
	"context"
	"testing"

	"github.com/jeongphys/g-bird-platform/internal/db"
	"github.com/jeongphys/g-bird-platform/internal/shop"
)

func TestSeedAndListInventory(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	count, err := SeedInventory(ctx, database, 2, 3, 16000)
	if err != nil {
		t.Fatalf("SeedInventory: %v", err)
	}
	if count != 6 {
		t.Errorf("expected 6 seeded units, got %d", count)
	}

	units, err := ListInventory(ctx, database)
	if err != nil {
		t.Fatalf("ListInventory: %v", err)
	}
	if len(units) != 6 {
		t.Fatalf("expected 6 units, got %d", len(units))
	}

	// Canonical order: 1-1, 1-2, 1-3, 2-1, 2-2, 2-3.
	expected := []string{"1-1", "1-2", "1-3", "2-1", "2-2", "2-3"}
	for i, u := range units {
		if u.ID() != expected[i] {
			t.Errorf("position %d: expected %s, got %s", i, expected[i], u.ID())
		}
		if u.IsSold {
			t.Errorf("unit %s seeded as sold", u.ID())
		}
		if u.Price != 16000 {
			t.Errorf("unit %s: expected price 16000, got %d", u.ID(), u.Price)
		}
	}
}

func TestSeedInventoryTwiceFails(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if _, err := SeedInventory(ctx, database, 1, 2, 16000); err != nil {
		t.Fatalf("SeedInventory: %v", err)
	}
	if _, err := SeedInventory(ctx, database, 1, 2, 16000); err == nil {
		t.Error("expected error seeding over existing inventory")
	}
}

func TestSeedInventoryRejectsInvalidInput(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if _, err := SeedInventory(ctx, database, 0, 5, 16000); err == nil {
		t.Error("expected error for zero boxes")
	}
	if _, err := SeedInventory(ctx, database, 1, 5, 0); err == nil {
		t.Error("expected error for zero price")
	}
}

func TestGetUnit(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	SeedInventory(ctx, database, 1, 2, 16000)

	unit, err := GetUnit(ctx, database, "1-2")
	if err != nil {
		t.Fatalf("GetUnit: %v", err)
	}
	if unit == nil || unit.Box != 1 || unit.Number != 2 {
		t.Errorf("expected unit 1-2, got %+v", unit)
	}

	missing, err := GetUnit(ctx, database, "9-9")
	if err != nil {
		t.Fatalf("GetUnit missing: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for missing unit, got %+v", missing)
	}
}

func TestResetInventoryRequiresConfirmPhrase(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	SeedInventory(ctx, database, 1, 2, 16000)

	if err := ResetInventory(ctx, database, "reset please"); err == nil {
		t.Error("expected error for wrong confirmation phrase")
	}
	if err := ResetInventory(ctx, database, shop.ResetConfirmPhrase); err != nil {
		t.Errorf("ResetInventory: %v", err)
	}
}

func TestResetInventoryClearsSoldState(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	SeedInventory(ctx, database, 1, 2, 16000)

	order, err := CreateOrder(ctx, database, "Buyer", []string{"1-1"})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if _, err := ApproveOrder(ctx, database, order.ID); err != nil {
		t.Fatalf("ApproveOrder: %v", err)
	}

	if err := ResetInventory(ctx, database, shop.ResetConfirmPhrase); err != nil {
		t.Fatalf("ResetInventory: %v", err)
	}

	units, _ := ListInventory(ctx, database)
	for _, u := range units {
		if u.IsSold || u.SoldTo != nil {
			t.Errorf("unit %s not reset: %+v", u.ID(), u)
		}
	}

	// Order history is untouched.
	got, _ := GetOrder(ctx, database, order.ID)
	if got == nil || got.Status != "approved" {
		t.Errorf("expected order history preserved, got %+v", got)
	}
}

func TestInventorySummary(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	SeedInventory(ctx, database, 1, 4, 16000)

	order, err := CreateOrder(ctx, database, "Buyer", []string{"1-1", "1-2"})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if _, err := ApproveOrder(ctx, database, order.ID); err != nil {
		t.Fatalf("ApproveOrder: %v", err)
	}

	summary, err := GetInventorySummary(ctx, database)
	if err != nil {
		t.Fatalf("GetInventorySummary: %v", err)
	}
	if summary.Total != 4 || summary.Sold != 2 || summary.Revenue != 32000 {
		t.Errorf("unexpected summary: %+v", summary)
	}
}
