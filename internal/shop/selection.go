// Package shop holds the purchase domain rules: the sequential selection
// policy buyers interact with and the typed errors shared by the selection,
// reservation and order lifecycle code.
//
// Shuttlecocks are sold in strict box/number order so that boxes get opened
// front to back at pickup. A buyer builds up a selection one click at a time;
// the policy decides whether each click is a valid add or remove. It is a pure
// function of (snapshot, selection, clicked unit) and touches no storage.
package shop

import (
	"slices"

	"github.com/jeongphys/g-bird-platform/internal/model"
)

// DefaultSelectionLimit is the per-buyer cap on units in one order.
const DefaultSelectionLimit = model.MaxOrderItems

// ResetConfirmPhrase must be supplied verbatim to reset the whole inventory.
// A UI safety rail, not a security control.
const ResetConfirmPhrase = "RESET ALL STOCK"

// Selector applies the sequential selection rules against an inventory
// snapshot. The zero value is not usable; use NewSelector.
type Selector struct {
	limit int
}

// NewSelector returns a Selector with the given per-order cap. A non-positive
// limit falls back to DefaultSelectionLimit.
func NewSelector(limit int) *Selector {
	if limit <= 0 {
		limit = DefaultSelectionLimit
	}
	return &Selector{limit: limit}
}

// Limit returns the per-order cap.
func (s *Selector) Limit() int {
	return s.limit
}

// Click applies a single click on clickedID to the current selection and
// returns the updated selection. The snapshot must be in canonical
// (box, number) order, as returned by the inventory store.
//
// Rules:
//   - clicking a sold unit is a silent no-op
//   - adding is valid only for the first unsold unit not yet selected
//   - the selection may not exceed the cap
//   - removing is valid only for the last selected unit (LIFO)
//
// The input slices are never mutated.
func (s *Selector) Click(snapshot []model.Unit, selection []string, clickedID string) ([]string, error) {
	clicked, ok := findUnit(snapshot, clickedID)
	if !ok {
		return nil, &NotFoundError{Kind: "unit", ID: clickedID}
	}

	if clicked.IsSold {
		return slices.Clone(selection), nil
	}

	if slices.Contains(selection, clickedID) {
		last := selection[len(selection)-1]
		if clickedID != last {
			return nil, &OutOfOrderCancelError{Clicked: clickedID, Last: last}
		}
		return slices.Clone(selection[:len(selection)-1]), nil
	}

	next := nextPurchasable(snapshot, selection)
	if next == "" || clickedID != next {
		return nil, &OutOfSequenceError{Clicked: clickedID, Next: next}
	}

	if len(selection) >= s.limit {
		return nil, &SelectionLimitError{Limit: s.limit}
	}

	out := make([]string, 0, len(selection)+1)
	out = append(out, selection...)
	return append(out, clickedID), nil
}

// Replay validates a whole click sequence from an empty selection, returning
// the final selection. Used to re-check a submitted selection server-side.
func (s *Selector) Replay(snapshot []model.Unit, clicks []string) ([]string, error) {
	var selection []string
	for _, id := range clicks {
		next, err := s.Click(snapshot, selection, id)
		if err != nil {
			return nil, err
		}
		selection = next
	}
	return selection, nil
}

// nextPurchasable returns the id of the first unsold unit not yet in the
// selection, or "" if everything is sold or selected.
func nextPurchasable(snapshot []model.Unit, selection []string) string {
	for _, u := range snapshot {
		if u.IsSold {
			continue
		}
		if !slices.Contains(selection, u.ID()) {
			return u.ID()
		}
	}
	return ""
}

func findUnit(snapshot []model.Unit, id string) (model.Unit, bool) {
	for _, u := range snapshot {
		if u.ID() == id {
			return u, true
		}
	}
	return model.Unit{}, false
}
