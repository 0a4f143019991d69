package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Unit represents a single sellable shuttlecock, identified by its box and
// in-box number. Units are sold in strict (box, number) ascending order.
type Unit struct {
	Box    int     `json:"box"`
	Number int     `json:"number"`
	Price  int     `json:"price"`
	IsSold bool    `json:"is_sold"`
	SoldTo *string `json:"sold_to,omitempty"`
}

// ID returns the unit's composite identifier, e.g. "2-13".
func (u Unit) ID() string {
	return UnitID(u.Box, u.Number)
}

// UnitID builds a composite unit identifier from box and number.
func UnitID(box, number int) string {
	return fmt.Sprintf("%d-%d", box, number)
}

// ParseUnitID splits a composite unit identifier into box and number.
func ParseUnitID(id string) (box, number int, err error) {
	dash := strings.IndexByte(id, '-')
	if dash <= 0 || dash == len(id)-1 {
		return 0, 0, fmt.Errorf("invalid unit id %q", id)
	}

	box, err = strconv.Atoi(id[:dash])
	if err != nil || box < 1 {
		return 0, 0, fmt.Errorf("invalid unit id %q", id)
	}
	number, err = strconv.Atoi(id[dash+1:])
	if err != nil || number < 1 {
		return 0, 0, fmt.Errorf("invalid unit id %q", id)
	}
	return box, number, nil
}

// Before reports whether u precedes other in canonical selling order.
func (u Unit) Before(other Unit) bool {
	if u.Box != other.Box {
		return u.Box < other.Box
	}
	return u.Number < other.Number
}
