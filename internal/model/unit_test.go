package model

import "testing"

func TestParseUnitID(t *testing.T) {
	box, number, err := ParseUnitID("3-17")
	if err != nil {
		t.Fatalf("ParseUnitID: %v", err)
	}
	if box != 3 || number != 17 {
		t.Errorf("expected 3-17, got %d-%d", box, number)
	}
}

func TestParseUnitIDInvalid(t *testing.T) {
	for _, id := range []string{"", "3", "-1", "3-", "0-1", "1-0", "a-b", "1-2-3"} {
		if _, _, err := ParseUnitID(id); err == nil {
			t.Errorf("expected error for %q", id)
		}
	}
}

func TestUnitIDRoundTrip(t *testing.T) {
	u := Unit{Box: 2, Number: 5}
	if u.ID() != "2-5" {
		t.Errorf("expected 2-5, got %s", u.ID())
	}
}

func TestUnitBefore(t *testing.T) {
	cases := []struct {
		a, b   Unit
		before bool
	}{
		{Unit{Box: 1, Number: 2}, Unit{Box: 1, Number: 3}, true},
		{Unit{Box: 1, Number: 25}, Unit{Box: 2, Number: 1}, true},
		{Unit{Box: 2, Number: 1}, Unit{Box: 1, Number: 25}, false},
		{Unit{Box: 1, Number: 1}, Unit{Box: 1, Number: 1}, false},
	}
	for _, c := range cases {
		if got := c.a.Before(c.b); got != c.before {
			t.Errorf("%s before %s: expected %v, got %v", c.a.ID(), c.b.ID(), c.before, got)
		}
	}
}
