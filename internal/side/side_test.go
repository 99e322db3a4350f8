package side

import (
	"errors"
	"testing"
)

func TestParseSide(t *testing.T) {
	tests := []struct {
		in      string
		want    Side
		wantErr bool
	}{
		{in: "left", want: Left},
		{in: "BASE", want: Base},
		{in: " right ", want: Right},
		{in: "middle", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSide(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseSide(%q) expected error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSide(%q) failed: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseSide(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestSetGetPut(t *testing.T) {
	s := NewSet("l", "b", "r")
	for _, sd := range All {
		want := Select(sd, "l", "b", "r")
		if got := s.Get(sd); got != want {
			t.Errorf("Get(%s) = %q, want %q", sd, got, want)
		}
	}

	s.Put(Base, "B")
	if got := s.Get(Base); got != "B" {
		t.Errorf("Get(base) after Put = %q, want %q", got, "B")
	}
	if got := s.Get(Left); got != "l" {
		t.Errorf("Put(base) changed left to %q", got)
	}
}

func TestSetAllCanonicalOrder(t *testing.T) {
	s := NewSet(1, 2, 3)
	var sides []Side
	var values []int
	for sd, v := range s.All() {
		sides = append(sides, sd)
		values = append(values, v)
	}
	if len(sides) != 3 || sides[0] != Left || sides[1] != Base || sides[2] != Right {
		t.Fatalf("All() order = %v, want [left base right]", sides)
	}
	if values[0] != 1 || values[1] != 2 || values[2] != 3 {
		t.Errorf("All() values = %v, want [1 2 3]", values)
	}
}

func TestSetOfArity(t *testing.T) {
	for _, n := range []int{0, 2, 4} {
		_, err := SetOf(make([]string, n))
		var arity *ArityError
		if !errors.As(err, &arity) {
			t.Fatalf("SetOf(len=%d) error = %v, want *ArityError", n, err)
		}
		if arity.Got != n {
			t.Errorf("ArityError.Got = %d, want %d", arity.Got, n)
		}
	}

	s, err := SetOf([]string{"l", "b", "r"})
	if err != nil {
		t.Fatalf("SetOf failed: %v", err)
	}
	if s.Get(Right) != "r" {
		t.Errorf("Get(right) = %q, want %q", s.Get(Right), "r")
	}
}

func TestNextPrevWrap(t *testing.T) {
	if Right.Next() != Left {
		t.Errorf("Right.Next() = %s, want left", Right.Next())
	}
	if Left.Prev() != Right {
		t.Errorf("Left.Prev() = %s, want right", Left.Prev())
	}
	if Left.Next() != Base || Base.Next() != Right {
		t.Error("Next() does not follow display order")
	}
}
