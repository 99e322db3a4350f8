package threeside_test

import (
	"strings"
	"testing"

	"github.com/sokinpui/threeside.go/threeside"
)

func TestPartialDiff(t *testing.T) {
	left := threeside.Input{Title: "ours", Data: []byte("a\nours\nc\n")}
	base := threeside.Input{Title: "base", Data: []byte("a\nb\nc\n")}
	right := threeside.Input{Title: "theirs", Data: []byte("a\ntheirs\nc\n")}

	text, err := threeside.PartialDiff(left, base, right, "left-right")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"--- ours", "+++ theirs", "-ours", "+theirs"} {
		if !strings.Contains(text, want) {
			t.Errorf("PartialDiff() missing %q:\n%s", want, text)
		}
	}

	text, err = threeside.PartialDiff(left, base, right, "base-right")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(text, "--- base\n+++ theirs\n") {
		t.Errorf("base-right diff does not keep side order:\n%s", text)
	}

	if _, err := threeside.PartialDiff(left, base, right, "right-left"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestCanShowThreeWay(t *testing.T) {
	text := threeside.Input{Data: []byte("x\n")}
	binary := threeside.Input{Data: []byte{0, 1, 2}}
	missing := threeside.Input{}

	tests := []struct {
		name              string
		left, base, right threeside.Input
		want              bool
	}{
		{"all text", text, text, text, true},
		{"all binary", binary, binary, binary, true},
		{"mixed", text, binary, text, true},
		{"missing base", text, missing, text, true},
		{"all missing", missing, missing, missing, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := threeside.CanShowThreeWay(tt.left, tt.base, tt.right); got != tt.want {
				t.Errorf("CanShowThreeWay() = %v, want %v", got, tt.want)
			}
		})
	}
}
