package partial

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/sokinpui/threeside.go/internal/host"
	"github.com/sokinpui/threeside.go/internal/side"
	"github.com/sokinpui/threeside.go/model"
)

func threeWay() *model.DiffRequest {
	return &model.DiffRequest{
		Title: "merge conflict",
		Contents: []*model.Content{
			model.NewTextContent("left.txt", "y"),
			model.NewTextContent("base.txt", "x"),
			model.NewTextContent("right.txt", "z"),
		},
		ContentTitles: []string{"L", "B", "R"},
	}
}

func texts(req *model.DiffRequest) []string {
	var out []string
	for _, c := range req.Contents {
		out = append(out, string(c.Data))
	}
	return out
}

func TestBuildPairRequest(t *testing.T) {
	tests := []struct {
		name       string
		a, b       side.Side
		wantTexts  []string
		wantTitles []string
	}{
		{"left base", side.Left, side.Base, []string{"y", "x"}, []string{"L", "B"}},
		{"base right", side.Base, side.Right, []string{"x", "z"}, []string{"B", "R"}},
		{"left right", side.Left, side.Right, []string{"y", "z"}, []string{"L", "R"}},
		{"reversed", side.Right, side.Left, []string{"z", "y"}, []string{"R", "L"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildPairRequest(threeWay(), tt.a, tt.b)
			if got.Title != "merge conflict" {
				t.Errorf("Title = %q, want %q", got.Title, "merge conflict")
			}
			if diff := cmp.Diff(tt.wantTexts, texts(got)); diff != "" {
				t.Errorf("contents mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantTitles, got.ContentTitles); diff != "" {
				t.Errorf("titles mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestActionsMenu(t *testing.T) {
	want := []struct {
		mode         Mode
		side1, side2 side.Side
		icon         Icon
	}{
		{LeftBase, side.Left, side.Base, IconLeftDiff},
		{BaseRight, side.Base, side.Right, IconRightDiff},
		{LeftRight, side.Left, side.Right, IconBranchDiff},
	}
	got := Actions()
	if len(got) != len(want) {
		t.Fatalf("Actions() has %d entries, want %d", len(got), len(want))
	}
	for i, w := range want {
		a := got[i]
		if a.Mode != w.mode || a.Side1 != w.side1 || a.Side2 != w.side2 || a.Icon != w.icon {
			t.Errorf("Actions()[%d] = %+v, want %+v", i, a, w)
		}
		if a.Label == "" {
			t.Errorf("Actions()[%d] has no label", i)
		}
	}
}

func TestParseMode(t *testing.T) {
	for _, a := range Actions() {
		m, err := ParseMode(a.Mode.String())
		if err != nil {
			t.Fatalf("ParseMode(%q) failed: %v", a.Mode, err)
		}
		if m != a.Mode {
			t.Errorf("ParseMode(%q) = %s", a.Mode, m)
		}
	}
	if _, err := ParseMode("base-left"); err == nil {
		t.Error("ParseMode(base-left) should fail")
	}
}

func TestLaunchHandsRequestToPresenter(t *testing.T) {
	var shown []*model.DiffRequest
	var gotHints Hints
	l := NewLauncher(PresenterFunc(func(_ *host.Context, req *model.DiffRequest, hints Hints) {
		shown = append(shown, req)
		gotHints = hints
	}))

	hints := Hints{Parent: "panel", Placement: PlacementOverlay}
	l.Launch(host.NewContext("test"), threeWay(), LeftBase, hints)

	if len(shown) != 1 {
		t.Fatalf("presenter called %d times, want 1", len(shown))
	}
	if diff := cmp.Diff([]string{"y", "x"}, texts(shown[0])); diff != "" {
		t.Errorf("presented contents mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"L", "B"}, shown[0].ContentTitles); diff != "" {
		t.Errorf("presented titles mismatch (-want +got):\n%s", diff)
	}
	if gotHints != hints {
		t.Errorf("hints = %+v, want %+v", gotHints, hints)
	}
}
