// Package partial derives two-way diffs from two sides of a three-way
// comparison and hands them to a presenter.
package partial

import (
	"fmt"

	"github.com/sokinpui/threeside.go/internal/host"
	"github.com/sokinpui/threeside.go/internal/side"
	"github.com/sokinpui/threeside.go/model"
)

// Mode is one of the offered side pairings.
type Mode int

const (
	LeftBase Mode = iota
	BaseRight
	LeftRight
)

func (m Mode) String() string {
	switch m {
	case LeftBase:
		return "left-base"
	case BaseRight:
		return "base-right"
	case LeftRight:
		return "left-right"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode converts "left-base", "base-right" or "left-right" to a Mode.
func ParseMode(name string) (Mode, error) {
	for _, a := range Actions() {
		if a.Mode.String() == name {
			return a.Mode, nil
		}
	}
	return 0, fmt.Errorf("unknown partial diff %q: expected left-base, base-right or left-right", name)
}

// Icon identifies the glyph shown next to an action.
type Icon string

const (
	IconLeftDiff   Icon = "left-diff"
	IconRightDiff  Icon = "right-diff"
	IconBranchDiff Icon = "branch-diff"
)

// Glyph returns a terminal rendering of the icon.
func (i Icon) Glyph() string {
	switch i {
	case IconLeftDiff:
		return "◧"
	case IconRightDiff:
		return "◨"
	case IconBranchDiff:
		return "⑂"
	default:
		return "?"
	}
}

// Action is a menu entry that shows the diff between two sides.
type Action struct {
	Mode  Mode
	Side1 side.Side
	Side2 side.Side
	Label string
	Icon  Icon
	Key   string
}

var actions = [...]Action{
	{Mode: LeftBase, Side1: side.Left, Side2: side.Base, Label: "Compare Left and Base", Icon: IconLeftDiff, Key: "1"},
	{Mode: BaseRight, Side1: side.Base, Side2: side.Right, Label: "Compare Base and Right", Icon: IconRightDiff, Key: "2"},
	{Mode: LeftRight, Side1: side.Left, Side2: side.Right, Label: "Compare Left and Right", Icon: IconBranchDiff, Key: "3"},
}

// Actions returns the fixed partial diff menu.
func Actions() []Action {
	return actions[:]
}

// ActionFor returns the menu entry of m.
func ActionFor(m Mode) Action {
	if m < LeftBase || m > LeftRight {
		panic(fmt.Sprintf("invalid partial diff mode %d", int(m)))
	}
	return actions[m]
}

// BuildPairRequest creates a two-way request from sides a and b of a three-way
// request. a comes first, whatever the display order of the sides.
func BuildPairRequest(req *model.DiffRequest, a, b side.Side) *model.DiffRequest {
	return model.NewSimpleDiffRequest(req.Title,
		side.SelectFrom(a, req.Contents), side.SelectFrom(b, req.Contents),
		titleOf(req, a), titleOf(req, b))
}

func titleOf(req *model.DiffRequest, s side.Side) string {
	if len(req.ContentTitles) != side.Count {
		return ""
	}
	return side.SelectFrom(s, req.ContentTitles)
}

// Placement tells a presenter where to open a diff.
type Placement int

const (
	PlacementDefault Placement = iota
	// PlacementOverlay opens the diff over its parent.
	PlacementOverlay
	// PlacementWindow opens the diff in a separate window.
	PlacementWindow
)

// Hints are placement preferences for a presenter.
type Hints struct {
	// Parent names the component the diff was requested from.
	Parent    string
	Placement Placement
}

// Presenter shows a diff request. ShowDiff must not block; a presenter that
// needs time does its work in the background and reports failures itself.
type Presenter interface {
	ShowDiff(owner *host.Context, req *model.DiffRequest, hints Hints)
}

// PresenterFunc adapts a function to a Presenter.
type PresenterFunc func(owner *host.Context, req *model.DiffRequest, hints Hints)

func (f PresenterFunc) ShowDiff(owner *host.Context, req *model.DiffRequest, hints Hints) {
	f(owner, req, hints)
}

// Launcher builds partial diff requests and passes them to a presenter.
type Launcher struct {
	presenter Presenter
}

// NewLauncher creates a Launcher showing diffs with p.
func NewLauncher(p Presenter) *Launcher {
	return &Launcher{presenter: p}
}

// Launch shows the partial diff m of req.
func (l *Launcher) Launch(owner *host.Context, req *model.DiffRequest, m Mode, hints Hints) *model.DiffRequest {
	a := ActionFor(m)
	pair := BuildPairRequest(req, a.Side1, a.Side2)
	if l.presenter != nil {
		l.presenter.ShowDiff(owner, pair, hints)
	}
	return pair
}
