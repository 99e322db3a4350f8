package viewer

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/sokinpui/threeside.go/internal/holder"
	"github.com/sokinpui/threeside.go/internal/side"
)

// Panel is the container of a viewer: one title per side above the content
// holders, plus persistent notifications.
type Panel struct {
	mu            sync.Mutex
	titles        side.Set[string]
	handles       side.Set[holder.Handle]
	notifications []string
}

func newPanel(titles side.Set[string], handles side.Set[holder.Handle]) *Panel {
	return &Panel{titles: titles, handles: handles}
}

// Title returns the rendered title of s. All titles have the same height.
func (p *Panel) Title(s side.Side) string {
	return p.titles.Get(s)
}

// Handle returns the content holder shown for s.
func (p *Panel) Handle(s side.Side) holder.Handle {
	return p.handles.Get(s)
}

// SetPersistentNotifications replaces the banners shown above the contents.
func (p *Panel) SetPersistentNotifications(n []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notifications = append([]string(nil), n...)
}

// Notifications returns the banners shown above the contents.
func (p *Panel) Notifications() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.notifications...)
}

// GoodContent reports whether at least one side has something to show.
func (p *Panel) GoodContent() bool {
	for _, h := range p.handles.All() {
		if h.Available() {
			return true
		}
	}
	return false
}

// syncHeights pads titles with blank lines so they all render at the height
// of the tallest one.
func syncHeights(titles side.Set[string]) side.Set[string] {
	height := 0
	for _, t := range titles.All() {
		height = max(height, lipgloss.Height(t))
	}
	return side.Map(titles, func(_ side.Side, t string) string {
		if missing := height - lipgloss.Height(t); missing > 0 {
			return t + strings.Repeat("\n", missing)
		}
		return t
	})
}
