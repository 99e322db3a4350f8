package holder

import (
	"sync"

	"github.com/charmbracelet/bubbles/viewport"
)

// Pane is the scrollable widget of one content holder.
type Pane struct {
	mu        sync.Mutex
	viewport  viewport.Model
	focused   bool
	listeners []func()
}

// NewPane creates a pane of the given size.
func NewPane(width, height int) *Pane {
	return &Pane{viewport: viewport.New(width, height)}
}

// SetContent replaces the text shown in the pane and scrolls to the top.
func (p *Pane) SetContent(s string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.viewport.SetContent(s)
	p.viewport.GotoTop()
}

// SetSize resizes the pane.
func (p *Pane) SetSize(width, height int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.viewport.Width = width
	p.viewport.Height = height
}

// ScrollDown moves the pane n lines down.
func (p *Pane) ScrollDown(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.viewport.ScrollDown(n)
}

// ScrollUp moves the pane n lines up.
func (p *Pane) ScrollUp(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.viewport.ScrollUp(n)
}

// YOffset returns the first visible line.
func (p *Pane) YOffset() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.viewport.YOffset
}

// SetYOffset scrolls so that line n is the first visible line.
func (p *Pane) SetYOffset(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.viewport.SetYOffset(n)
}

// MaxYOffset returns the largest offset that still fills the pane.
func (p *Pane) MaxYOffset() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return max(p.viewport.TotalLineCount()-p.viewport.Height, 0)
}

// View renders the visible part of the pane.
func (p *Pane) View() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.viewport.View()
}

// OnFocus registers fn to be called whenever the pane gains focus.
func (p *Pane) OnFocus(fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listeners = append(p.listeners, fn)
}

// Focus marks the pane focused and notifies the focus listeners.
func (p *Pane) Focus() {
	p.mu.Lock()
	p.focused = true
	listeners := append([]func(){}, p.listeners...)
	p.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

// Blur clears the focus flag. Listeners are not notified.
func (p *Pane) Blur() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.focused = false
}

// Focused reports whether the pane has focus.
func (p *Pane) Focused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.focused
}
