package holder

import (
	"errors"
	"strings"
	"testing"

	"github.com/sokinpui/threeside.go/model"
)

func TestFactoryCapabilities(t *testing.T) {
	text := model.NewTextContent("a.txt", "a\n")
	binary := model.NewBinaryContent("a.bin", []byte{0, 1, 2})
	empty := model.NewEmptyContent("gone.txt")

	tests := []struct {
		name      string
		factory   Factory
		content   *model.Content
		canShow   bool
		wantsShow bool
	}{
		{"text/text", TextFactory{}, text, true, true},
		{"text/binary", TextFactory{}, binary, false, false},
		{"text/empty", TextFactory{}, empty, true, false},
		{"binary/text", BinaryFactory{}, text, true, false},
		{"binary/binary", BinaryFactory{}, binary, true, true},
		{"binary/empty", BinaryFactory{}, empty, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.factory.CanShow(tt.content, nil); got != tt.canShow {
				t.Errorf("CanShow() = %v, want %v", got, tt.canShow)
			}
			if got := tt.factory.WantsToShow(tt.content, nil); got != tt.wantsShow {
				t.Errorf("WantsToShow() = %v, want %v", got, tt.wantsShow)
			}
		})
	}
}

func TestTextHandleRendersLines(t *testing.T) {
	h, err := TextFactory{}.Create(model.NewTextContent("a.txt", "alpha\nbeta\n"), nil)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	view := h.Pane().View()
	if !strings.Contains(view, "1  alpha") || !strings.Contains(view, "2  beta") {
		t.Errorf("pane view does not show numbered lines:\n%s", view)
	}
	if !h.Available() {
		t.Error("text handle with text content should be available")
	}
	if err := h.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := h.Close(); !errors.Is(err, ErrClosed) {
		t.Errorf("second Close() = %v, want ErrClosed", err)
	}
}

func TestEmptyHandleIsUnavailable(t *testing.T) {
	h, err := TextFactory{}.Create(model.NewEmptyContent("gone.txt"), nil)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if h.Available() {
		t.Error("empty content should not be available")
	}
}

func TestPaneFocusNotifiesListeners(t *testing.T) {
	p := NewPane(10, 3)
	calls := 0
	p.OnFocus(func() { calls++ })
	p.Focus()
	p.Focus()
	if calls != 2 {
		t.Errorf("listener called %d times, want 2", calls)
	}
	if !p.Focused() {
		t.Error("Focused() = false after Focus")
	}
	p.Blur()
	if p.Focused() {
		t.Error("Focused() = true after Blur")
	}
}

func TestPaneMaxYOffset(t *testing.T) {
	p := NewPane(10, 3)
	p.SetContent("1\n2\n3\n4\n5")
	if got := p.MaxYOffset(); got != 2 {
		t.Errorf("MaxYOffset() = %d, want 2", got)
	}
	p.SetYOffset(10)
	if got := p.YOffset(); got != 2 {
		t.Errorf("YOffset() = %d after scrolling past the end, want 2", got)
	}

	p.SetContent("1")
	if got := p.MaxYOffset(); got != 0 {
		t.Errorf("MaxYOffset() = %d for a short content, want 0", got)
	}
}
