package holder

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/sokinpui/threeside.go/internal/host"
	"github.com/sokinpui/threeside.go/model"
)

// Default pane size before the first layout.
const (
	defaultWidth  = 40
	defaultHeight = 20
)

// ErrClosed is returned when a handle is closed twice.
var ErrClosed = errors.New("content holder already closed")

// Handle is the live viewer resource of one side.
type Handle interface {
	Content() *model.Content
	// Pane is the widget showing the content.
	Pane() *Pane
	// PreferredFocus is the widget that should receive focus when the side
	// becomes current.
	PreferredFocus() *Pane
	// Available reports whether there is something to show.
	Available() bool
	// OnFocus registers fn to be called when the handle's widget gains focus.
	OnFocus(fn func())
	Close() error
}

// Factory creates handles for one kind of content.
type Factory interface {
	Create(content *model.Content, ctx *host.Context) (Handle, error)
	// CanShow reports whether the factory is able to render content.
	CanShow(content *model.Content, ctx *host.Context) bool
	// WantsToShow reports whether the factory is the preferred renderer for content.
	WantsToShow(content *model.Content, ctx *host.Context) bool
}

// baseHandle implements the parts of Handle shared by all content kinds.
type baseHandle struct {
	mu      sync.Mutex
	content *model.Content
	pane    *Pane
	closed  bool
}

func newBaseHandle(content *model.Content, text string) *baseHandle {
	pane := NewPane(defaultWidth, defaultHeight)
	pane.SetContent(text)
	return &baseHandle{content: content, pane: pane}
}

func (h *baseHandle) Content() *model.Content { return h.content }

func (h *baseHandle) Pane() *Pane { return h.pane }

func (h *baseHandle) PreferredFocus() *Pane { return h.pane }

func (h *baseHandle) OnFocus(fn func()) { h.pane.OnFocus(fn) }

func (h *baseHandle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrClosed
	}
	h.closed = true
	h.pane.SetContent("")
	return nil
}

// Closed reports whether Close has been called.
func (h *baseHandle) Closed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closed
}

// TextHandle shows a text content with line numbers.
type TextHandle struct {
	*baseHandle
}

func (h *TextHandle) Available() bool {
	return h.content.Kind == model.KindText
}

func renderText(content *model.Content) string {
	if content.Kind == model.KindEmpty {
		return "(no content)"
	}
	lines := content.Lines()
	var b strings.Builder
	for i, line := range lines {
		fmt.Fprintf(&b, "%4d  %s", i+1, line)
		if i < len(lines)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// TextFactory renders text and missing contents.
type TextFactory struct{}

func (TextFactory) Create(content *model.Content, _ *host.Context) (Handle, error) {
	if content == nil {
		return nil, fmt.Errorf("nil content")
	}
	if content.Kind == model.KindBinary {
		return nil, fmt.Errorf("text holder cannot show binary content %q", content.Path)
	}
	return &TextHandle{baseHandle: newBaseHandle(content, renderText(content))}, nil
}

func (TextFactory) CanShow(content *model.Content, _ *host.Context) bool {
	return content != nil && (content.Kind == model.KindText || content.Kind == model.KindEmpty)
}

func (TextFactory) WantsToShow(content *model.Content, _ *host.Context) bool {
	return content != nil && content.Kind == model.KindText
}

// BinaryHandle shows the size and checksum of a content.
type BinaryHandle struct {
	*baseHandle
}

func (h *BinaryHandle) Available() bool {
	return h.content.Kind != model.KindEmpty
}

func renderBinary(content *model.Content) string {
	if content.Kind == model.KindEmpty {
		return "(no content)"
	}
	sum := sha256.Sum256(content.Data)
	return fmt.Sprintf("%s content\n%d bytes\nsha256 %x", content.Kind, len(content.Data), sum)
}

// BinaryFactory renders any content as a size and checksum summary.
type BinaryFactory struct{}

func (BinaryFactory) Create(content *model.Content, _ *host.Context) (Handle, error) {
	if content == nil {
		return nil, fmt.Errorf("nil content")
	}
	return &BinaryHandle{baseHandle: newBaseHandle(content, renderBinary(content))}, nil
}

func (BinaryFactory) CanShow(content *model.Content, _ *host.Context) bool {
	return content != nil
}

func (BinaryFactory) WantsToShow(content *model.Content, _ *host.Context) bool {
	return content != nil && content.Kind == model.KindBinary
}
