package focus

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"github.com/sokinpui/threeside.go/internal/holder"
	"github.com/sokinpui/threeside.go/internal/host"
	"github.com/sokinpui/threeside.go/internal/side"
	"github.com/sokinpui/threeside.go/model"
)

const hintKeyPrefix = "threeside.current-side."

// Policy chooses the side a tracker starts on when no hint is stored.
type Policy struct {
	// Preference is tried in order; the first side whose holder has content
	// wins. If none has, the first entry is used.
	Preference []side.Side
}

// DefaultPolicy starts on the base side, falling back to left.
var DefaultPolicy = Policy{Preference: []side.Side{side.Base, side.Left}}

// Initial picks the starting side for handles.
func (p Policy) Initial(handles side.Set[holder.Handle]) side.Side {
	if len(p.Preference) == 0 {
		return DefaultPolicy.Initial(handles)
	}
	for _, s := range p.Preference {
		if h := handles.Get(s); h != nil && h.Available() {
			return s
		}
	}
	return p.Preference[0]
}

// HintKey returns the hint store key under which the current side of req is kept.
func HintKey(req *model.DiffRequest) string {
	h := sha256.New()
	h.Write([]byte(req.Title))
	for _, t := range req.ContentTitles {
		h.Write([]byte{0})
		h.Write([]byte(t))
	}
	for _, c := range req.Contents {
		h.Write([]byte{0})
		if c != nil {
			h.Write([]byte(c.Path))
		}
	}
	return hintKeyPrefix + hex.EncodeToString(h.Sum(nil))
}

// Tracker follows which side holds input focus.
type Tracker struct {
	mu        sync.Mutex
	current   side.Side
	listeners []func(side.Side)
	closed    bool
}

// NewTracker creates a tracker starting on the side chosen by policy and
// subscribes to the focus events of every handle.
func NewTracker(handles side.Set[holder.Handle], policy Policy) *Tracker {
	t := &Tracker{current: policy.Initial(handles)}
	for s, h := range handles.All() {
		if h == nil {
			continue
		}
		h.OnFocus(func() { t.SetCurrentSide(s) })
	}
	return t
}

// CurrentSide returns the focused side.
func (t *Tracker) CurrentSide() side.Side {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// SetCurrentSide makes s the focused side. Setting the current side again,
// or any side after Close, does nothing.
func (t *Tracker) SetCurrentSide(s side.Side) {
	if !s.Valid() {
		return
	}
	t.mu.Lock()
	if t.closed || t.current == s {
		t.mu.Unlock()
		return
	}
	t.current = s
	listeners := append([]func(side.Side){}, t.listeners...)
	t.mu.Unlock()

	for _, fn := range listeners {
		fn(s)
	}
}

// Close stops following focus events. The current side is kept.
func (t *Tracker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	t.listeners = nil
}

// OnChange registers fn to be called after the current side changes.
func (t *Tracker) OnChange(fn func(side.Side)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listeners = append(t.listeners, fn)
}

// ProcessContextHints adopts the side stored for req in ctx, if any.
func (t *Tracker) ProcessContextHints(req *model.DiffRequest, ctx *host.Context) {
	if ctx == nil || ctx.Hints == nil {
		return
	}
	v, ok := ctx.Hints.Get(HintKey(req))
	if !ok {
		return
	}
	s, err := side.ParseSide(v)
	if err != nil {
		return
	}
	t.SetCurrentSide(s)
}

// UpdateContextHints stores the current side for req in ctx.
func (t *Tracker) UpdateContextHints(req *model.DiffRequest, ctx *host.Context) {
	if ctx == nil || ctx.Hints == nil {
		return
	}
	ctx.Hints.Put(HintKey(req), t.CurrentSide().String())
}
