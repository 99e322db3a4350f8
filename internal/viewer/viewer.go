// Package viewer coordinates the three content holders of a three-way diff:
// which side has focus, what is remembered between runs and which two-way
// diffs can be derived.
package viewer

import (
	"sync"

	"github.com/sokinpui/threeside.go/internal/focus"
	"github.com/sokinpui/threeside.go/internal/holder"
	"github.com/sokinpui/threeside.go/internal/host"
	"github.com/sokinpui/threeside.go/internal/partial"
	"github.com/sokinpui/threeside.go/internal/side"
	"github.com/sokinpui/threeside.go/internal/ui"
	"github.com/sokinpui/threeside.go/model"
)

// CanShow reports whether a three-way viewer built with factory should
// handle req: it must have three contents, factory must be able to show all
// of them and want to show at least one.
func CanShow(ctx *host.Context, req *model.DiffRequest, factory holder.Factory) bool {
	if req == nil || len(req.Contents) != side.Count {
		return false
	}
	canShow := true
	wantShow := false
	for _, c := range req.Contents {
		canShow = canShow && factory.CanShow(c, ctx)
		wantShow = wantShow || factory.WantsToShow(c, ctx)
	}
	return canShow && wantShow
}

// Option configures a Viewer.
type Option func(*options)

type options struct {
	policy    focus.Policy
	presenter partial.Presenter
}

// WithPolicy sets how the starting side is chosen when no hint is stored.
func WithPolicy(p focus.Policy) Option {
	return func(o *options) { o.policy = p }
}

// WithPresenter sets where partial diffs are shown.
func WithPresenter(p partial.Presenter) Option {
	return func(o *options) { o.presenter = p }
}

// Viewer is a three-way diff viewer.
type Viewer struct {
	ctx      *host.Context
	request  *model.DiffRequest
	registry *holder.Registry
	tracker  *focus.Tracker
	panel    *Panel
	launcher *partial.Launcher

	mu          sync.Mutex
	initialized bool
	disposed    bool
}

// New creates a viewer for req. req must carry exactly three contents,
// ordered left, base, right; use CanShow first.
func New(ctx *host.Context, req *model.DiffRequest, factory holder.Factory, opts ...Option) (*Viewer, error) {
	o := options{policy: focus.DefaultPolicy}
	for _, opt := range opts {
		opt(&o)
	}
	if ctx == nil {
		ctx = &host.Context{}
	}
	if len(req.Contents) != side.Count {
		return nil, &side.ArityError{Got: len(req.Contents)}
	}

	registry, err := holder.NewRegistry(req.Contents, ctx, factory)
	if err != nil {
		return nil, err
	}

	handles := registry.Handles()
	v := &Viewer{
		ctx:      ctx,
		request:  req,
		registry: registry,
		tracker:  focus.NewTracker(handles, o.policy),
		panel:    newPanel(syncHeights(createTitles(req)), handles),
		launcher: partial.NewLauncher(o.presenter),
	}
	return v, nil
}

func createTitles(req *model.DiffRequest) side.Set[string] {
	titles := make([]string, side.Count)
	for i := range titles {
		if i < len(req.ContentTitles) && req.ContentTitles[i] != "" {
			titles[i] = req.ContentTitles[i]
			continue
		}
		if c := req.Contents[i]; c != nil && c.Path != "" {
			titles[i] = c.Path
			continue
		}
		titles[i] = side.All[i].String()
	}
	set, _ := side.SetOf(titles)
	return set
}

// Init runs once after construction: it restores the stored side and shows
// the host and request notifications.
func (v *Viewer) Init() {
	v.mu.Lock()
	if v.initialized || v.disposed {
		v.mu.Unlock()
		return
	}
	v.initialized = true
	v.mu.Unlock()

	v.ProcessContextHints()
	notifications := append(append([]string(nil), v.ctx.Notifications...), v.request.Notifications...)
	v.panel.SetPersistentNotifications(notifications)
}

// Dispose stores the current side, stops following focus events and closes
// the content holders. Disposal failures are reported, not returned to the
// caller as fatal; the returned error is informational. Only the first call
// has an effect.
func (v *Viewer) Dispose() error {
	v.mu.Lock()
	if v.disposed {
		v.mu.Unlock()
		return nil
	}
	v.disposed = true
	v.mu.Unlock()

	v.tracker.UpdateContextHints(v.request, v.ctx)
	v.tracker.Close()
	err := v.registry.DestroyAll()
	if err != nil {
		ui.Warning("%v", err)
	}
	return err
}

// Disposed reports whether Dispose has run.
func (v *Viewer) Disposed() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.disposed
}

// ProcessContextHints adopts the side stored for this request in the host context.
func (v *Viewer) ProcessContextHints() {
	v.tracker.ProcessContextHints(v.request, v.ctx)
}

// UpdateContextHints stores the current side in the host context.
func (v *Viewer) UpdateContextHints() {
	if v.Disposed() {
		return
	}
	v.tracker.UpdateContextHints(v.request, v.ctx)
}

// Request returns the request being shown.
func (v *Viewer) Request() *model.DiffRequest {
	return v.request
}

// Context returns the host context.
func (v *Viewer) Context() *host.Context {
	return v.ctx
}

// Panel returns the container of the viewer.
func (v *Viewer) Panel() *Panel {
	return v.panel
}

// Handles returns the three content holders.
func (v *Viewer) Handles() side.Set[holder.Handle] {
	return v.registry.Handles()
}

// CurrentSide returns the focused side.
func (v *Viewer) CurrentSide() side.Side {
	return v.tracker.CurrentSide()
}

// SetCurrentSide moves focus to s.
func (v *Viewer) SetCurrentSide(s side.Side) {
	if v.Disposed() {
		return
	}
	v.tracker.SetCurrentSide(s)
}

// OnSideChange registers fn to be called when the current side changes.
func (v *Viewer) OnSideChange(fn func(side.Side)) {
	v.tracker.OnChange(fn)
}

// CurrentHandle returns the holder of the focused side.
func (v *Viewer) CurrentHandle() holder.Handle {
	return v.registry.Handle(v.CurrentSide())
}

// CurrentContent returns the content of the focused side.
func (v *Viewer) CurrentContent() *model.Content {
	return side.SelectFrom(v.CurrentSide(), v.request.Contents)
}

// CurrentPath returns the file behind the focused side, or "" if it has none.
func (v *Viewer) CurrentPath() string {
	if c := v.CurrentContent(); c != nil {
		return c.Path
	}
	return ""
}

// PreferredFocus returns the widget that should receive focus, or nil if no
// side has anything to show.
func (v *Viewer) PreferredFocus() *holder.Pane {
	if !v.panel.GoodContent() {
		return nil
	}
	return v.CurrentHandle().PreferredFocus()
}

// ShowPartialDiff shows the two-way diff m of the compared contents. It
// returns the request handed to the presenter.
func (v *Viewer) ShowPartialDiff(m partial.Mode) *model.DiffRequest {
	return v.launcher.Launch(v.ctx, v.request, m, partial.Hints{
		Parent:    v.ctx.Owner,
		Placement: partial.PlacementOverlay,
	})
}
