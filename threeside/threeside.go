package threeside

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/sokinpui/threeside.go/cli"
	"github.com/sokinpui/threeside.go/internal/focus"
	"github.com/sokinpui/threeside.go/internal/fs"
	"github.com/sokinpui/threeside.go/internal/holder"
	"github.com/sokinpui/threeside.go/internal/host"
	"github.com/sokinpui/threeside.go/internal/partial"
	"github.com/sokinpui/threeside.go/internal/present"
	"github.com/sokinpui/threeside.go/internal/side"
	"github.com/sokinpui/threeside.go/internal/source"
	"github.com/sokinpui/threeside.go/internal/state"
	"github.com/sokinpui/threeside.go/internal/ui"
	"github.com/sokinpui/threeside.go/internal/viewer"
	"github.com/sokinpui/threeside.go/model"
)

// Owner is the host context owner name of viewers opened by App.
const Owner = "threeside"

// ErrNoViewer is returned when no content factory wants to show a request.
var ErrNoViewer = errors.New("no three-way viewer can show these contents")

// factories are tried in order; the first one passing viewer.CanShow is used.
var factories = []holder.Factory{holder.TextFactory{}, holder.BinaryFactory{}}

// App orchestrates the entire application logic.
type App struct {
	cfg            *cli.Config
	ctx            *host.Context
	pathResolver   *fs.PathResolver
	sourceProvider *source.Provider
	stdout         io.Writer
}

// DetailedError enhances a standard error with a stack trace.
type DetailedError struct {
	Err   error
	Stack []byte
}

func (e *DetailedError) Error() string {
	return e.Err.Error()
}

func (e *DetailedError) Unwrap() error {
	return e.Err
}

// New creates a new App instance.
func New(cfg *cli.Config) (*App, error) {
	ctx := &host.Context{Owner: Owner}
	if cfg.NoState {
		ctx.Hints = host.NewMemoryStore()
	} else {
		stateManager, err := state.New(cfg.StateDir)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize state manager: %w", err)
		}
		ctx.Hints = stateManager
	}
	pathResolver := fs.NewPathResolver(cfg.LookupDirs)

	return &App{
		cfg:            cfg,
		ctx:            ctx,
		pathResolver:   pathResolver,
		sourceProvider: source.New(pathResolver),
		stdout:         os.Stdout,
	}, nil
}

// Context returns the host context shared by the viewers of the app.
func (a *App) Context() *host.Context {
	return a.ctx
}

// Request loads the three contents named by the configuration.
func (a *App) Request(ctx context.Context) (*model.DiffRequest, error) {
	req := &model.DiffRequest{Title: a.cfg.Title}

	if a.cfg.Markdown != "" {
		doc, err := a.sourceProvider.Load(ctx, a.cfg.Markdown)
		if err != nil {
			return nil, err
		}
		if doc.Kind == model.KindEmpty {
			return nil, fmt.Errorf("markdown file %s does not exist", a.cfg.Markdown)
		}
		contents, titles, err := source.FromMarkdown(doc.Data)
		if err != nil {
			return nil, err
		}
		req.Contents = contents
		req.ContentTitles = titles
		if req.Title == "" {
			req.Title = source.DisplayName(a.cfg.Markdown)
		}
	} else {
		refs := []string{a.cfg.Left, a.cfg.Base, a.cfg.Right}
		contents, err := a.sourceProvider.LoadAll(ctx, refs)
		if err != nil {
			return nil, err
		}
		req.Contents = contents
		req.ContentTitles = make([]string, side.Count)
		for i, ref := range refs {
			req.ContentTitles[i] = source.DisplayName(ref)
		}
		if req.Title == "" {
			req.Title = fmt.Sprintf("%s ← %s → %s", req.ContentTitles[0], req.ContentTitles[1], req.ContentTitles[2])
		}
	}

	overrides := []string{a.cfg.LeftTitle, a.cfg.BaseTitle, a.cfg.RightTitle}
	for i, t := range overrides {
		if t != "" {
			req.ContentTitles[i] = t
		}
	}

	for i, c := range req.Contents {
		if c.Kind == model.KindEmpty {
			req.Notifications = append(req.Notifications, fmt.Sprintf("%s content is missing", side.All[i]))
		}
	}
	return req, nil
}

// FactoryFor returns the first content factory that can show req.
func FactoryFor(ctx *host.Context, req *model.DiffRequest) (holder.Factory, error) {
	if len(req.Contents) != side.Count {
		return nil, &side.ArityError{Got: len(req.Contents)}
	}
	for _, f := range factories {
		if viewer.CanShow(ctx, req, f) {
			return f, nil
		}
	}
	return nil, ErrNoViewer
}

// Open creates and initializes a viewer for req showing partial diffs with
// presenter.
func (a *App) Open(req *model.DiffRequest, presenter partial.Presenter) (*viewer.Viewer, error) {
	factory, err := FactoryFor(a.ctx, req)
	if err != nil {
		return nil, err
	}

	policy := focus.DefaultPolicy
	if sides := a.cfg.Sides(); len(sides) > 0 {
		policy = focus.Policy{Preference: sides}
	}

	v, err := viewer.New(a.ctx, req, factory, viewer.WithPolicy(policy), viewer.WithPresenter(presenter))
	if err != nil {
		return nil, err
	}
	v.Init()

	if a.cfg.Side != "" {
		if s, err := side.ParseSide(a.cfg.Side); err == nil {
			v.SetCurrentSide(s)
		}
	}
	return v, nil
}

// Presenter returns the configured presenter for modes that run without the TUI.
func (a *App) Presenter() (partial.Presenter, error) {
	name := a.cfg.Presenter
	if name == cli.PresenterTUI {
		name = present.NameStdout
	}
	return present.New(name, a.stdout, a.cfg.NvimAddress)
}

// Execute runs the non-interactive modes: --partial shows one partial diff,
// --print prints a summary of the comparison.
func (a *App) Execute(ctx context.Context) (err error) {
	// Centralized panic recovery.
	defer func() {
		if r := recover(); r != nil {
			err = &DetailedError{
				Err:   fmt.Errorf("internal panic: %v", r),
				Stack: debug.Stack(),
			}
		}
	}()

	req, err := a.Request(ctx)
	if err != nil {
		return err
	}
	presenter, err := a.Presenter()
	if err != nil {
		return err
	}
	v, err := a.Open(req, presenter)
	if err != nil {
		return err
	}
	defer v.Dispose()

	if a.cfg.Partial != "" {
		mode, err := partial.ParseMode(a.cfg.Partial)
		if err != nil {
			return err
		}
		v.ShowPartialDiff(mode)
		if w, ok := presenter.(interface{ Wait() }); ok {
			w.Wait()
		}
		return nil
	}

	printSummary(v)
	return nil
}

func printSummary(v *viewer.Viewer) {
	req := v.Request()
	sides := make([]ui.SideSummary, 0, side.Count)
	for _, s := range side.All {
		sides = append(sides, ui.SideSummary{
			Side:  s.String(),
			Title: side.SelectFrom(s, req.ContentTitles),
			Kind:  side.SelectFrom(s, req.Contents).Kind.String(),
		})
	}
	ui.PrintComparisonSummary(req.Title, sides, v.CurrentSide().String())
	for _, n := range v.Panel().Notifications() {
		ui.Warning("%s", n)
	}
}
