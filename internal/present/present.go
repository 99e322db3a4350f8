package present

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/sokinpui/threeside.go/internal/host"
	"github.com/sokinpui/threeside.go/internal/partial"
	"github.com/sokinpui/threeside.go/internal/ui"
	"github.com/sokinpui/threeside.go/model"
)

// Names of the presenters selectable from the command line.
const (
	NameStdout    = "stdout"
	NameClipboard = "clipboard"
	NameNvim      = "nvim"
)

// contextLines is the number of unchanged lines around each hunk.
const contextLines = 3

// UnifiedText renders a two-way request as a unified diff.
func UnifiedText(req *model.DiffRequest) (string, error) {
	if len(req.Contents) != 2 {
		return "", fmt.Errorf("unified diff needs 2 contents, got %d", len(req.Contents))
	}
	a, b := req.Contents[0], req.Contents[1]
	fromFile, toFile := titleAt(req, 0), titleAt(req, 1)

	if a.Kind == model.KindBinary || b.Kind == model.KindBinary {
		if a.Kind == b.Kind && string(a.Data) == string(b.Data) {
			return "", nil
		}
		return fmt.Sprintf("Binary contents %s and %s differ\n", fromFile, toFile), nil
	}

	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(a.Text()),
		B:        difflib.SplitLines(b.Text()),
		FromFile: fromFile,
		ToFile:   toFile,
		Context:  contextLines,
	}
	text, err := difflib.GetUnifiedDiffString(ud)
	if err != nil {
		return "", fmt.Errorf("failed to compute diff: %w", err)
	}
	return text, nil
}

func titleAt(req *model.DiffRequest, i int) string {
	if i < len(req.ContentTitles) && req.ContentTitles[i] != "" {
		return req.ContentTitles[i]
	}
	if c := req.Contents[i]; c != nil && c.Path != "" {
		return c.Path
	}
	return fmt.Sprintf("content %d", i+1)
}

// Writer prints partial diffs to an io.Writer.
type Writer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriter creates a presenter writing to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (p *Writer) ShowDiff(_ *host.Context, req *model.DiffRequest, _ partial.Hints) {
	text, err := UnifiedText(req)
	if err != nil {
		ui.Error("Failed to show diff: %v", err)
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if req.Title != "" {
		fmt.Fprintf(p.w, "# %s\n", req.Title)
	}
	if text == "" {
		fmt.Fprintln(p.w, "Contents are identical.")
		return
	}
	fmt.Fprint(p.w, text)
	if !strings.HasSuffix(text, "\n") {
		fmt.Fprintln(p.w)
	}
}

// Clipboard copies partial diffs to the system clipboard.
type Clipboard struct {
	write func(string) error
}

// NewClipboard creates a presenter using the system clipboard.
func NewClipboard() *Clipboard {
	return &Clipboard{write: clipboard.WriteAll}
}

func (p *Clipboard) ShowDiff(_ *host.Context, req *model.DiffRequest, _ partial.Hints) {
	text, err := UnifiedText(req)
	if err != nil {
		ui.Error("Failed to show diff: %v", err)
		return
	}
	if err := p.write(text); err != nil {
		ui.Error("Failed to copy diff to clipboard: %v", err)
		return
	}
	ui.Success("Copied diff of %s and %s to clipboard.", titleAt(req, 0), titleAt(req, 1))
}

// New returns the presenter called name. nvimAddr is only used by the nvim
// presenter.
func New(name string, w io.Writer, nvimAddr string) (partial.Presenter, error) {
	switch name {
	case NameStdout, "":
		return NewWriter(w), nil
	case NameClipboard:
		return NewClipboard(), nil
	case NameNvim:
		return NewNvim(nvimAddr), nil
	default:
		return nil, fmt.Errorf("unknown presenter %q", name)
	}
}
