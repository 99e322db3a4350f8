package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sokinpui/threeside.go/cli"
	"github.com/sokinpui/threeside.go/internal/host"
	"github.com/sokinpui/threeside.go/internal/partial"
	"github.com/sokinpui/threeside.go/internal/present"
	"github.com/sokinpui/threeside.go/internal/side"
	"github.com/sokinpui/threeside.go/internal/ui"
	"github.com/sokinpui/threeside.go/internal/viewer"
	"github.com/sokinpui/threeside.go/model"
	"github.com/sokinpui/threeside.go/threeside"
)

// --- Styles ---
var (
	headerStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")) // Mauve
	errorStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("197"))           // Red
	warningStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	faintStyle        = lipgloss.NewStyle().Faint(true)
	titleStyle        = lipgloss.NewStyle().Bold(true)
	paneStyle         = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	selectedPaneStyle = paneStyle.BorderForeground(lipgloss.Color("63"))
	addedStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	removedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("197"))
	hunkStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
)

// --- Messages ---
type loadedMsg struct {
	viewer *viewer.Viewer
}

type partialDiffMsg struct {
	title string
	text  string
}

type errorMsg struct{ err error }

func (e errorMsg) Error() string { return e.err.Error() }

// programRef is shared by every copy of the model so the program can be set
// after tea.NewProgram has taken its copy. It also hands the viewer opened
// by load to quit, which may run before loadedMsg is delivered.
type programRef struct {
	p *tea.Program

	mu       sync.Mutex
	viewer   *viewer.Viewer
	quitting bool
}

// opened records v as the viewer of the program. It reports false, after
// disposing v, if the program is already quitting.
func (r *programRef) opened(v *viewer.Viewer) bool {
	r.mu.Lock()
	if r.quitting {
		r.mu.Unlock()
		v.Dispose()
		return false
	}
	r.viewer = v
	r.mu.Unlock()
	return true
}

// quit marks the program as quitting and disposes the viewer opened so far.
func (r *programRef) quit() {
	r.mu.Lock()
	r.quitting = true
	v := r.viewer
	r.mu.Unlock()
	if v != nil {
		v.Dispose()
	}
}

func (r *programRef) isQuitting() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.quitting
}

// overlayPresenter shows partial diffs over the panes of the running program.
type overlayPresenter struct {
	ref *programRef
}

func (o overlayPresenter) ShowDiff(_ *host.Context, req *model.DiffRequest, _ partial.Hints) {
	msg := renderPartial(req)
	if o.ref.p == nil {
		return
	}
	// Send blocks until Update receives it, and ShowDiff is called from Update.
	go o.ref.p.Send(msg)
}

func renderPartial(req *model.DiffRequest) tea.Msg {
	text, err := present.UnifiedText(req)
	if err != nil {
		return errorMsg{err}
	}
	if text == "" {
		text = "Contents are identical."
	}
	title := strings.Join(req.ContentTitles, " ↔ ")
	return partialDiffMsg{title: title, text: text}
}

// --- Model ---
type Model struct {
	app     *threeside.App
	cfg     *cli.Config
	ref     *programRef
	keys    keyMap
	spinner spinner.Model
	state   state
	viewer  *viewer.Viewer
	overlay viewport.Model
	ovTitle string
	width   int
	height  int
	offset  int // first visible line of all panes
	err     error
}

type state int

const (
	stateLoading state = iota
	stateViewing
	stateOverlay
	stateError
)

func New(app *threeside.App, cfg *cli.Config) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return Model{
		app:     app,
		cfg:     cfg,
		ref:     &programRef{},
		keys:    defaultKeyMap(),
		spinner: s,
		state:   stateLoading,
		overlay: viewport.New(80, 20),
	}
}

// SetProgram gives the model the program running it, for the overlay presenter.
func (m Model) SetProgram(p *tea.Program) {
	m.ref.p = p
}

// Viewer returns the open viewer, or nil while loading.
func (m Model) Viewer() *viewer.Viewer {
	return m.viewer
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load)
}

func (m Model) load() tea.Msg {
	req, err := m.app.Request(context.Background())
	if err != nil {
		return errorMsg{err}
	}

	// Text presenters would write over the screen, so they use the overlay too.
	var presenter partial.Presenter = overlayPresenter{ref: m.ref}
	if m.cfg.Presenter == cli.PresenterClipboard || m.cfg.Presenter == cli.PresenterNvim {
		presenter, err = m.app.Presenter()
		if err != nil {
			return errorMsg{err}
		}
	}

	if m.ref.isQuitting() {
		return nil
	}
	v, err := m.app.Open(req, presenter)
	if err != nil {
		return errorMsg{err}
	}
	// Still returned when quitting so the caller sees the disposed viewer.
	m.ref.opened(v)
	return loadedMsg{viewer: v}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case loadedMsg:
		if m.ref.isQuitting() {
			return m, nil
		}
		m.state = stateViewing
		m.viewer = msg.viewer
		m.layout()
		m.focusSide(m.viewer.CurrentSide())
		return m, nil

	case partialDiffMsg:
		if m.state != stateViewing {
			return m, nil
		}
		m.viewer.UpdateContextHints()
		m.state = stateOverlay
		m.ovTitle = msg.title
		m.overlay.SetContent(colorizeDiff(msg.text))
		m.overlay.GotoTop()
		return m, nil

	case errorMsg:
		m.state = stateError
		m.err = msg.err
		return m, tea.Quit

	case tea.MouseMsg:
		if m.state == stateViewing && msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			if s, ok := m.sideAt(msg.X); ok {
				m.focusSide(s)
			}
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	default:
		var cmd tea.Cmd
		if m.state == stateLoading {
			m.spinner, cmd = m.spinner.Update(msg)
		}
		return m, cmd
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case stateOverlay:
		switch {
		case key.Matches(msg, m.keys.Close), key.Matches(msg, m.keys.Quit) && msg.String() == "q":
			m.state = stateViewing
		case key.Matches(msg, m.keys.Quit):
			return m.quit()
		case key.Matches(msg, m.keys.Down):
			m.overlay.ScrollDown(1)
		case key.Matches(msg, m.keys.Up):
			m.overlay.ScrollUp(1)
		case key.Matches(msg, m.keys.PageDown):
			m.overlay.HalfPageDown()
		case key.Matches(msg, m.keys.PageUp):
			m.overlay.HalfPageUp()
		}
		return m, nil

	case stateViewing:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m.quit()
		case key.Matches(msg, m.keys.Next):
			m.focusSide(m.viewer.CurrentSide().Next())
		case key.Matches(msg, m.keys.Prev):
			m.focusSide(m.viewer.CurrentSide().Prev())
		case key.Matches(msg, m.keys.Down):
			m.scroll(1)
		case key.Matches(msg, m.keys.Up):
			m.scroll(-1)
		case key.Matches(msg, m.keys.PageDown):
			m.scroll(m.paneHeight() / 2)
		case key.Matches(msg, m.keys.PageUp):
			m.scroll(-m.paneHeight() / 2)
		default:
			for mode, b := range m.keys.Partial {
				if key.Matches(msg, b) {
					m.viewer.ShowPartialDiff(mode)
					break
				}
			}
		}
		return m, nil

	default:
		if key.Matches(msg, m.keys.Quit) {
			return m.quit()
		}
		return m, nil
	}
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.ref.quit()
	return m, tea.Quit
}

// focusSide gives input focus to the widget of s. The viewer follows through
// the widget's focus event.
func (m *Model) focusSide(s side.Side) {
	for sd, h := range m.viewer.Handles().All() {
		if sd != s {
			h.PreferredFocus().Blur()
		}
	}
	m.viewer.Handles().Get(s).PreferredFocus().Focus()
}

// scroll moves all three panes together. The offset is kept in the model so
// a shorter pane stopping at its end does not put the panes out of step.
func (m *Model) scroll(n int) {
	limit := 0
	for _, h := range m.viewer.Handles().All() {
		limit = max(limit, h.Pane().MaxYOffset())
	}
	m.offset = min(max(m.offset+n, 0), limit)
	for _, h := range m.viewer.Handles().All() {
		h.Pane().SetYOffset(m.offset)
	}
}

func (m Model) paneWidth() int {
	if m.width == 0 {
		return 40
	}
	// Each pane has a border of one cell on both sides.
	return max(m.width/side.Count-2, 10)
}

func (m Model) chromeHeight() int {
	h := 2 // header and footer
	if m.viewer != nil {
		h += lipgloss.Height(m.viewer.Panel().Title(side.Base))
		h += len(m.viewer.Panel().Notifications())
	}
	return h + 2 // pane borders
}

func (m Model) paneHeight() int {
	if m.height == 0 {
		return 20
	}
	return max(m.height-m.chromeHeight(), 3)
}

func (m *Model) layout() {
	m.overlay.Width = max(m.width, 20)
	m.overlay.Height = max(m.height-3, 3)
	if m.viewer == nil {
		return
	}
	for _, h := range m.viewer.Handles().All() {
		h.Pane().SetSize(m.paneWidth(), m.paneHeight())
	}
	m.scroll(0)
}

// sideAt maps a screen column to the side displayed there.
func (m Model) sideAt(x int) (side.Side, bool) {
	col := x / (m.paneWidth() + 2)
	if col < 0 || col >= side.Count {
		return 0, false
	}
	return side.All[col], true
}

func (m Model) View() string {
	switch m.state {
	case stateLoading:
		return fmt.Sprintf("%s Loading contents...", m.spinner.View())
	case stateError:
		return errorStyle.Render("Error: "+m.err.Error()) + "\n"
	case stateOverlay:
		return m.renderOverlay()
	case stateViewing:
		return m.renderPanes()
	default:
		return ""
	}
}

func (m Model) renderPanes() string {
	var b strings.Builder
	req := m.viewer.Request()
	b.WriteString(headerStyle.Render(req.Title))
	b.WriteString("\n")
	for _, n := range m.viewer.Panel().Notifications() {
		b.WriteString(warningStyle.Render("! " + n))
		b.WriteString("\n")
	}

	current := m.viewer.CurrentSide()
	columns := make([]string, 0, side.Count)
	for s, h := range m.viewer.Handles().All() {
		style := paneStyle
		if s == current {
			style = selectedPaneStyle
		}
		title := titleStyle.Width(m.paneWidth()).Render(m.viewer.Panel().Title(s))
		columns = append(columns, lipgloss.JoinVertical(lipgloss.Left,
			" "+title,
			style.Render(h.Pane().View()),
		))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, columns...))
	b.WriteString("\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m Model) renderHelp() string {
	parts := []string{m.keys.Next.Help().Key + " " + m.keys.Next.Help().Desc}
	for _, a := range partial.Actions() {
		h := m.keys.Partial[a.Mode].Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	parts = append(parts, m.keys.Quit.Help().Key+" "+m.keys.Quit.Help().Desc)
	return faintStyle.Render(strings.Join(parts, " • "))
}

func (m Model) renderOverlay() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(m.ovTitle))
	b.WriteString("\n")
	b.WriteString(m.overlay.View())
	b.WriteString("\n")
	b.WriteString(faintStyle.Render("j/k scroll • esc back"))
	return b.String()
}

func colorizeDiff(text string) string {
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			lines[i] = titleStyle.Render(line)
		case strings.HasPrefix(line, "@@"):
			lines[i] = hunkStyle.Render(line)
		case strings.HasPrefix(line, "+"):
			lines[i] = addedStyle.Render(line)
		case strings.HasPrefix(line, "-"):
			lines[i] = removedStyle.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

// Err returns the error that stopped the program, if any.
func (m Model) Err() error {
	return m.err
}

// Run starts the TUI and blocks until it exits. Log lines are discarded while
// the program owns the terminal.
func Run(app *threeside.App, cfg *cli.Config) error {
	prev := ui.SetOutput(io.Discard)
	defer ui.SetOutput(prev)

	model := New(app, cfg)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithOutput(os.Stdout))
	model.SetProgram(p)
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok && fm.err != nil {
		return fm.err
	}
	return nil
}
