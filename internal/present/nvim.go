package present

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/neovim/go-client/nvim"

	"github.com/sokinpui/threeside.go/internal/host"
	"github.com/sokinpui/threeside.go/internal/partial"
	"github.com/sokinpui/threeside.go/internal/ui"
	"github.com/sokinpui/threeside.go/model"
)

var bufferSeq atomic.Int64

// Nvim opens partial diffs in a running Neovim as a new tab with the two
// contents side by side in diff mode.
type Nvim struct {
	addr string
	done func(error)
	wg   sync.WaitGroup
}

// NewNvim creates a presenter talking to the Neovim listening on addr. An
// empty addr falls back to $NVIM, then $NVIM_LISTEN_ADDRESS.
func NewNvim(addr string) *Nvim {
	return &Nvim{addr: addr}
}

func (p *Nvim) address() string {
	if p.addr != "" {
		return p.addr
	}
	if addr := os.Getenv("NVIM"); addr != "" {
		return addr
	}
	return os.Getenv("NVIM_LISTEN_ADDRESS")
}

// ShowDiff returns immediately; Neovim is driven from a separate goroutine.
func (p *Nvim) ShowDiff(_ *host.Context, req *model.DiffRequest, _ partial.Hints) {
	addr := p.address()
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		err := p.show(addr, req)
		if err != nil {
			ui.Error("Failed to open diff in Neovim: %v", err)
		}
		if p.done != nil {
			p.done(err)
		}
	}()
}

// Wait blocks until every diff handed to ShowDiff has been opened or has
// failed. Short-lived callers use it before exiting.
func (p *Nvim) Wait() {
	p.wg.Wait()
}

func (p *Nvim) show(addr string, req *model.DiffRequest) error {
	if addr == "" {
		return fmt.Errorf("no Neovim address: set --nvim-address or run inside Neovim")
	}
	if len(req.Contents) != 2 {
		return fmt.Errorf("Neovim diff needs 2 contents, got %d", len(req.Contents))
	}

	v, err := nvim.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to connect to Neovim at %s: %w", addr, err)
	}
	defer v.Close()

	b := v.NewBatch()
	for i, cmd := range splitCommands {
		b.Command(cmd)
		b.SetBufferName(0, bufferName(titleAt(req, i)))
		b.SetBufferLines(0, 0, -1, true, bufferLines(req.Contents[i]))
		b.Command("setlocal nomodifiable")
		b.Command("diffthis")
	}
	if err := b.Execute(); err != nil {
		return fmt.Errorf("failed to open diff buffers: %w", err)
	}
	return nil
}

// splitCommands open the scratch buffer of each content in turn.
var splitCommands = [2]string{
	"tabnew | setlocal buftype=nofile bufhidden=wipe noswapfile",
	"vnew | setlocal buftype=nofile bufhidden=wipe noswapfile",
}

// bufferName returns a unique scratch buffer name; Neovim rejects duplicates.
func bufferName(title string) string {
	title = strings.Map(func(r rune) rune {
		if r == ' ' || r == '\n' || r == '\t' {
			return '_'
		}
		return r
	}, title)
	return fmt.Sprintf("threeside://%d/%s", bufferSeq.Add(1), title)
}

func bufferLines(c *model.Content) [][]byte {
	var lines []string
	switch c.Kind {
	case model.KindText:
		lines = c.Lines()
	case model.KindBinary:
		lines = []string{fmt.Sprintf("(binary content, %d bytes)", len(c.Data))}
	}
	out := make([][]byte, len(lines))
	for i, l := range lines {
		out[i] = []byte(l)
	}
	return out
}
