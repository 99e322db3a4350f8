package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"golang.org/x/sync/errgroup"

	"github.com/sokinpui/threeside.go/internal/fs"
	"github.com/sokinpui/threeside.go/model"
)

// Special content references.
const (
	StdinRef     = "-"
	ClipboardRef = "clipboard:"
)

// Provider loads contents from files, stdin or the clipboard.
type Provider struct {
	resolver      *fs.PathResolver
	stdin         io.Reader
	readClipboard func() (string, error)
}

// New creates a new Provider resolving relative paths with resolver.
func New(resolver *fs.PathResolver) *Provider {
	return &Provider{
		resolver:      resolver,
		stdin:         os.Stdin,
		readClipboard: clipboard.ReadAll,
	}
}

// Load reads the content behind ref. A path that does not exist yields an
// empty content rather than an error, so that a file missing on one side
// can still be compared.
func (p *Provider) Load(ctx context.Context, ref string) (*model.Content, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch ref {
	case StdinRef:
		data, err := io.ReadAll(p.stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read from stdin: %w", err)
		}
		return fromBytes("", data), nil
	case ClipboardRef:
		content, err := p.readClipboard()
		if err != nil {
			return nil, fmt.Errorf("failed to read from clipboard: %w", err)
		}
		return fromBytes("", []byte(content)), nil
	}

	path := p.resolver.ResolveExisting(ref)
	if path == "" {
		return model.NewEmptyContent(p.resolver.Resolve(ref)), nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	c := fromBytes(path, data)
	c.ReadOnly = info.Mode().Perm()&0200 == 0
	return c, nil
}

// LoadAll loads refs concurrently, keeping their order.
func (p *Provider) LoadAll(ctx context.Context, refs []string) ([]*model.Content, error) {
	stdinRefs := 0
	for _, ref := range refs {
		if ref == StdinRef {
			stdinRefs++
		}
	}
	if stdinRefs > 1 {
		return nil, fmt.Errorf("stdin can supply only one content")
	}

	contents := make([]*model.Content, len(refs))
	g, ctx := errgroup.WithContext(ctx)
	for i, ref := range refs {
		g.Go(func() error {
			c, err := p.Load(ctx, ref)
			if err != nil {
				return err
			}
			contents[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return contents, nil
}

func fromBytes(path string, data []byte) *model.Content {
	if model.IsBinary(data) {
		return model.NewBinaryContent(path, data)
	}
	return &model.Content{Kind: model.KindText, Path: path, Data: data, ReadOnly: true}
}

// DisplayName returns how ref is shown when no title is given.
func DisplayName(ref string) string {
	switch ref {
	case StdinRef:
		return "stdin"
	case ClipboardRef:
		return "clipboard"
	default:
		return strings.TrimPrefix(ref, "./")
	}
}
