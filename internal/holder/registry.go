package holder

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/sokinpui/threeside.go/internal/host"
	"github.com/sokinpui/threeside.go/internal/side"
	"github.com/sokinpui/threeside.go/model"
)

// DisposalError aggregates the failures of DestroyAll.
type DisposalError struct {
	Sides []side.Side
	Err   error
}

func (e *DisposalError) Error() string {
	names := make([]string, len(e.Sides))
	for i, s := range e.Sides {
		names[i] = s.String()
	}
	return fmt.Sprintf("failed to dispose content holders (%s): %v", strings.Join(names, ", "), e.Err)
}

func (e *DisposalError) Unwrap() error {
	return e.Err
}

// Registry owns the three handles of a viewer.
type Registry struct {
	mu        sync.Mutex
	handles   side.Set[Handle]
	destroyed bool
}

// NewRegistry creates one handle per content. contents must be ordered left,
// base, right. If a handle cannot be created, those already created are
// closed before the error is returned.
func NewRegistry(contents []*model.Content, ctx *host.Context, factory Factory) (*Registry, error) {
	if len(contents) != side.Count {
		return nil, &side.ArityError{Got: len(contents)}
	}

	created := make([]Handle, 0, side.Count)
	for _, s := range side.All {
		h, err := factory.Create(side.SelectFrom(s, contents), ctx)
		if err != nil {
			err = fmt.Errorf("failed to create %s content holder: %w", s, err)
			for _, c := range created {
				if cerr := c.Close(); cerr != nil {
					err = errors.Join(err, cerr)
				}
			}
			return nil, err
		}
		created = append(created, h)
	}

	handles, err := side.SetOf(created)
	if err != nil {
		return nil, err
	}
	return &Registry{handles: handles}, nil
}

// Handles returns all three handles.
func (r *Registry) Handles() side.Set[Handle] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.handles
}

// Handle returns the handle of s.
func (r *Registry) Handle(s side.Side) Handle {
	return r.Handles().Get(s)
}

// Destroyed reports whether DestroyAll has run.
func (r *Registry) Destroyed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.destroyed
}

// DestroyAll closes every handle once. A failure does not stop the remaining
// handles from being closed; all failures are returned as one
// *DisposalError. Calling DestroyAll again does nothing.
func (r *Registry) DestroyAll() error {
	r.mu.Lock()
	if r.destroyed {
		r.mu.Unlock()
		return nil
	}
	r.destroyed = true
	handles := r.handles
	r.mu.Unlock()

	var failed []side.Side
	var errs []error
	for s, h := range handles.All() {
		if err := h.Close(); err != nil {
			failed = append(failed, s)
			errs = append(errs, fmt.Errorf("%s: %w", s, err))
		}
	}
	if len(errs) > 0 {
		return &DisposalError{Sides: failed, Err: errors.Join(errs...)}
	}
	return nil
}
