package model

import (
	"bytes"
	"strings"
)

// ContentKind tells factories what a content holds.
type ContentKind int

const (
	KindText ContentKind = iota
	KindBinary
	// KindEmpty marks a missing content, e.g. a file absent on one side.
	KindEmpty
)

func (k ContentKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindBinary:
		return "binary"
	case KindEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// Content is one input of a comparison.
type Content struct {
	Kind     ContentKind
	Path     string // Empty for stdin, clipboard and inline contents.
	Data     []byte
	ReadOnly bool
}

// NewTextContent creates a read-only text content.
func NewTextContent(path, text string) *Content {
	return &Content{Kind: KindText, Path: path, Data: []byte(text), ReadOnly: true}
}

// NewBinaryContent creates a read-only binary content.
func NewBinaryContent(path string, data []byte) *Content {
	return &Content{Kind: KindBinary, Path: path, Data: data, ReadOnly: true}
}

// NewEmptyContent creates a placeholder for a missing content.
func NewEmptyContent(path string) *Content {
	return &Content{Kind: KindEmpty, Path: path, ReadOnly: true}
}

// Text returns the content as a string with CRLF line endings normalized.
func (c *Content) Text() string {
	return strings.ReplaceAll(string(c.Data), "\r\n", "\n")
}

// Lines splits a text content into lines without their terminators.
func (c *Content) Lines() []string {
	if c.Kind != KindText || len(c.Data) == 0 {
		return nil
	}
	return strings.Split(strings.TrimSuffix(c.Text(), "\n"), "\n")
}

// IsBinary reports whether data looks binary, using the same heuristic as git:
// a NUL byte within the first 8000 bytes.
func IsBinary(data []byte) bool {
	const sniffLen = 8000
	if len(data) > sniffLen {
		data = data[:sniffLen]
	}
	return bytes.IndexByte(data, 0) != -1
}

// DiffRequest describes a comparison of two or three contents.
// A request is not modified after it is built.
type DiffRequest struct {
	Title         string
	Contents      []*Content
	ContentTitles []string
	// Notifications are banners attached to this particular request.
	Notifications []string
}

// NewSimpleDiffRequest builds a two-way request.
func NewSimpleDiffRequest(title string, c1, c2 *Content, title1, title2 string) *DiffRequest {
	return &DiffRequest{
		Title:         title,
		Contents:      []*Content{c1, c2},
		ContentTitles: []string{title1, title2},
	}
}
