package source

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/sokinpui/threeside.go/internal/side"
	"github.com/sokinpui/threeside.go/model"
)

// fencedBlock is a fenced code block together with the paragraph right
// before it, which labels the block.
type fencedBlock struct {
	label string
	body  string
}

func fencedBlocks(src []byte) ([]fencedBlock, error) {
	root := goldmark.DefaultParser().Parse(text.NewReader(src))

	var blocks []fencedBlock
	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		code, ok := n.(*ast.FencedCodeBlock)
		if !entering || !ok {
			return ast.WalkContinue, nil
		}

		var body bytes.Buffer
		segments := code.Lines()
		for i := range segments.Len() {
			seg := segments.At(i)
			body.Write(seg.Value(src))
		}

		var label string
		if p, ok := code.PreviousSibling().(*ast.Paragraph); ok {
			label = strings.TrimSpace(string(p.Text(src)))
		}
		blocks = append(blocks, fencedBlock{label: label, body: body.String()})
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return nil, err
	}
	return blocks, nil
}

// FromMarkdown reads the three sides of a comparison from a markdown
// document. Each side is a fenced code block preceded by a paragraph that
// starts with the side name; the rest of the paragraph is the title:
//
//	left: ours
//
//	```go
//	...
//	```
//
// Contents and titles are returned ordered left, base, right.
func FromMarkdown(source []byte) ([]*model.Content, []string, error) {
	blocks, err := fencedBlocks(source)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse markdown: %w", err)
	}

	var contents side.Set[*model.Content]
	var titles side.Set[string]
	var seen [side.Count]bool
	for _, block := range blocks {
		name, title, _ := strings.Cut(block.label, ":")
		s, err := side.ParseSide(strings.Trim(name, "`* "))
		if err != nil {
			continue
		}
		if seen[s.Index()] {
			return nil, nil, fmt.Errorf("markdown has more than one %s block", s)
		}
		seen[s.Index()] = true
		contents.Put(s, &model.Content{Kind: model.KindText, Data: []byte(block.body), ReadOnly: true})
		titles.Put(s, strings.TrimSpace(title))
	}

	for _, s := range side.All {
		if !seen[s.Index()] {
			return nil, nil, fmt.Errorf("markdown has no %s block", s)
		}
	}
	return contents.Values(), titles.Values(), nil
}
