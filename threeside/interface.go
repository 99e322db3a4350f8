package threeside

import (
	"fmt"

	"github.com/sokinpui/threeside.go/internal/host"
	"github.com/sokinpui/threeside.go/internal/partial"
	"github.com/sokinpui/threeside.go/internal/present"
	"github.com/sokinpui/threeside.go/model"
)

// Input is one side of a comparison for using threeside as a library.
type Input struct {
	Title string
	Data  []byte
}

func (in Input) content() *model.Content {
	if in.Data == nil {
		return model.NewEmptyContent("")
	}
	if model.IsBinary(in.Data) {
		return model.NewBinaryContent("", in.Data)
	}
	return model.NewTextContent("", string(in.Data))
}

func request(title string, left, base, right Input) *model.DiffRequest {
	return &model.DiffRequest{
		Title:         title,
		Contents:      []*model.Content{left.content(), base.content(), right.content()},
		ContentTitles: []string{left.Title, base.Title, right.Title},
	}
}

// CanShowThreeWay reports whether the three inputs can be shown as a
// three-way comparison. A nil Data marks a missing side.
func CanShowThreeWay(left, base, right Input) bool {
	_, err := FactoryFor(host.NewContext(Owner), request("", left, base, right))
	return err == nil
}

// PartialDiff returns the unified diff between two sides of a three-way
// comparison. mode is "left-base", "base-right" or "left-right".
func PartialDiff(left, base, right Input, mode string) (string, error) {
	m, err := partial.ParseMode(mode)
	if err != nil {
		return "", err
	}
	a := partial.ActionFor(m)
	pair := partial.BuildPairRequest(request("", left, base, right), a.Side1, a.Side2)
	text, err := present.UnifiedText(pair)
	if err != nil {
		return "", fmt.Errorf("failed to render %s diff: %w", m, err)
	}
	return text, nil
}
