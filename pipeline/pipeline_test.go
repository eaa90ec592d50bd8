package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/rushteam/scentkit/core"
)

type stubNode struct {
	name string
	kind Kind
	fn   func(items []*core.Fragrance) ([]*core.Fragrance, error)
}

func (n *stubNode) Name() string { return n.name }
func (n *stubNode) Kind() Kind   { return n.kind }

func (n *stubNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Fragrance,
) ([]*core.Fragrance, error) {
	return n.fn(items)
}

func TestPipeline_Run(t *testing.T) {
	p := &Pipeline{
		Nodes: []Node{
			&stubNode{name: "emit", kind: KindRecall, fn: func(_ []*core.Fragrance) ([]*core.Fragrance, error) {
				return []*core.Fragrance{{ID: "a"}, {ID: "b"}, {ID: "c"}}, nil
			}},
			&stubNode{name: "drop-b", kind: KindFilter, fn: func(items []*core.Fragrance) ([]*core.Fragrance, error) {
				out := items[:0:0]
				for _, f := range items {
					if f.ID != "b" {
						out = append(out, f)
					}
				}
				return out, nil
			}},
			&stubNode{name: "top1", kind: KindReRank, fn: func(items []*core.Fragrance) ([]*core.Fragrance, error) {
				return items[:1], nil
			}},
		},
	}

	got, err := p.Run(context.Background(), &core.RecommendContext{}, nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "a" {
		t.Errorf("got %v", got)
	}
}

func TestPipeline_Run_NodeError(t *testing.T) {
	wantErr := errors.New("boom")
	p := &Pipeline{
		Nodes: []Node{
			&stubNode{name: "fail", kind: KindRecall, fn: func(_ []*core.Fragrance) ([]*core.Fragrance, error) {
				return nil, wantErr
			}},
		},
	}

	if _, err := p.Run(context.Background(), &core.RecommendContext{}, nil); !errors.Is(err, wantErr) {
		t.Errorf("Run() error = %v, want %v", err, wantErr)
	}
}

func TestNodeFactory(t *testing.T) {
	f := NewNodeFactory()
	f.Register("stub", func(cfg map[string]interface{}) (Node, error) {
		return &stubNode{name: "stub", kind: KindFilter, fn: func(items []*core.Fragrance) ([]*core.Fragrance, error) {
			return items, nil
		}}, nil
	})

	if _, err := f.Build("stub", nil); err != nil {
		t.Errorf("Build(stub) error = %v", err)
	}
	if _, err := f.Build("unknown", nil); err == nil {
		t.Error("Build(unknown) must fail")
	}
}
