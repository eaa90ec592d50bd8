package rerank

import (
	"context"
	"strings"

	"github.com/rushteam/scentkit/core"
	"github.com/rushteam/scentkit/pipeline"
)

// AccordDiversity 是香型多样性重排：按主香调（MainAccords 首项）去重，
// 每个香型只保留排序最靠前的一支，避免给用户推三支几乎同味的香水。
// 没有香调信息的香水直接保留。
type AccordDiversity struct{}

func (n *AccordDiversity) Name() string {
	return "rerank.accord_diversity"
}

func (n *AccordDiversity) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *AccordDiversity) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Fragrance,
) ([]*core.Fragrance, error) {
	if len(items) == 0 {
		return items, nil
	}

	seen := make(map[string]bool, 16)
	out := make([]*core.Fragrance, 0, len(items))

	for _, f := range items {
		if f == nil {
			continue
		}
		if len(f.MainAccords) == 0 {
			out = append(out, f)
			continue
		}

		accord := strings.ToLower(strings.TrimSpace(f.MainAccords[0]))
		if accord == "" || !seen[accord] {
			seen[accord] = true
			out = append(out, f)
		}
	}

	return out, nil
}
