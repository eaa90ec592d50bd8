// Package rank 提供确定性的高分排序：先按评分人数设证据门槛，
// 再按评分降序取 TopN。
package rank

import (
	"context"
	"sort"

	"github.com/rushteam/scentkit/core"
	"github.com/rushteam/scentkit/pipeline"
	"github.com/rushteam/scentkit/pkg/utils"
)

// MinRatingCount 是进入排序的最低评分人数：样本太少的评分不可信。
const MinRatingCount = 50

// TopRated 返回评分最高的至多 limit 个香水。纯函数，不修改输入切片。
//
// 规则：
//   - 评分人数 < MinRatingCount 的先剔除（证据不足）
//   - 按评分降序排序；同分保持输入相对顺序（稳定排序）
//   - limit <= 0 返回空结果
func TopRated(items []*core.Fragrance, limit int) []*core.Fragrance {
	if limit <= 0 {
		return nil
	}

	qualified := make([]*core.Fragrance, 0, len(items))
	for _, f := range items {
		if f == nil || f.RatingCount < MinRatingCount {
			continue
		}
		qualified = append(qualified, f)
	}

	sort.SliceStable(qualified, func(i, j int) bool {
		return qualified[i].Rating > qualified[j].Rating
	})

	if len(qualified) > limit {
		qualified = qualified[:limit]
	}
	return qualified
}

// TopRatedNode 是排序 Node：证据门槛 + 评分降序 + 截断。
type TopRatedNode struct {
	// Limit 要保留的数量；<= 0 表示不截断（只排序）。
	Limit int
}

func (n *TopRatedNode) Name() string {
	return "rank.toprated"
}

func (n *TopRatedNode) Kind() pipeline.Kind {
	return pipeline.KindRank
}

func (n *TopRatedNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Fragrance,
) ([]*core.Fragrance, error) {
	limit := n.Limit
	if limit <= 0 {
		limit = len(items)
	}

	out := TopRated(items, limit)
	for _, f := range out {
		f.PutLabel("rank", utils.Label{Value: "toprated", Source: "rank"})
	}
	return out, nil
}
