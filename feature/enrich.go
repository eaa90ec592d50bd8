// Package feature 提供特征阶段的 Node：在排序前用在线统计刷新候选。
package feature

import (
	"context"

	"github.com/rushteam/scentkit/core"
	"github.com/rushteam/scentkit/pipeline"
	"github.com/rushteam/scentkit/pkg/utils"
)

// StatsEnrichNode 用在线统计服务（如 Feast）刷新候选的评分与评分人数。
// 候选是请求级拷贝，刷新不会写回目录快照。
// 统计服务不可用时保留目录旧值继续执行，不中断推荐链路。
type StatsEnrichNode struct {
	Stats core.StatsService
}

func (n *StatsEnrichNode) Name() string        { return "feature.stats_enrich" }
func (n *StatsEnrichNode) Kind() pipeline.Kind { return pipeline.KindFeature }

func (n *StatsEnrichNode) Process(
	ctx context.Context,
	_ *core.RecommendContext,
	items []*core.Fragrance,
) ([]*core.Fragrance, error) {
	if n.Stats == nil || len(items) == 0 {
		return items, nil
	}

	ids := make([]string, 0, len(items))
	for _, f := range items {
		if f != nil {
			ids = append(ids, f.ID)
		}
	}

	stats, err := n.Stats.GetStats(ctx, ids)
	if err != nil {
		// 降级：保留目录旧值
		return items, nil
	}

	for _, f := range items {
		if f == nil {
			continue
		}
		s, ok := stats[f.ID]
		if !ok {
			continue
		}
		f.Rating = s.Rating
		f.RatingCount = s.RatingCount
		f.PutLabel("stats", utils.Label{Value: "online", Source: "feature"})
	}
	return items, nil
}
