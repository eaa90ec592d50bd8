package recall

import (
	"context"

	"github.com/rushteam/scentkit/catalog"
	"github.com/rushteam/scentkit/core"
	"github.com/rushteam/scentkit/pipeline"
	"github.com/rushteam/scentkit/rank"
)

// LeaderboardSource 是榜单召回源：从 KeyValueStore 的有序集合读取
// 预计算的高分榜（见 rank.Leaderboard），并通过目录索引还原实体。
// Store 不可用或榜单为空时回退到对目录快照实时排序。
type LeaderboardSource struct {
	Catalog *catalog.Catalog
	Store   core.KeyValueStore
	Key     string // 默认 rank.DefaultLeaderboardKey

	// TopK 返回榜单前 TopK 名，<= 0 时取 20。
	TopK int
}

func (r *LeaderboardSource) Name() string        { return "recall.leaderboard" }
func (r *LeaderboardSource) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall。
func (r *LeaderboardSource) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Fragrance,
) ([]*core.Fragrance, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口。
func (r *LeaderboardSource) Recall(
	ctx context.Context,
	_ *core.RecommendContext,
) ([]*core.Fragrance, error) {
	if r.Catalog == nil {
		return nil, nil
	}

	topK := r.TopK
	if topK <= 0 {
		topK = 20
	}

	if r.Store != nil {
		lb := &rank.Leaderboard{Store: r.Store, Key: r.Key}
		ids, err := lb.Top(ctx, topK)
		if err == nil && len(ids) > 0 {
			out := make([]*core.Fragrance, 0, len(ids))
			for _, id := range ids {
				if f, ok := r.Catalog.Get(id); ok {
					out = append(out, Candidate(f, "leaderboard"))
				}
			}
			return out, nil
		}
	}

	// fallback：对目录快照实时排序
	out := make([]*core.Fragrance, 0, topK)
	for _, f := range rank.TopRated(r.Catalog.All(), topK) {
		out = append(out, Candidate(f, "leaderboard"))
	}
	return out, nil
}
