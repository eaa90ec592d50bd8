package recall

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/scentkit/core"
	"github.com/rushteam/scentkit/pipeline"
)

// 合并策略
const (
	MergeUnion = "union" // 所有源的并集，按源优先级顺序去重（默认）
	MergeFirst = "first" // 取第一个有结果的源（按 Sources 顺序）
)

// Fanout 是一个 Recall Node：并发执行多个召回源，并合并结果。
// 支持超时、限流、优先级合并策略。
type Fanout struct {
	Sources       []Source
	Timeout       time.Duration // 每个召回源的超时时间，0 表示不限制
	MaxConcurrent int           // 最大并发数（0 表示无限制）
	MergeStrategy string        // union / first（优先级按 Sources 顺序）
}

func (n *Fanout) Name() string        { return "recall.fanout" }
func (n *Fanout) Kind() pipeline.Kind { return pipeline.KindRecall }

func (n *Fanout) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Fragrance,
) ([]*core.Fragrance, error) {
	if len(n.Sources) == 0 {
		return nil, nil
	}

	var (
		mu      sync.Mutex
		results = make([][]*core.Fragrance, len(n.Sources))
		eg, _   = errgroup.WithContext(ctx)
	)
	if n.MaxConcurrent > 0 {
		eg.SetLimit(n.MaxConcurrent)
	}

	for i, src := range n.Sources {
		i, s := i, src
		eg.Go(func() error {
			recallCtx := ctx
			if n.Timeout > 0 {
				var cancel context.CancelFunc
				recallCtx, cancel = context.WithTimeout(ctx, n.Timeout)
				defer cancel()
			}

			items, err := s.Recall(recallCtx, rctx)
			if err != nil {
				// 单个召回源失败不拖垮整次请求，留空即可
				return nil
			}

			mu.Lock()
			results[i] = items
			mu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return n.merge(results), nil
}

// merge 按优先级（Sources 顺序）合并各源结果并按 ID 去重。
func (n *Fanout) merge(results [][]*core.Fragrance) []*core.Fragrance {
	if n.MergeStrategy == MergeFirst {
		for _, items := range results {
			if len(items) > 0 {
				return items
			}
		}
		return nil
	}

	seen := make(map[string]bool, 64)
	var out []*core.Fragrance
	for _, items := range results {
		for _, f := range items {
			if f == nil || seen[f.ID] {
				continue
			}
			seen[f.ID] = true
			out = append(out, f)
		}
	}
	return out
}
