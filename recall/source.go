// Package recall 负责候选集生成：目录快照、预计算榜单，
// 以及多源并发 fan-out 合并。
package recall

import (
	"context"

	"github.com/rushteam/scentkit/core"
)

// Source 表示一个可复用的召回源（目录快照 / 榜单 / ...）。
// 你可以把它理解为“可并发 fan-out 的策略单元”。
type Source interface {
	Name() string
	Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Fragrance, error)
}
