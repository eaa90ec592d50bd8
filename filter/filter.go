// Package filter 提供目录子集选择：结构化条件过滤、表达式过滤、
// 以及 Pipeline 中可组合的过滤节点。
package filter

import (
	"context"

	"github.com/rushteam/scentkit/core"
)

// Filter 是过滤器的抽象接口，用于判断一个香水是否应该被过滤掉。
// 返回 true 表示应该过滤（移除），false 表示保留。
type Filter interface {
	// Name 返回过滤器名称
	Name() string

	// ShouldFilter 判断 item 是否应该被过滤
	ShouldFilter(ctx context.Context, rctx *core.RecommendContext, item *core.Fragrance) (bool, error)
}
