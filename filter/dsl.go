package filter

import (
	"context"

	"github.com/rushteam/scentkit/core"
	"github.com/rushteam/scentkit/pkg/dsl"
)

// DSLFilter 是表达式过滤器：Expr 为 CEL 表达式，求值为 false 的香水被过滤。
//
// 示例：
//   - `item.price_tier != "luxury"`
//   - `"office" in item.occasions && item.rating >= 4.0`
type DSLFilter struct {
	Expr string
}

func (f *DSLFilter) Name() string {
	return "filter.dsl"
}

func (f *DSLFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Fragrance,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	if f.Expr == "" {
		return false, nil
	}

	keep, err := dsl.NewEval(item, rctx).Evaluate(f.Expr)
	if err != nil {
		return false, err
	}
	return !keep, nil
}
