package filter

import (
	"context"
	"strings"

	"github.com/rushteam/scentkit/core"
)

// Apply 按条件过滤目录，保持原有相对顺序。纯函数、无状态。
//
// 每个非零条件都是独立的 AND 谓词：场合/气质按成员匹配，价格档位与
// 新手友好按等值匹配，性别按子串匹配。零值条件不施加约束。
// 空结果是合法输出而非错误。
func Apply(items []*core.Fragrance, c core.FilterCriteria) []*core.Fragrance {
	if c.IsZero() {
		return items
	}

	out := make([]*core.Fragrance, 0, len(items))
	for _, f := range items {
		if f == nil {
			continue
		}
		if Matches(f, c) {
			out = append(out, f)
		}
	}
	return out
}

// Matches 判断单个香水是否满足全部非零条件。
func Matches(f *core.Fragrance, c core.FilterCriteria) bool {
	if c.Occasion != "" && !f.HasOccasion(c.Occasion) {
		return false
	}
	if c.PriceTier != "" && f.PriceTier != c.PriceTier {
		return false
	}
	if c.Vibe != "" && !f.HasVibe(c.Vibe) {
		return false
	}
	if c.BeginnerFriendly != nil && f.BeginnerFriendly != *c.BeginnerFriendly {
		return false
	}
	if c.Gender != "" && !strings.Contains(strings.ToLower(f.Gender), strings.ToLower(c.Gender)) {
		return false
	}
	return true
}

// CriteriaFilter 把 FilterCriteria 包装为 Filter，供 FilterNode 组合使用。
// Criteria 为 nil 时取 rctx.Criteria（对话式推荐的常见形态）。
type CriteriaFilter struct {
	Criteria *core.FilterCriteria
}

func (f *CriteriaFilter) Name() string {
	return "filter.criteria"
}

func (f *CriteriaFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Fragrance,
) (bool, error) {
	if item == nil {
		return true, nil
	}

	c := core.FilterCriteria{}
	if f.Criteria != nil {
		c = *f.Criteria
	} else if rctx != nil {
		c = rctx.GetCriteria()
	}

	return !Matches(item, c), nil
}
