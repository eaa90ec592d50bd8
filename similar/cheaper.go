package similar

import (
	"fmt"
	"math"
	"sort"

	"github.com/rushteam/scentkit/catalog"
	"github.com/rushteam/scentkit/core"
)

const (
	// MinSimilarity 是平替候选的最低相似度：相似度 <= 该值的候选丢弃。
	// 阈值沿用线上长期使用的取值。
	MinSimilarity = 0.2

	// RatingTieBreakDelta 定义“相似度接近”：两个候选相似度差小于该值时，
	// 改按评分高者优先。
	RatingTieBreakDelta = 0.05

	// DefaultNumResults 是平替结果的默认数量。
	DefaultNumResults = 3
)

// Result 是一条平替结果：候选香水与它对目标的相似度。
// 结果是请求期的临时数据，不落存储。
type Result struct {
	Fragrance  *core.Fragrance `json:"fragrance"`
	Similarity float64         `json:"similarity"`
}

// FindCheaperAlternatives 在 items 中寻找与 target 相似但价格档位
// 严格更低的香水，返回至多 n 条结果。
//
// 规则：
//   - 候选 = 非 target 本身且档位序数严格小于 target 的香水；
//     target 已是最低档时候选为空，返回空结果（不是错误）
//   - 相似度 <= MinSimilarity 的候选丢弃
//   - 排序主键为相似度降序；两候选相似度差 < RatingTieBreakDelta 时
//     按评分降序。该平局规则是排序比较器里的成对判断，
//     不是先分桶再排序——桶边界会切出不同的平局组
//   - n <= 0 时取 DefaultNumResults
func FindCheaperAlternatives(target *core.Fragrance, items []*core.Fragrance, n int) []Result {
	if target == nil {
		return nil
	}
	if n <= 0 {
		n = DefaultNumResults
	}

	targetTier := target.PriceTier.Value()

	var scored []Result
	for _, f := range items {
		if f == nil || f.ID == target.ID {
			continue
		}
		if f.PriceTier.Value() >= targetTier {
			continue
		}
		sim := Score(target, f)
		if sim <= MinSimilarity {
			continue
		}
		scored = append(scored, Result{Fragrance: f, Similarity: sim})
	}

	sort.Slice(scored, func(i, j int) bool {
		if math.Abs(scored[i].Similarity-scored[j].Similarity) < RatingTieBreakDelta {
			return scored[i].Fragrance.Rating > scored[j].Fragrance.Rating
		}
		return scored[i].Similarity > scored[j].Similarity
	})

	if len(scored) > n {
		scored = scored[:n]
	}
	return scored
}

// Finder 把平替检索绑定到一个目录快照上，按 ID 定位目标。
type Finder struct {
	Catalog *catalog.Catalog
}

// AlternativesByID 按目标 ID 检索平替。目标不存在时返回 NOT_FOUND 领域错误。
func (f *Finder) AlternativesByID(id string, n int) ([]Result, error) {
	target, ok := f.Catalog.Get(id)
	if !ok {
		return nil, core.NewDomainError(core.ModuleCatalog, core.ErrorCodeNotFound,
			fmt.Sprintf("similar: fragrance %q not found", id))
	}
	return FindCheaperAlternatives(target, f.Catalog.All(), n), nil
}
