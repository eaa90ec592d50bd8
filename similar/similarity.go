// Package similar 提供跨香水的相似度计算与“相似但更便宜”的平替检索。
package similar

import (
	"strings"

	"github.com/rushteam/scentkit/core"
)

// 相似度各信号的权重。主香调是最强的相似信号，气质与场合是
// 推断出的弱信号，各占四分之一。
const (
	AccordWeight   = 0.50
	VibeWeight     = 0.25
	OccasionWeight = 0.25
)

// Score 计算两支香水的相似度，范围 [0, 1]：
//
//	0.50 × Jaccard(主香调) + 0.25 × Jaccard(气质) + 0.25 × Jaccard(场合)
func Score(a, b *core.Fragrance) float64 {
	score := Jaccard(a.MainAccords, b.MainAccords) * AccordWeight
	score += Jaccard(a.Vibes, b.Vibes) * VibeWeight
	score += Jaccard(a.Occasions, b.Occasions) * OccasionWeight
	return score
}

// Jaccard 计算两个字符串集合的 Jaccard 相似度（|A∩B| / |A∪B|）。
// 元素先 trim 再小写去重；任一集合为空时定义为 0（避免除零）。
func Jaccard(a, b []string) float64 {
	setA := toSet(a)
	setB := toSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	union := len(setB)
	for k := range setA {
		if setB[k] {
			intersection++
		} else {
			union++
		}
	}

	return float64(intersection) / float64(union)
}

func toSet(list []string) map[string]bool {
	set := make(map[string]bool, len(list))
	for _, s := range list {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			set[s] = true
		}
	}
	return set
}
