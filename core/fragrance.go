package core

import (
	"strings"

	"github.com/rushteam/scentkit/pkg/utils"
)

// Tier 是香水的价格档位，档位之间全序：budget < mid < premium < luxury。
type Tier string

const (
	TierBudget  Tier = "budget"
	TierMid     Tier = "mid"
	TierPremium Tier = "premium"
	TierLuxury  Tier = "luxury"
)

// Value 返回档位的序数值，用于跨档位比较。
// 未知/缺失档位按 mid 处理。
func (t Tier) Value() int {
	switch t {
	case TierBudget:
		return 1
	case TierMid:
		return 2
	case TierPremium:
		return 3
	case TierLuxury:
		return 4
	default:
		return 2
	}
}

// ParseTier 将字符串解析为 Tier，无法识别时返回 ("", false)。
func ParseTier(s string) (Tier, bool) {
	switch Tier(s) {
	case TierBudget, TierMid, TierPremium, TierLuxury:
		return Tier(s), true
	default:
		return "", false
	}
}

// Fragrance 是推荐链路中的统一承载结构：目录属性、推断属性、标签。
// 目录加载完成后不可变；Labels 是请求期的解释信息，由各节点追加。
type Fragrance struct {
	ID       string
	Name     string // 去掉性别后缀的展示名
	FullName string
	Gender   string

	Rating      float64
	RatingCount int

	MainAccords []string
	Perfumers   []string
	Description string
	URL         string

	// 以下为加载期一次性推断的属性，下游不再重算。
	PriceTier        Tier
	Occasions        []string
	Vibes            []string
	BeginnerFriendly bool
	ComplimentGetter bool

	Labels map[string]utils.Label
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (f *Fragrance) PutLabel(key string, lbl utils.Label) {
	if f.Labels == nil {
		f.Labels = make(map[string]utils.Label)
	}
	if old, ok := f.Labels[key]; ok {
		f.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	f.Labels[key] = lbl
}

// HasOccasion 判断香水是否适用于指定场合（大小写不敏感）。
func (f *Fragrance) HasOccasion(occasion string) bool {
	return containsFold(f.Occasions, occasion)
}

// HasVibe 判断香水是否具有指定气质（大小写不敏感）。
func (f *Fragrance) HasVibe(vibe string) bool {
	return containsFold(f.Vibes, vibe)
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
