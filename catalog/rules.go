package catalog

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rushteam/scentkit/core"
)

// TierRule 是价格档位的推断规则：名称中出现任一品牌词即命中该档位。
type TierRule struct {
	Brands []string  `yaml:"brands"`
	Tier   core.Tier `yaml:"tier"`
}

// TagRule 是标签推断规则：香调文本中出现任一关键词即追加 Tags。
// 一条香调可以命中多条规则，结果取并集（按命中顺序去重）。
type TagRule struct {
	Keywords []string `yaml:"keywords"`
	Tags     []string `yaml:"tags"`
}

// Rules 是属性推断的规则表。规则显式有序：价格档位第一条命中即生效，
// 场合/气质规则逐条叠加。表驱动的写法让优先级可审计、可单测、可配置覆盖。
type Rules struct {
	Tiers       []TierRule `yaml:"tiers"`
	DefaultTier core.Tier  `yaml:"default_tier"`

	Occasions       []TagRule `yaml:"occasions"`
	DefaultOccasion string    `yaml:"default_occasion"`

	Vibes       []TagRule `yaml:"vibes"`
	DefaultVibe string    `yaml:"default_vibe"`

	// Compliment 关键词命中任意一个即视为“易获好评”。
	Compliment []string `yaml:"compliment"`

	// BeginnerMinRating / BeginnerMinRatingCount 是“新手友好”的证据门槛。
	BeginnerMinRating      float64 `yaml:"beginner_min_rating"`
	BeginnerMinRatingCount int     `yaml:"beginner_min_rating_count"`
}

// DefaultRules 返回内置规则表。
// 品牌/关键词清单来自人工整理，阈值沿用线上长期使用的取值。
func DefaultRules() *Rules {
	return &Rules{
		Tiers: []TierRule{
			{Brands: []string{"afnan", "al haramain"}, Tier: core.TierBudget},
			{Brands: []string{"creed", "tom ford", "parfums de marly", "amouage"}, Tier: core.TierLuxury},
			{Brands: []string{"dior", "chanel", "ysl", "armani"}, Tier: core.TierPremium},
		},
		DefaultTier: core.TierMid,

		Occasions: []TagRule{
			{Keywords: []string{"fresh", "citrus", "aromatic"}, Tags: []string{"office", "casual"}},
			{Keywords: []string{"sweet", "spicy", "warm"}, Tags: []string{"date"}},
			{Keywords: []string{"woody", "leather"}, Tags: []string{"formal"}},
			{Keywords: []string{"aquatic", "fresh"}, Tags: []string{"gym"}},
		},
		DefaultOccasion: "casual",

		Vibes: []TagRule{
			{Keywords: []string{"fresh", "citrus"}, Tags: []string{"fresh"}},
			{Keywords: []string{"warm", "spicy"}, Tags: []string{"warm"}},
			{Keywords: []string{"woody", "leather"}, Tags: []string{"confident"}},
			{Keywords: []string{"sweet", "vanilla"}, Tags: []string{"bold"}},
			{Keywords: []string{"aromatic", "green"}, Tags: []string{"subtle"}},
		},
		DefaultVibe: "confident",

		Compliment: []string{"sweet", "vanilla", "fresh"},

		BeginnerMinRating:      3.5,
		BeginnerMinRatingCount: 50,
	}
}

// LoadRules 从 YAML 文件加载规则表，用于线上覆盖内置清单。
func LoadRules(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules: %w", err)
	}

	rules := DefaultRules()
	if err := yaml.Unmarshal(data, rules); err != nil {
		return nil, fmt.Errorf("parse rules: %w", err)
	}
	return rules, nil
}

// PriceTier 按名称推断价格档位：规则表顺序检查，第一条命中即生效。
func (r *Rules) PriceTier(name string) core.Tier {
	nameLower := strings.ToLower(name)
	for _, rule := range r.Tiers {
		for _, brand := range rule.Brands {
			if strings.Contains(nameLower, brand) {
				return rule.Tier
			}
		}
	}
	return r.DefaultTier
}

// OccasionTags 按香调推断适用场合。
// 无任何规则命中时回退到默认场合，保证结果永不为空。
func (r *Rules) OccasionTags(accords []string) []string {
	return r.matchTags(r.Occasions, accords, r.DefaultOccasion)
}

// VibeTags 按香调推断气质标签，规则同 OccasionTags。
func (r *Rules) VibeTags(accords []string) []string {
	return r.matchTags(r.Vibes, accords, r.DefaultVibe)
}

// IsComplimentGetter 判断香调是否属于易获好评的类型。
func (r *Rules) IsComplimentGetter(accords []string) bool {
	text := accordText(accords)
	for _, kw := range r.Compliment {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// BeginnerFriendly 判断评分证据是否达到新手友好的门槛。
func (r *Rules) BeginnerFriendly(rating float64, ratingCount int) bool {
	return rating >= r.BeginnerMinRating && ratingCount >= r.BeginnerMinRatingCount
}

func (r *Rules) matchTags(rules []TagRule, accords []string, fallback string) []string {
	text := accordText(accords)

	var tags []string
	seen := make(map[string]bool, 8)
	for _, rule := range rules {
		matched := false
		for _, kw := range rule.Keywords {
			if strings.Contains(text, kw) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}
		for _, tag := range rule.Tags {
			if seen[tag] {
				continue
			}
			seen[tag] = true
			tags = append(tags, tag)
		}
	}

	if len(tags) == 0 {
		return []string{fallback}
	}
	return tags
}

func accordText(accords []string) string {
	return strings.ToLower(strings.Join(accords, " "))
}
