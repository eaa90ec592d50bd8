package core

// FilterCriteria 是稀疏的过滤条件：零值字段表示“该维度不约束”，
// 而不是通配值。各条件之间是 AND 关系。
type FilterCriteria struct {
	Occasion  string `json:"occasion,omitempty"`
	PriceTier Tier   `json:"price_tier,omitempty"`
	Vibe      string `json:"vibe,omitempty"`
	Gender    string `json:"gender,omitempty"`

	// BeginnerFriendly 为 nil 表示不约束；非 nil 表示严格等值匹配。
	BeginnerFriendly *bool `json:"beginner_friendly,omitempty"`
}

// IsZero 判断是否没有任何约束。
func (c FilterCriteria) IsZero() bool {
	return c.Occasion == "" && c.PriceTier == "" && c.Vibe == "" &&
		c.Gender == "" && c.BeginnerFriendly == nil
}

// Merge 将 incoming 中的非空字段覆盖到 c 上，返回合并结果。
// incoming 中未设置的字段保留 c 的原值（对话式多轮过滤的叠加语义）。
func (c FilterCriteria) Merge(incoming FilterCriteria) FilterCriteria {
	out := c
	if incoming.Occasion != "" {
		out.Occasion = incoming.Occasion
	}
	if incoming.PriceTier != "" {
		out.PriceTier = incoming.PriceTier
	}
	if incoming.Vibe != "" {
		out.Vibe = incoming.Vibe
	}
	if incoming.Gender != "" {
		out.Gender = incoming.Gender
	}
	if incoming.BeginnerFriendly != nil {
		out.BeginnerFriendly = incoming.BeginnerFriendly
	}
	return out
}
