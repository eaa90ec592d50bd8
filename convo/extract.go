// Package convo 实现对话式推荐：从对话文本抽取过滤条件、
// 判定是否触发推荐、管理会话态（历史消息 + 上轮条件）。
package convo

import (
	"strings"

	"github.com/rushteam/scentkit/core"
)

// keywordRule 是关键词到条件值的映射，命中任一关键词即取 Value。
// 规则按顺序求值，先命中者胜出（例如 "office" 优先于 "date"）。
type keywordRule struct {
	Keywords []string
	Value    string
}

var occasionRules = []keywordRule{
	{Keywords: []string{"office", "work"}, Value: "office"},
	{Keywords: []string{"date"}, Value: "date"},
	{Keywords: []string{"casual", "everyday"}, Value: "casual"},
	{Keywords: []string{"gym", "sport"}, Value: "gym"},
	{Keywords: []string{"formal", "event"}, Value: "formal"},
}

var priceRules = []keywordRule{
	{Keywords: []string{"budget", "cheap", "affordable"}, Value: "budget"},
	{Keywords: []string{"expensive", "luxury", "high end"}, Value: "luxury"},
	{Keywords: []string{"premium"}, Value: "premium"},
}

// Extract 从本轮对话文本中抽取过滤条件，并叠加在 prior 之上：
// 本轮命中的维度覆盖上轮，未命中的维度保留上轮（多轮累积语义）。
// 用户消息与助手回复拼接后一起参与匹配（助手的追问也常带场合词）。
func Extract(userText, assistantText string, prior core.FilterCriteria) core.FilterCriteria {
	text := strings.ToLower(userText) + " " + strings.ToLower(assistantText)

	var incoming core.FilterCriteria
	if v, ok := matchRules(occasionRules, text); ok {
		incoming.Occasion = v
	}
	if v, ok := matchRules(priceRules, text); ok {
		incoming.PriceTier = core.Tier(v)
	}
	return prior.Merge(incoming)
}

func matchRules(rules []keywordRule, text string) (string, bool) {
	for _, r := range rules {
		for _, kw := range r.Keywords {
			if strings.Contains(text, kw) {
				return r.Value, true
			}
		}
	}
	return "", false
}

// 推荐触发词。用户侧是显式求推荐的表达；助手侧是回复中出现
// 推荐性措辞（说明对话已经走到给建议的阶段）。
var (
	userIntentPhrases      = []string{"recommend", "suggest", "what should i", "show me"}
	assistantIntentPhrases = []string{"recommend", "suggest", "try", "check out", "perfect for you"}
)

// ShouldRecommend 判定本轮是否应产出推荐列表。
func ShouldRecommend(userText, assistantText string) bool {
	userLower := strings.ToLower(userText)
	for _, p := range userIntentPhrases {
		if strings.Contains(userLower, p) {
			return true
		}
	}

	assistantLower := strings.ToLower(assistantText)
	for _, p := range assistantIntentPhrases {
		if strings.Contains(assistantLower, p) {
			return true
		}
	}
	return false
}
