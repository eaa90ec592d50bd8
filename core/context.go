package core

import "github.com/rushteam/scentkit/pkg/utils"

// RecommendContext 承载一次推荐请求的对话/场景信息，贯穿整个 Pipeline 透传。
// 目录快照本身不在其中：目录是进程级只读共享状态，Context 只带请求期输入。
type RecommendContext struct {
	// ConversationID 是会话标识，会话态（历史消息、上轮过滤条件）按它分键。
	ConversationID string

	// UserText / AssistantText 是当前轮的用户消息与助手回复原文，
	// 供关键词式条件抽取与推荐触发判定使用。
	UserText      string
	AssistantText string

	// Criteria 是本次请求生效的过滤条件（可能已合并上轮条件）。
	Criteria *FilterCriteria

	// Params 请求级上下文参数，例如 target_id（平替查询的目标香水）。
	Params map[string]any

	// Labels 是请求级标签，可驱动整个 Pipeline 行为。
	Labels map[string]utils.Label
}

// PutLabel 写入请求级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetCriteria 返回生效的过滤条件；未设置时返回零值（无约束）。
func (rctx *RecommendContext) GetCriteria() FilterCriteria {
	if rctx == nil || rctx.Criteria == nil {
		return FilterCriteria{}
	}
	return *rctx.Criteria
}
