package convo

import (
	"context"

	"github.com/rushteam/scentkit/catalog"
	"github.com/rushteam/scentkit/core"
	"github.com/rushteam/scentkit/filter"
	"github.com/rushteam/scentkit/rank"
)

const (
	// MinFilteredResults 是条件过滤后的最小候选数，低于它就放宽条件
	// （回退到全量目录）。宁可给出宽泛但高分的推荐，也不给空列表。
	MinFilteredResults = 5

	// DefaultRecommendLimit 是单轮推荐的默认条数。
	DefaultRecommendLimit = 5
)

// TurnResult 是一轮对话的处理结果。
type TurnResult struct {
	// Recommended 表示本轮是否触发了推荐。
	Recommended bool

	// Recommendations 是触发推荐时的结果列表（评分降序）。
	Recommendations []*core.Fragrance

	// Criteria 是本轮生效的过滤条件（已合并上轮）。
	Criteria core.FilterCriteria

	// Relaxed 表示条件过滤结果过少、已回退到全量目录。
	Relaxed bool
}

// Recommender 把抽取、过滤、排序、会话态串成一轮完整的对话式推荐。
type Recommender struct {
	Catalog  *catalog.Catalog
	Sessions SessionStore // 可选；nil 时无多轮记忆

	// Limit 是单轮推荐条数，<= 0 时取 DefaultRecommendLimit。
	Limit int
}

// HandleTurn 处理一轮对话：
//  1. 读取会话态，以上轮条件为基础抽取本轮条件
//  2. 判定是否触发推荐；触发则过滤 + 放宽 + 高分排序
//  3. 回写会话态（消息历史裁剪到最近 MaxHistoryMessages 条）
//
// 无论是否触发推荐，条件抽取与会话回写都会执行——用户先聊场合、
// 下一轮才求推荐时，上一轮的条件仍然生效。
func (r *Recommender) HandleTurn(ctx context.Context, rctx *core.RecommendContext) (*TurnResult, error) {
	if r.Catalog == nil {
		return nil, core.NewDomainError(core.ModuleConvo, core.ErrorCodeUnavailable,
			"recommender has no catalog")
	}

	prior := rctx.GetCriteria()
	if r.Sessions != nil && rctx.ConversationID != "" {
		session, err := r.Sessions.Get(ctx, rctx.ConversationID)
		if err != nil {
			return nil, err
		}
		prior = session.Criteria.Merge(prior)
	}

	criteria := Extract(rctx.UserText, rctx.AssistantText, prior)

	result := &TurnResult{Criteria: criteria}
	if ShouldRecommend(rctx.UserText, rctx.AssistantText) {
		result.Recommended = true
		result.Recommendations, result.Relaxed = r.recommend(criteria)
	}

	if r.Sessions != nil && rctx.ConversationID != "" {
		err := r.Sessions.Update(ctx, rctx.ConversationID, func(s *Session) error {
			s.Criteria = criteria
			s.Append(
				Message{Role: "user", Content: rctx.UserText},
				Message{Role: "assistant", Content: rctx.AssistantText},
			)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

// Recommend 按给定条件直接产出推荐，不涉及会话态与触发判定。
func (r *Recommender) Recommend(criteria core.FilterCriteria) []*core.Fragrance {
	out, _ := r.recommend(criteria)
	return out
}

func (r *Recommender) recommend(criteria core.FilterCriteria) ([]*core.Fragrance, bool) {
	all := r.Catalog.All()

	relaxed := false
	filtered := filter.Apply(all, criteria)
	if len(filtered) < MinFilteredResults {
		filtered = all
		relaxed = true
	}

	limit := r.Limit
	if limit <= 0 {
		limit = DefaultRecommendLimit
	}
	return rank.TopRated(filtered, limit), relaxed
}
