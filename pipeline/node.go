package pipeline

import (
	"context"

	"github.com/rushteam/scentkit/core"
)

// Kind 用于标记 Node 类型，方便观测/治理/编排（例如按阶段打点）。
type Kind string

const (
	KindRecall      Kind = "recall"      // 召回阶段：生成候选集（目录快照 / 榜单）
	KindFilter      Kind = "filter"      // 过滤阶段：剔除不符合条件的候选
	KindFeature     Kind = "feature"     // 特征阶段：刷新在线统计等
	KindRank        Kind = "rank"        // 排序阶段：按证据门槛排序
	KindReRank      Kind = "rerank"      // 重排阶段：截断 / 香型多样性
	KindPostProcess Kind = "postprocess" // 后处理阶段：最终结果修饰
)

// Node 是 Pipeline 的最小可扩展单元。
// 统一采用“输入 items -> 输出 items”的形态，方便召回生成、过滤截断、重排等操作。
type Node interface {
	Name() string
	Kind() Kind

	Process(
		ctx context.Context,
		rctx *core.RecommendContext,
		items []*core.Fragrance,
	) ([]*core.Fragrance, error)
}
