package recall

import (
	"context"

	"github.com/rushteam/scentkit/catalog"
	"github.com/rushteam/scentkit/core"
	"github.com/rushteam/scentkit/pipeline"
	"github.com/rushteam/scentkit/pkg/utils"
)

// CatalogSource 是全量目录召回源：把只读目录快照整体作为候选集。
// 目录规模在内存内，全量候选配合下游过滤/排序即是完整的推荐链路。
// CatalogSource 同时实现了 Source 和 Node 接口，可以直接在 Pipeline 中使用。
//
// 召回产出的是目录实体的请求级浅拷贝：目录本身永不被修改（并发请求
// 无锁共享），而下游节点可以放心在候选上追加 Label。
type CatalogSource struct {
	Catalog *catalog.Catalog
}

func (r *CatalogSource) Name() string        { return "recall.catalog" }
func (r *CatalogSource) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall。
func (r *CatalogSource) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Fragrance,
) ([]*core.Fragrance, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口。
func (r *CatalogSource) Recall(
	_ context.Context,
	_ *core.RecommendContext,
) ([]*core.Fragrance, error) {
	if r.Catalog == nil {
		return nil, nil
	}

	all := r.Catalog.All()
	out := make([]*core.Fragrance, 0, len(all))
	for _, f := range all {
		if f == nil {
			continue
		}
		out = append(out, Candidate(f, "catalog"))
	}
	return out, nil
}

// Candidate 基于目录实体生成请求级候选：浅拷贝 + 独立的 Labels。
// 列表字段与原实体共享底层数组，加载后均为只读，共享是安全的。
func Candidate(f *core.Fragrance, source string) *core.Fragrance {
	c := *f
	c.Labels = make(map[string]utils.Label, 4)
	c.PutLabel("recall_source", utils.Label{Value: source, Source: "recall"})
	return &c
}
