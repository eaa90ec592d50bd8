// Package builders 注册内置 Node 的配置构建器。
// import _ "github.com/rushteam/scentkit/config/builders" 触发 init 注册；
// 目录、存储等运行期依赖通过 Use* 注入，配置里只描述结构与参数。
package builders

import (
	"fmt"
	"sync"
	"time"

	"github.com/rushteam/scentkit/catalog"
	"github.com/rushteam/scentkit/config"
	"github.com/rushteam/scentkit/core"
	"github.com/rushteam/scentkit/feature"
	"github.com/rushteam/scentkit/filter"
	"github.com/rushteam/scentkit/pipeline"
	"github.com/rushteam/scentkit/pkg/conv"
	"github.com/rushteam/scentkit/rank"
	"github.com/rushteam/scentkit/recall"
	"github.com/rushteam/scentkit/rerank"
)

func init() {
	config.Register("recall.catalog", BuildCatalogNode)
	config.Register("recall.leaderboard", BuildLeaderboardNode)
	config.Register("recall.fanout", BuildFanoutNode)
	config.Register("filter.criteria", BuildCriteriaFilterNode)
	config.Register("filter.dsl", BuildDSLFilterNode)
	config.Register("filter.seen", BuildSeenFilterNode)
	config.Register("feature.stats_enrich", BuildStatsEnrichNode)
	config.Register("rank.toprated", BuildTopRatedNode)
	config.Register("rerank.topn", BuildTopNNode)
	config.Register("rerank.accord_diversity", BuildAccordDiversityNode)
}

// 运行期依赖。配置文件只描述 Node 结构，目录/存储/统计服务由入口注入。
var (
	depsMu        sync.RWMutex
	sharedCatalog *catalog.Catalog
	sharedStore   core.KeyValueStore
	sharedStats   core.StatsService
)

// UseCatalog 注入目录快照，recall.catalog / recall.leaderboard 依赖它。
func UseCatalog(c *catalog.Catalog) {
	depsMu.Lock()
	defer depsMu.Unlock()
	sharedCatalog = c
}

// UseStore 注入 KeyValueStore，recall.leaderboard / filter.seen 依赖它。
func UseStore(s core.KeyValueStore) {
	depsMu.Lock()
	defer depsMu.Unlock()
	sharedStore = s
}

// UseStats 注入在线统计服务，feature.stats_enrich 依赖它。
func UseStats(s core.StatsService) {
	depsMu.Lock()
	defer depsMu.Unlock()
	sharedStats = s
}

func getCatalog() *catalog.Catalog {
	depsMu.RLock()
	defer depsMu.RUnlock()
	return sharedCatalog
}

func getStore() core.KeyValueStore {
	depsMu.RLock()
	defer depsMu.RUnlock()
	return sharedStore
}

func getStats() core.StatsService {
	depsMu.RLock()
	defer depsMu.RUnlock()
	return sharedStats
}

func BuildCatalogNode(cfg map[string]interface{}) (pipeline.Node, error) {
	cat := getCatalog()
	if cat == nil {
		return nil, fmt.Errorf("recall.catalog requires builders.UseCatalog")
	}
	return &recall.CatalogSource{Catalog: cat}, nil
}

func BuildLeaderboardNode(cfg map[string]interface{}) (pipeline.Node, error) {
	cat := getCatalog()
	if cat == nil {
		return nil, fmt.Errorf("recall.leaderboard requires builders.UseCatalog")
	}
	return &recall.LeaderboardSource{
		Catalog: cat,
		Store:   getStore(),
		Key:     conv.ConfigGet(cfg, "key", ""),
		TopK:    conv.ConfigGetInt(cfg, "top_k", 0),
	}, nil
}

func BuildFanoutNode(cfg map[string]interface{}) (pipeline.Node, error) {
	sourcesConfig, ok := cfg["sources"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("sources not found or invalid")
	}

	sources := make([]recall.Source, 0, len(sourcesConfig))
	for _, sc := range sourcesConfig {
		sourceMap, ok := sc.(map[string]interface{})
		if !ok {
			continue
		}
		sourceType := conv.ConfigGet(sourceMap, "type", "")
		switch sourceType {
		case "catalog":
			node, err := BuildCatalogNode(sourceMap)
			if err != nil {
				return nil, err
			}
			sources = append(sources, node.(*recall.CatalogSource))
		case "leaderboard":
			node, err := BuildLeaderboardNode(sourceMap)
			if err != nil {
				return nil, err
			}
			sources = append(sources, node.(*recall.LeaderboardSource))
		default:
			return nil, fmt.Errorf("unknown source type: %s", sourceType)
		}
	}

	fanout := &recall.Fanout{
		Sources:       sources,
		MergeStrategy: conv.ConfigGet(cfg, "merge_strategy", recall.MergeUnion),
	}
	if sec := conv.ConfigGetInt(cfg, "timeout", 0); sec > 0 {
		fanout.Timeout = time.Duration(sec) * time.Second
	}
	if n := conv.ConfigGetInt(cfg, "max_concurrent", 0); n > 0 {
		fanout.MaxConcurrent = n
	}
	return fanout, nil
}

func BuildCriteriaFilterNode(cfg map[string]interface{}) (pipeline.Node, error) {
	// 配置了任何静态条件就按静态条件过滤，否则运行期取 rctx.Criteria
	criteria := core.FilterCriteria{
		Occasion: conv.ConfigGet(cfg, "occasion", ""),
		Vibe:     conv.ConfigGet(cfg, "vibe", ""),
		Gender:   conv.ConfigGet(cfg, "gender", ""),
	}
	if tier, ok := core.ParseTier(conv.ConfigGet(cfg, "price_tier", "")); ok {
		criteria.PriceTier = tier
	}
	if v, ok := cfg["beginner_friendly"].(bool); ok {
		criteria.BeginnerFriendly = &v
	}

	cf := &filter.CriteriaFilter{}
	if !criteria.IsZero() {
		cf.Criteria = &criteria
	}
	return &filter.FilterNode{Filters: []filter.Filter{cf}}, nil
}

func BuildDSLFilterNode(cfg map[string]interface{}) (pipeline.Node, error) {
	expr := conv.ConfigGet(cfg, "expr", "")
	if expr == "" {
		return nil, fmt.Errorf("filter.dsl requires expr")
	}
	return &filter.FilterNode{Filters: []filter.Filter{&filter.DSLFilter{Expr: expr}}}, nil
}

func BuildSeenFilterNode(cfg map[string]interface{}) (pipeline.Node, error) {
	store := getStore()
	if store == nil {
		return nil, fmt.Errorf("filter.seen requires builders.UseStore")
	}
	sf := &filter.SeenFilter{
		Store:     store,
		KeyPrefix: conv.ConfigGet(cfg, "key_prefix", ""),
	}
	return &filter.FilterNode{Filters: []filter.Filter{sf}}, nil
}

func BuildStatsEnrichNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &feature.StatsEnrichNode{Stats: getStats()}, nil
}

func BuildTopRatedNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &rank.TopRatedNode{Limit: conv.ConfigGetInt(cfg, "limit", 0)}, nil
}

func BuildTopNNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &rerank.TopNNode{N: conv.ConfigGetInt(cfg, "n", 0)}, nil
}

func BuildAccordDiversityNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &rerank.AccordDiversity{}, nil
}
