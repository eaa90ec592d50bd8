package core

import "context"

// FragranceStats 是香水的社区评价统计：评分与评分人数。
// 这两个值在源站上随时间变化，目录快照中是抓取时刻的旧值。
type FragranceStats struct {
	Rating      float64
	RatingCount int
}

// StatsService 提供在线的评价统计，用于在排序前刷新目录中的旧值。
//
// 实现：
//   - feast.StatsService：从 Feast Feature Server 在线获取
//   - 测试中可用内存 map 实现
//
// 获取失败不应中断推荐链路：调用方（feature.StatsEnrichNode）
// 在出错时保留目录中的旧值继续执行。
type StatsService interface {
	// GetStats 按 ID 批量获取统计；结果中缺失的 ID 表示服务端无该香水数据。
	GetStats(ctx context.Context, ids []string) (map[string]FragranceStats, error)

	// Close 关闭底层连接
	Close() error
}
