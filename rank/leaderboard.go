package rank

import (
	"context"

	"github.com/rushteam/scentkit/core"
)

// DefaultLeaderboardKey 是高分榜单在 KeyValueStore 中的默认 key。
const DefaultLeaderboardKey = "rank:leaderboard"

// Leaderboard 把高分榜单预计算进有序集合，供线上按 ZRange 直接读取，
// 避免每个请求对全目录重新排序。加载目录后 Publish 一次即可。
type Leaderboard struct {
	Store core.KeyValueStore
	Key   string // 默认 DefaultLeaderboardKey
}

// Publish 把达到证据门槛的香水写入榜单，分数为评分。
func (l *Leaderboard) Publish(ctx context.Context, items []*core.Fragrance) error {
	for _, f := range items {
		if f == nil || f.RatingCount < MinRatingCount {
			continue
		}
		if err := l.Store.ZAdd(ctx, l.key(), f.Rating, f.ID); err != nil {
			return err
		}
	}
	return nil
}

// Top 返回榜单前 n 名的香水 ID（评分降序）。
func (l *Leaderboard) Top(ctx context.Context, n int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}
	return l.Store.ZRange(ctx, l.key(), 0, int64(n-1))
}

// Score 返回某个香水在榜单上的分数。
func (l *Leaderboard) Score(ctx context.Context, id string) (float64, error) {
	return l.Store.ZScore(ctx, l.key(), id)
}

func (l *Leaderboard) key() string {
	if l.Key != "" {
		return l.Key
	}
	return DefaultLeaderboardKey
}
