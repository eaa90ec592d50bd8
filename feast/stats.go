package feast

import (
	"context"

	"github.com/rushteam/scentkit/core"
	"github.com/rushteam/scentkit/pkg/conv"
)

// 特征视图与实体键约定，对应 Feast 仓库中的 fragrance_stats 特征视图。
const (
	EntityKey          = "fragrance_id"
	FeatureRating      = "fragrance_stats:rating_value"
	FeatureRatingCount = "fragrance_stats:rating_count"
)

// StatsService 把 Feast 在线特征包装为 core.StatsService：
// 按香水 ID 批量拉取实时评分与评分人数。
type StatsService struct {
	Client  Client
	Project string
}

// NewStatsService 创建基于 Feast 的统计服务。
func NewStatsService(client Client, project string) *StatsService {
	return &StatsService{Client: client, Project: project}
}

// GetStats 实现 core.StatsService。
// 服务端缺失的特征值不会出现在结果中，调用方保留旧值即可。
func (s *StatsService) GetStats(ctx context.Context, ids []string) (map[string]core.FragranceStats, error) {
	if len(ids) == 0 {
		return map[string]core.FragranceStats{}, nil
	}

	entityRows := make([]map[string]interface{}, len(ids))
	for i, id := range ids {
		entityRows[i] = map[string]interface{}{EntityKey: id}
	}

	resp, err := s.Client.GetOnlineFeatures(ctx, &GetOnlineFeaturesRequest{
		Features:   []string{FeatureRating, FeatureRatingCount},
		EntityRows: entityRows,
		Project:    s.Project,
	})
	if err != nil {
		return nil, core.NewDomainError(core.ModuleFeature, core.ErrorCodeUnavailable, err.Error())
	}

	out := make(map[string]core.FragranceStats, len(resp.FeatureVectors))
	for i, fv := range resp.FeatureVectors {
		rating, okRating := conv.ToFloat64(fv.Values[FeatureRating])
		count, okCount := conv.ToInt(fv.Values[FeatureRatingCount])
		if !okRating && !okCount {
			continue
		}
		out[ids[i]] = core.FragranceStats{Rating: rating, RatingCount: count}
	}
	return out, nil
}

// Close 实现 core.StatsService。
func (s *StatsService) Close() error {
	return s.Client.Close()
}

var _ core.StatsService = (*StatsService)(nil)
