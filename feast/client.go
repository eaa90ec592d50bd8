// Package feast 对接 Feast Feature Store，为推荐链路提供在线统计特征
// （评分、评分人数）。目录快照里的统计是抓取时刻的旧值，线上用
// Feature Server 的实时值刷新后再排序。
package feast

import (
	"context"
	"time"
)

// Client 是 Feast 在线特征服务的客户端接口。
// 只收敛到推荐链路需要的在线特征读取；离线特征、物化等
// 训练侧能力不在此接口范围。
type Client interface {
	// GetOnlineFeatures 批量获取在线特征。
	// features 形如 ["fragrance_stats:rating_value"]，
	// entityRows 形如 [{"fragrance_id": "frag_0"}]。
	GetOnlineFeatures(ctx context.Context, req *GetOnlineFeaturesRequest) (*GetOnlineFeaturesResponse, error)

	// Close 关闭底层连接。
	Close() error
}

// GetOnlineFeaturesRequest 获取在线特征请求。
type GetOnlineFeaturesRequest struct {
	// Features 特征名称列表，格式为 "feature_view:feature"。
	Features []string

	// EntityRows 实体行，每行是实体键到实体值的映射。
	EntityRows []map[string]interface{}

	// Project 项目名称（可选，缺省取客户端配置）。
	Project string
}

// GetOnlineFeaturesResponse 获取在线特征响应。
type GetOnlineFeaturesResponse struct {
	// FeatureVectors 与请求的 EntityRows 一一对应。
	FeatureVectors []FeatureVector
}

// FeatureVector 是单个实体的特征值集合。
type FeatureVector struct {
	// Values key 为特征名称，value 为特征值。
	Values map[string]interface{}

	// EntityRow 对应的实体行。
	EntityRow map[string]interface{}
}

// ClientOption 客户端配置选项。
type ClientOption func(*ClientConfig)

// ClientConfig 客户端配置。
type ClientConfig struct {
	Timeout time.Duration

	// StaticToken 非空时启用静态 Token 认证。
	StaticToken string
}

// WithTimeout 设置超时时间。
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *ClientConfig) {
		c.Timeout = timeout
	}
}

// WithStaticToken 设置静态 Token 认证。
func WithStaticToken(token string) ClientOption {
	return func(c *ClientConfig) {
		c.StaticToken = token
	}
}
