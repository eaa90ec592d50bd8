package feast

import (
	"context"
	"errors"
	"testing"

	"github.com/rushteam/scentkit/core"
)

type fakeClient struct {
	resp *GetOnlineFeaturesResponse
	err  error
	req  *GetOnlineFeaturesRequest
}

func (f *fakeClient) GetOnlineFeatures(_ context.Context, req *GetOnlineFeaturesRequest) (*GetOnlineFeaturesResponse, error) {
	f.req = req
	return f.resp, f.err
}

func (f *fakeClient) Close() error { return nil }

func TestStatsService_GetStats(t *testing.T) {
	client := &fakeClient{
		resp: &GetOnlineFeaturesResponse{
			FeatureVectors: []FeatureVector{
				{Values: map[string]interface{}{
					FeatureRating:      4.35,
					FeatureRatingCount: float64(12875),
				}},
				{Values: map[string]interface{}{}}, // 服务端无该香水数据
			},
		},
	}
	svc := NewStatsService(client, "scentkit")

	got, err := svc.GetStats(context.Background(), []string{"frag_0", "frag_1"})
	if err != nil {
		t.Fatalf("GetStats() error = %v", err)
	}

	stats, ok := got["frag_0"]
	if !ok || stats.Rating != 4.35 || stats.RatingCount != 12875 {
		t.Errorf("frag_0 stats = %+v", stats)
	}
	if _, ok := got["frag_1"]; ok {
		t.Error("frag_1 has no server data, must be absent")
	}

	// 请求形态：两个实体行，按约定的实体键
	if len(client.req.EntityRows) != 2 || client.req.EntityRows[0][EntityKey] != "frag_0" {
		t.Errorf("entity rows = %+v", client.req.EntityRows)
	}
	if client.req.Project != "scentkit" {
		t.Errorf("project = %q", client.req.Project)
	}
}

func TestStatsService_GetStats_Errors(t *testing.T) {
	svc := NewStatsService(&fakeClient{err: errors.New("connection refused")}, "scentkit")

	if _, err := svc.GetStats(context.Background(), []string{"frag_0"}); !core.IsUnavailable(err) {
		t.Errorf("want UNAVAILABLE, got %v", err)
	}

	got, err := svc.GetStats(context.Background(), nil)
	if err != nil || len(got) != 0 {
		t.Errorf("empty ids: got %v, %v", got, err)
	}
}

// 需要连接真实的 Feast 服务器才能运行
func TestGrpcClient_GetOnlineFeatures(t *testing.T) {
	t.Skip("需要连接真实的 Feast 服务器才能运行")

	client, err := NewGrpcClient("localhost", 6565, "scentkit")
	if err != nil {
		t.Fatalf("NewGrpcClient() error = %v", err)
	}
	defer client.Close()

	resp, err := client.GetOnlineFeatures(context.Background(), &GetOnlineFeaturesRequest{
		Features:   []string{FeatureRating, FeatureRatingCount},
		EntityRows: []map[string]interface{}{{EntityKey: "frag_0"}},
	})
	if err != nil {
		t.Fatalf("GetOnlineFeatures() error = %v", err)
	}
	if len(resp.FeatureVectors) != 1 {
		t.Errorf("got %d feature vectors", len(resp.FeatureVectors))
	}
}
