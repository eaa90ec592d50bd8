package rank

import (
	"context"
	"testing"

	"github.com/rushteam/scentkit/core"
	"github.com/rushteam/scentkit/store"
)

func TestLeaderboard_PublishAndTop(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryStore()
	defer kv.Close()

	lb := &Leaderboard{Store: kv}

	items := []*core.Fragrance{
		{ID: "frag_0", Rating: 4.2, RatingCount: 300},
		{ID: "frag_1", Rating: 4.8, RatingCount: 120},
		{ID: "frag_2", Rating: 5.0, RatingCount: 12}, // 不达证据门槛
		{ID: "frag_3", Rating: 3.9, RatingCount: 80},
	}
	if err := lb.Publish(ctx, items); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	got, err := lb.Top(ctx, 10)
	if err != nil {
		t.Fatalf("Top() error = %v", err)
	}
	want := []string{"frag_1", "frag_0", "frag_3"}
	if len(got) != len(want) {
		t.Fatalf("Top() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Top()[%d] = %s, want %s", i, got[i], want[i])
		}
	}

	score, err := lb.Score(ctx, "frag_1")
	if err != nil || score != 4.8 {
		t.Errorf("Score() = %v, %v", score, err)
	}
	if _, err := lb.Score(ctx, "frag_2"); !core.IsStoreNotFound(err) {
		t.Errorf("below-threshold item must be absent, got %v", err)
	}
}

func TestLeaderboard_Top_Limit(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryStore()
	defer kv.Close()

	lb := &Leaderboard{Store: kv, Key: "custom:board"}
	_ = lb.Publish(ctx, []*core.Fragrance{
		{ID: "a", Rating: 4.0, RatingCount: 100},
		{ID: "b", Rating: 4.5, RatingCount: 100},
	})

	got, err := lb.Top(ctx, 1)
	if err != nil || len(got) != 1 || got[0] != "b" {
		t.Errorf("Top(1) = %v, %v", got, err)
	}
	if got, _ := lb.Top(ctx, 0); got != nil {
		t.Errorf("Top(0) = %v, want nil", got)
	}
}
