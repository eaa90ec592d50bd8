package convo

import (
	"context"
	"fmt"
	"testing"

	"github.com/rushteam/scentkit/catalog"
	"github.com/rushteam/scentkit/core"
	"github.com/rushteam/scentkit/store"
)

func convoCatalog() *catalog.Catalog {
	items := []*core.Fragrance{
		{ID: "lux", Name: "Aventus", Rating: 4.4, RatingCount: 5000,
			PriceTier: core.TierLuxury, Occasions: []string{"formal"}},
	}
	// 六支 office/budget，评分递减，足够不触发放宽
	for i := 0; i < 6; i++ {
		items = append(items, &core.Fragrance{
			ID:          fmt.Sprintf("office_%d", i),
			Name:        fmt.Sprintf("Office %d", i),
			Rating:      4.5 - float64(i)*0.1,
			RatingCount: 100,
			PriceTier:   core.TierBudget,
			Occasions:   []string{"office", "casual"},
		})
	}
	return catalog.New(items)
}

func TestRecommender_HandleTurn(t *testing.T) {
	r := &Recommender{Catalog: convoCatalog(), Limit: 3}

	got, err := r.HandleTurn(context.Background(), &core.RecommendContext{
		UserText: "recommend something cheap for the office",
	})
	if err != nil {
		t.Fatalf("HandleTurn() error = %v", err)
	}
	if !got.Recommended {
		t.Fatal("explicit ask must trigger recommendations")
	}
	want := core.FilterCriteria{Occasion: "office", PriceTier: core.TierBudget}
	if got.Criteria != want {
		t.Errorf("criteria = %+v, want %+v", got.Criteria, want)
	}
	if got.Relaxed {
		t.Error("six matches must not relax")
	}
	if len(got.Recommendations) != 3 || got.Recommendations[0].ID != "office_0" {
		t.Errorf("recommendations = %v", got.Recommendations)
	}
	for _, f := range got.Recommendations {
		if f.PriceTier != core.TierBudget {
			t.Errorf("%s leaked through price filter", f.ID)
		}
	}
}

func TestRecommender_NoTriggerNoRecommendations(t *testing.T) {
	r := &Recommender{Catalog: convoCatalog()}

	got, err := r.HandleTurn(context.Background(), &core.RecommendContext{
		UserText:      "I mostly wear it at the office",
		AssistantText: "Nice, an office scent it is. What budget are we working with?",
	})
	if err != nil {
		t.Fatalf("HandleTurn() error = %v", err)
	}
	if got.Recommended || len(got.Recommendations) != 0 {
		t.Errorf("no trigger phrase, got %+v", got)
	}
	// 条件仍然被抽取，等下一轮触发时生效
	if got.Criteria.Occasion != "office" {
		t.Errorf("criteria = %+v", got.Criteria)
	}
}

func TestRecommender_RelaxesWhenTooFew(t *testing.T) {
	r := &Recommender{Catalog: convoCatalog(), Limit: 3}

	// formal 只有一支，触发放宽回退到全量目录
	got, err := r.HandleTurn(context.Background(), &core.RecommendContext{
		UserText: "show me formal options",
	})
	if err != nil {
		t.Fatalf("HandleTurn() error = %v", err)
	}
	if !got.Relaxed {
		t.Fatal("one match must relax")
	}
	if len(got.Recommendations) != 3 {
		t.Fatalf("got %d recommendations", len(got.Recommendations))
	}
	// 放宽后按全量目录评分降序
	if got.Recommendations[0].ID != "office_0" {
		t.Errorf("top = %s, want office_0", got.Recommendations[0].ID)
	}
}

func TestRecommender_MultiTurnMemory(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryStore()
	defer kv.Close()

	r := &Recommender{
		Catalog:  convoCatalog(),
		Sessions: NewStoreSessions(kv),
		Limit:    3,
	}

	// 第一轮：只聊场合，不触发推荐
	first, err := r.HandleTurn(ctx, &core.RecommendContext{
		ConversationID: "c1",
		UserText:       "something for the office please",
		AssistantText:  "Office scents, got it. Any budget in mind?",
	})
	if err != nil {
		t.Fatalf("turn 1 error = %v", err)
	}
	if first.Recommended {
		t.Fatal("turn 1 must not recommend")
	}

	// 第二轮：补预算并求推荐，上轮的 office 仍然生效
	second, err := r.HandleTurn(ctx, &core.RecommendContext{
		ConversationID: "c1",
		UserText:       "cheap ones, show me",
	})
	if err != nil {
		t.Fatalf("turn 2 error = %v", err)
	}
	want := core.FilterCriteria{Occasion: "office", PriceTier: core.TierBudget}
	if second.Criteria != want {
		t.Errorf("criteria = %+v, want %+v", second.Criteria, want)
	}
	if !second.Recommended || len(second.Recommendations) == 0 {
		t.Fatal("turn 2 must recommend")
	}

	// 会话里存了四条消息
	session, err := r.Sessions.Get(ctx, "c1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(session.Messages) != 4 {
		t.Errorf("len(Messages) = %d, want 4", len(session.Messages))
	}
	if session.Criteria != want {
		t.Errorf("stored criteria = %+v", session.Criteria)
	}
}

func TestRecommender_NoCatalog(t *testing.T) {
	r := &Recommender{}
	_, err := r.HandleTurn(context.Background(), &core.RecommendContext{UserText: "recommend"})
	if !core.IsUnavailable(err) {
		t.Errorf("want UNAVAILABLE, got %v", err)
	}
}
