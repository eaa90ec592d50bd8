package rank

import (
	"context"
	"testing"

	"github.com/rushteam/scentkit/core"
)

func ratedItems() []*core.Fragrance {
	return []*core.Fragrance{
		{ID: "low-evidence", Rating: 5.0, RatingCount: 49},
		{ID: "good", Rating: 4.2, RatingCount: 300},
		{ID: "best", Rating: 4.8, RatingCount: 120},
		{ID: "tied-a", Rating: 4.0, RatingCount: 60},
		{ID: "tied-b", Rating: 4.0, RatingCount: 900},
	}
}

func TestTopRated(t *testing.T) {
	items := ratedItems()

	got := TopRated(items, 10)

	wantOrder := []string{"best", "good", "tied-a", "tied-b"}
	if len(got) != len(wantOrder) {
		t.Fatalf("got %d items, want %d", len(got), len(wantOrder))
	}
	for i, want := range wantOrder {
		if got[i].ID != want {
			t.Errorf("got[%d] = %s, want %s", i, got[i].ID, want)
		}
	}

	// 证据门槛
	for _, f := range got {
		if f.RatingCount < MinRatingCount {
			t.Errorf("%s returned with rating count %d < %d", f.ID, f.RatingCount, MinRatingCount)
		}
	}

	// 非递增
	for i := 1; i < len(got); i++ {
		if got[i].Rating > got[i-1].Rating {
			t.Errorf("ratings not non-increasing at %d", i)
		}
	}
}

func TestTopRated_Truncation(t *testing.T) {
	items := ratedItems()

	if got := TopRated(items, 2); len(got) != 2 || got[0].ID != "best" {
		t.Errorf("limit=2: got %v", got)
	}
	if got := TopRated(items, 0); len(got) != 0 {
		t.Errorf("limit=0 must be empty, got %v", got)
	}
	if got := TopRated(items, -3); len(got) != 0 {
		t.Errorf("negative limit must be empty, got %v", got)
	}
	if got := TopRated(nil, 5); len(got) != 0 {
		t.Errorf("empty input must be empty, got %v", got)
	}
}

func TestTopRated_DoesNotMutateInput(t *testing.T) {
	items := ratedItems()
	TopRated(items, 3)

	if items[0].ID != "low-evidence" || items[1].ID != "good" {
		t.Error("input slice order changed")
	}
}

func TestTopRatedNode(t *testing.T) {
	node := &TopRatedNode{Limit: 2}

	got, err := node.Process(context.Background(), &core.RecommendContext{}, ratedItems())
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(got) != 2 || got[0].ID != "best" || got[1].ID != "good" {
		t.Fatalf("got %v", got)
	}
	if lbl, ok := got[0].Labels["rank"]; !ok || lbl.Value != "toprated" {
		t.Errorf("rank label missing: %+v", got[0].Labels)
	}
}
