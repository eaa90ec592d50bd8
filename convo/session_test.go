package convo

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/rushteam/scentkit/core"
	"github.com/rushteam/scentkit/store"
)

func TestSession_AppendCapsHistory(t *testing.T) {
	s := &Session{ConversationID: "c1"}

	for i := 0; i < 8; i++ {
		s.Append(
			Message{Role: "user", Content: fmt.Sprintf("u%d", i)},
			Message{Role: "assistant", Content: fmt.Sprintf("a%d", i)},
		)
	}

	if len(s.Messages) != MaxHistoryMessages {
		t.Fatalf("len(Messages) = %d, want %d", len(s.Messages), MaxHistoryMessages)
	}
	// 保留的是最近 10 条：u3/a3 .. u7/a7
	if s.Messages[0].Content != "u3" || s.Messages[9].Content != "a7" {
		t.Errorf("window = [%s .. %s], want [u3 .. a7]", s.Messages[0].Content, s.Messages[9].Content)
	}
}

func TestStoreSessions_RoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryStore()
	defer kv.Close()
	sessions := NewStoreSessions(kv)

	// 不存在的会话返回全新 Session
	s, err := sessions.Get(ctx, "fresh")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if s.ConversationID != "fresh" || len(s.Messages) != 0 {
		t.Fatalf("new session = %+v", s)
	}

	s.Criteria = core.FilterCriteria{Occasion: "office", PriceTier: core.TierBudget}
	s.Append(Message{Role: "user", Content: "hello"})
	if err := sessions.Put(ctx, s); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, err := sessions.Get(ctx, "fresh")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Criteria.Occasion != "office" || got.Criteria.PriceTier != core.TierBudget {
		t.Errorf("criteria = %+v", got.Criteria)
	}
	if len(got.Messages) != 1 || got.Messages[0].Content != "hello" {
		t.Errorf("messages = %+v", got.Messages)
	}

	if err := sessions.Evict(ctx, "fresh"); err != nil {
		t.Fatalf("Evict() error = %v", err)
	}
	got, _ = sessions.Get(ctx, "fresh")
	if len(got.Messages) != 0 {
		t.Errorf("evicted session still has messages: %+v", got.Messages)
	}
}

func TestStoreSessions_UpdateIsSerialized(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryStore()
	defer kv.Close()
	sessions := NewStoreSessions(kv)

	const turns = 20
	var wg sync.WaitGroup
	for i := 0; i < turns; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = sessions.Update(ctx, "busy", func(s *Session) error {
				s.Append(Message{Role: "user", Content: fmt.Sprintf("m%d", i)})
				return nil
			})
		}(i)
	}
	wg.Wait()

	got, err := sessions.Get(ctx, "busy")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	// 并发追加不会互相覆盖：留下的一定是裁剪后的满窗口
	if len(got.Messages) != MaxHistoryMessages {
		t.Errorf("len(Messages) = %d, want %d", len(got.Messages), MaxHistoryMessages)
	}
}
