package filter

import (
	"context"

	"github.com/rushteam/scentkit/core"
)

// SeenFilter 过滤掉本会话中已经推荐过的香水，避免多轮对话重复刷同一批结果。
// 已推荐列表按会话 ID 存为 Hash：每个已推荐 ID 是一个独立字段。
// 字段级写入没有读-改-写窗口，同一会话的并发标记不会互相覆盖。
type SeenFilter struct {
	Store core.KeyValueStore

	// KeyPrefix 是存储 key 前缀，实际 key 为 {KeyPrefix}:{ConversationID}。
	// 默认 "convo:seen"。
	KeyPrefix string
}

// DefaultSeenKeyPrefix 是已推荐列表的默认存储 key 前缀。
const DefaultSeenKeyPrefix = "convo:seen"

func (f *SeenFilter) Name() string {
	return "filter.seen"
}

func (f *SeenFilter) ShouldFilter(
	ctx context.Context,
	rctx *core.RecommendContext,
	item *core.Fragrance,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	if f.Store == nil || rctx == nil || rctx.ConversationID == "" {
		return false, nil
	}

	_, err := f.Store.HGet(ctx, f.key(rctx.ConversationID), item.ID)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// MarkSeen 把一批推荐结果标记进会话的已推荐列表。
func (f *SeenFilter) MarkSeen(ctx context.Context, conversationID string, ids []string) error {
	if f.Store == nil || conversationID == "" || len(ids) == 0 {
		return nil
	}

	key := f.key(conversationID)
	for _, id := range ids {
		if id == "" {
			continue
		}
		if err := f.Store.HSet(ctx, key, id, []byte("1")); err != nil {
			return err
		}
	}
	return nil
}

func (f *SeenFilter) key(conversationID string) string {
	prefix := f.KeyPrefix
	if prefix == "" {
		prefix = DefaultSeenKeyPrefix
	}
	return prefix + ":" + conversationID
}
