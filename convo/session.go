package convo

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rushteam/scentkit/core"
)

// MaxHistoryMessages 是单个会话保留的历史消息上限，超出后只保留最近的。
const MaxHistoryMessages = 10

// DefaultSessionKeyPrefix 是会话态在 Store 中的 key 前缀。
const DefaultSessionKeyPrefix = "convo:session"

// Message 是会话中的一条消息。
type Message struct {
	Role    string `json:"role"` // user / assistant
	Content string `json:"content"`
}

// Session 是一个会话的全部状态：历史消息 + 上轮生效的过滤条件。
type Session struct {
	ConversationID string              `json:"conversation_id"`
	Messages       []Message           `json:"messages"`
	Criteria       core.FilterCriteria `json:"criteria"`
}

// Append 追加消息并裁剪到最近 MaxHistoryMessages 条。
func (s *Session) Append(msgs ...Message) {
	s.Messages = append(s.Messages, msgs...)
	if n := len(s.Messages); n > MaxHistoryMessages {
		s.Messages = s.Messages[n-MaxHistoryMessages:]
	}
}

// SessionStore 管理会话态的读写。
// Get 对不存在的会话返回全新 Session 而非错误（首轮对话即创建）。
type SessionStore interface {
	Get(ctx context.Context, conversationID string) (*Session, error)
	Put(ctx context.Context, session *Session) error
	Evict(ctx context.Context, conversationID string) error

	// Update 以 read-modify-write 的方式原子更新会话。
	// 同一会话的并发 Update 串行执行，多轮消息不会互相覆盖。
	Update(ctx context.Context, conversationID string, fn func(*Session) error) error
}

// StoreSessions 是基于 core.Store 的 SessionStore 实现。
// 会话以 JSON 存储，按 ConversationID 分键；Update 用会话级互斥锁
// 保证单实例内同一会话的并发安全（跨实例共享会话需要 Redis 部署）。
type StoreSessions struct {
	Store     core.Store
	KeyPrefix string // 默认 DefaultSessionKeyPrefix
	TTL       int    // 秒，0 表示不过期

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewStoreSessions 创建基于 Store 的 SessionStore。
func NewStoreSessions(store core.Store) *StoreSessions {
	return &StoreSessions{Store: store}
}

func (s *StoreSessions) Get(ctx context.Context, conversationID string) (*Session, error) {
	data, err := s.Store.Get(ctx, s.key(conversationID))
	if core.IsStoreNotFound(err) {
		return &Session{ConversationID: conversationID}, nil
	}
	if err != nil {
		return nil, err
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, core.NewDomainError(core.ModuleConvo, core.ErrorCodeInternalError,
			"corrupt session payload: "+err.Error())
	}
	session.ConversationID = conversationID
	return &session, nil
}

func (s *StoreSessions) Put(ctx context.Context, session *Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	if s.TTL > 0 {
		return s.Store.Set(ctx, s.key(session.ConversationID), data, s.TTL)
	}
	return s.Store.Set(ctx, s.key(session.ConversationID), data)
}

func (s *StoreSessions) Evict(ctx context.Context, conversationID string) error {
	return s.Store.Delete(ctx, s.key(conversationID))
}

func (s *StoreSessions) Update(ctx context.Context, conversationID string, fn func(*Session) error) error {
	lock := s.sessionLock(conversationID)
	lock.Lock()
	defer lock.Unlock()

	session, err := s.Get(ctx, conversationID)
	if err != nil {
		return err
	}
	if err := fn(session); err != nil {
		return err
	}
	return s.Put(ctx, session)
}

func (s *StoreSessions) sessionLock(conversationID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.locks == nil {
		s.locks = make(map[string]*sync.Mutex)
	}
	lock, ok := s.locks[conversationID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[conversationID] = lock
	}
	return lock
}

func (s *StoreSessions) key(conversationID string) string {
	prefix := s.KeyPrefix
	if prefix == "" {
		prefix = DefaultSessionKeyPrefix
	}
	return prefix + ":" + conversationID
}

var _ SessionStore = (*StoreSessions)(nil)
