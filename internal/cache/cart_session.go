package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/webild-pos/internal/cart"

	"github.com/redis/go-redis/v9"
)

// ErrSessionConflict 并发修改重试次数耗尽
var ErrSessionConflict = errors.New("cart session: concurrent update conflict")

const sessionUpdateRetries = 5

// CartSession 单个浏览会话的购物车状态
// 只在会话有效期内保存，不做持久化与多端同步
type CartSession struct {
	ID        string     `json:"id"`
	StoreSlug string     `json:"store_slug"`
	Cart      cart.State `json:"cart"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// SessionStore 购物车会话存储
type SessionStore interface {
	// Load 读取会话，不存在返回 nil,nil
	Load(ctx context.Context, storeSlug, sessionID string) (*CartSession, error)
	// Update 读取（不存在则新建）、修改并保存会话；fn 返回错误时不保存
	Update(ctx context.Context, storeSlug, sessionID string, fn func(*CartSession) error) (*CartSession, error)
	// Delete 删除会话
	Delete(ctx context.Context, storeSlug, sessionID string) error
}

func cartSessionKey(storeSlug, sessionID string) string {
	return fmt.Sprintf("cart:%s:%s", strings.ToLower(strings.TrimSpace(storeSlug)), strings.TrimSpace(sessionID))
}

func newCartSession(storeSlug, sessionID string, now time.Time) *CartSession {
	return &CartSession{
		ID:        sessionID,
		StoreSlug: storeSlug,
		Cart:      cart.State{StoreSlug: storeSlug, Lines: []cart.LineItem{}},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// RedisSessionStore 基于 Redis 的会话存储，WATCH 乐观锁保证同一会话的修改串行
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

// NewRedisSessionStore 创建 Redis 会话存储
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl, now: time.Now}
}

// Load 读取会话
func (s *RedisSessionStore) Load(ctx context.Context, storeSlug, sessionID string) (*CartSession, error) {
	raw, err := s.client.Get(ctx, Key(cartSessionKey(storeSlug, sessionID))).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var session CartSession
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Update 读取-修改-保存，键被并发修改时重试
func (s *RedisSessionStore) Update(ctx context.Context, storeSlug, sessionID string, fn func(*CartSession) error) (*CartSession, error) {
	key := Key(cartSessionKey(storeSlug, sessionID))
	var result *CartSession

	txf := func(tx *redis.Tx) error {
		session := newCartSession(storeSlug, sessionID, s.now())
		raw, err := tx.Get(ctx, key).Bytes()
		switch {
		case err == redis.Nil:
		case err != nil:
			return err
		default:
			if err := json.Unmarshal(raw, session); err != nil {
				return err
			}
		}
		if err := fn(session); err != nil {
			return err
		}
		session.UpdatedAt = s.now()
		payload, err := json.Marshal(session)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, s.ttl)
			return nil
		})
		if err == nil {
			result = session
		}
		return err
	}

	for i := 0; i < sessionUpdateRetries; i++ {
		err := s.client.Watch(ctx, txf, key)
		if err == nil {
			return result, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return nil, err
	}
	return nil, ErrSessionConflict
}

// Delete 删除会话
func (s *RedisSessionStore) Delete(ctx context.Context, storeSlug, sessionID string) error {
	return s.client.Del(ctx, Key(cartSessionKey(storeSlug, sessionID))).Err()
}

type memoryEntry struct {
	payload   []byte
	expiresAt time.Time
}

// MemorySessionStore 进程内会话存储，未启用 Redis 时使用
type MemorySessionStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemorySessionStore 创建进程内会话存储
func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	return &MemorySessionStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Load 读取会话
func (s *MemorySessionStore) Load(_ context.Context, storeSlug, sessionID string) (*CartSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(cartSessionKey(storeSlug, sessionID))
}

// Update 持锁完成读取-修改-保存
func (s *MemorySessionStore) Update(_ context.Context, storeSlug, sessionID string, fn func(*CartSession) error) (*CartSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := cartSessionKey(storeSlug, sessionID)
	session, err := s.loadLocked(key)
	if err != nil {
		return nil, err
	}
	if session == nil {
		session = newCartSession(storeSlug, sessionID, s.now())
	}
	if err := fn(session); err != nil {
		return nil, err
	}
	session.UpdatedAt = s.now()
	payload, err := json.Marshal(session)
	if err != nil {
		return nil, err
	}
	s.entries[key] = memoryEntry{payload: payload, expiresAt: s.expiry()}
	s.evictExpiredLocked()
	return session, nil
}

// Delete 删除会话
func (s *MemorySessionStore) Delete(_ context.Context, storeSlug, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, cartSessionKey(storeSlug, sessionID))
	return nil
}

func (s *MemorySessionStore) loadLocked(key string) (*CartSession, error) {
	entry, ok := s.entries[key]
	if !ok {
		return nil, nil
	}
	if !entry.expiresAt.IsZero() && !s.now().Before(entry.expiresAt) {
		delete(s.entries, key)
		return nil, nil
	}
	var session CartSession
	if err := json.Unmarshal(entry.payload, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *MemorySessionStore) expiry() time.Time {
	if s.ttl <= 0 {
		return time.Time{}
	}
	return s.now().Add(s.ttl)
}

func (s *MemorySessionStore) evictExpiredLocked() {
	now := s.now()
	for key, entry := range s.entries {
		if !entry.expiresAt.IsZero() && !now.Before(entry.expiresAt) {
			delete(s.entries, key)
		}
	}
}
