package cart

import (
	"context"
	"sync"
	"time"

	"github.com/foodiehub/internal/cache"
)

// Line 购物车行项目
type Line struct {
	ItemID       uint `json:"item_id"`
	Quantity     int  `json:"quantity"`
	RestaurantID uint `json:"restaurant_id"`
}

// Store 会话购物车存储
type Store interface {
	// Get 返回会话的全部行项目（保持加入顺序）
	Get(ctx context.Context, sessionID string) ([]Line, error)
	// Add 加入行项目；已存在的菜品累加数量
	Add(ctx context.Context, sessionID string, line Line) ([]Line, error)
	// UpdateQuantity 设置指定菜品的数量
	UpdateQuantity(ctx context.Context, sessionID string, itemID uint, quantity int) ([]Line, error)
	// Remove 移除指定菜品
	Remove(ctx context.Context, sessionID string, itemID uint) ([]Line, error)
	// Clear 清空会话购物车
	Clear(ctx context.Context, sessionID string) error
}

const cartTTL = 24 * time.Hour

// NewStore 根据缓存可用性选择存储实现
func NewStore() Store {
	if cache.Enabled() {
		return &redisStore{}
	}
	return newMemoryStore()
}

// normalizeQuantity 不合法的数量按 1 处理
func normalizeQuantity(quantity int) int {
	if quantity <= 0 {
		return 1
	}
	return quantity
}

func applyAdd(lines []Line, line Line) []Line {
	line.Quantity = normalizeQuantity(line.Quantity)
	for i := range lines {
		if lines[i].ItemID == line.ItemID {
			lines[i].Quantity += line.Quantity
			return lines
		}
	}
	return append(lines, line)
}

func applySetQuantity(lines []Line, itemID uint, quantity int) []Line {
	quantity = normalizeQuantity(quantity)
	for i := range lines {
		if lines[i].ItemID == itemID {
			lines[i].Quantity = quantity
			break
		}
	}
	return lines
}

func applyRemove(lines []Line, itemID uint) []Line {
	out := lines[:0]
	for _, l := range lines {
		if l.ItemID != itemID {
			out = append(out, l)
		}
	}
	return out
}

type memoryStore struct {
	mu    sync.Mutex
	carts map[string][]Line
}

func newMemoryStore() *memoryStore {
	return &memoryStore{carts: make(map[string][]Line)}
}

func (s *memoryStore) Get(_ context.Context, sessionID string) ([]Line, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneLines(s.carts[sessionID]), nil
}

func (s *memoryStore) Add(_ context.Context, sessionID string, line Line) ([]Line, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[sessionID] = applyAdd(s.carts[sessionID], line)
	return cloneLines(s.carts[sessionID]), nil
}

func (s *memoryStore) UpdateQuantity(_ context.Context, sessionID string, itemID uint, quantity int) ([]Line, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[sessionID] = applySetQuantity(s.carts[sessionID], itemID, quantity)
	return cloneLines(s.carts[sessionID]), nil
}

func (s *memoryStore) Remove(_ context.Context, sessionID string, itemID uint) ([]Line, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[sessionID] = applyRemove(s.carts[sessionID], itemID)
	return cloneLines(s.carts[sessionID]), nil
}

func (s *memoryStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
	return nil
}

func cloneLines(lines []Line) []Line {
	out := make([]Line, len(lines))
	copy(out, lines)
	return out
}

type redisStore struct{}

func cartKey(sessionID string) string {
	return "cart:" + sessionID
}

func (s *redisStore) load(ctx context.Context, sessionID string) ([]Line, error) {
	var lines []Line
	if _, err := cache.GetJSON(ctx, cartKey(sessionID), &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (s *redisStore) save(ctx context.Context, sessionID string, lines []Line) error {
	return cache.SetJSON(ctx, cartKey(sessionID), lines, cartTTL)
}

func (s *redisStore) Get(ctx context.Context, sessionID string) ([]Line, error) {
	lines, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	// 访问即续期
	_ = cache.Expire(ctx, cartKey(sessionID), cartTTL)
	return lines, nil
}

func (s *redisStore) Add(ctx context.Context, sessionID string, line Line) ([]Line, error) {
	lines, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	lines = applyAdd(lines, line)
	if err := s.save(ctx, sessionID, lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (s *redisStore) UpdateQuantity(ctx context.Context, sessionID string, itemID uint, quantity int) ([]Line, error) {
	lines, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	lines = applySetQuantity(lines, itemID, quantity)
	if err := s.save(ctx, sessionID, lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (s *redisStore) Remove(ctx context.Context, sessionID string, itemID uint) ([]Line, error) {
	lines, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	lines = applyRemove(lines, itemID)
	if err := s.save(ctx, sessionID, lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (s *redisStore) Clear(ctx context.Context, sessionID string) error {
	return cache.Del(ctx, cartKey(sessionID))
}
