package cache

import (
	"context"
	"path"
	"sync"
	"time"
)

// MemoryCache is a process local Client. It backs single instance deployments and tests.
type MemoryCache struct {
	data      map[string]*memoryItem
	mu        sync.RWMutex
	config    *Config
	logger    Logger
	stopCh    chan struct{}
	closeOnce sync.Once
}

type memoryItem struct {
	value     []byte
	expiresAt time.Time
}

func (i *memoryItem) expired(now time.Time) bool {
	return !i.expiresAt.IsZero() && now.After(i.expiresAt)
}

func NewMemoryCache(config *Config, logger Logger) *MemoryCache {
	setMemoryDefaults(config)
	cache := &MemoryCache{
		data:   make(map[string]*memoryItem),
		config: config,
		logger: logger,
		stopCh: make(chan struct{}),
	}
	go cache.cleanupExpired()
	return cache
}

func (m *MemoryCache) cleanupExpired() {
	ticker := time.NewTicker(m.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.cleanup()
		case <-m.stopCh:
			return
		}
	}
}

func (m *MemoryCache) cleanup() {
	now := time.Now()
	removed := 0

	m.mu.Lock()
	for key, item := range m.data {
		if item.expired(now) {
			delete(m.data, key)
			removed++
		}
	}
	m.mu.Unlock()

	if removed > 0 {
		m.logger.Debug("Cleaned up expired cache items", "count", removed)
	}
}

func (m *MemoryCache) expiry(ttl time.Duration) time.Time {
	if ttl == 0 {
		ttl = m.config.DefaultTTL
	}
	if ttl <= 0 {
		return time.Time{}
	}
	return time.Now().Add(ttl)
}

func (m *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	item, exists := m.data[key]
	m.mu.RUnlock()

	if !exists || item.expired(time.Now()) {
		return nil, ErrKeyNotFound
	}

	result := make([]byte, len(item.value))
	copy(result, item.value)
	return result, nil
}

func (m *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)

	m.mu.Lock()
	m.data[key] = &memoryItem{value: valueCopy, expiresAt: m.expiry(ttl)}
	m.mu.Unlock()
	return nil
}

func (m *MemoryCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.data, key)
	m.mu.Unlock()
	return nil
}

func (m *MemoryCache) Exists(_ context.Context, key string) (bool, error) {
	m.mu.RLock()
	item, exists := m.data[key]
	m.mu.RUnlock()
	return exists && !item.expired(time.Now()), nil
}

func (m *MemoryCache) DeletePattern(_ context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key := range m.data {
		matched, err := path.Match(pattern, key)
		if err != nil {
			return &Error{Operation: "delete_pattern", Key: pattern, Err: err}
		}
		if matched {
			delete(m.data, key)
		}
	}
	return nil
}

func (m *MemoryCache) Increment(_ context.Context, key string, delta int64, ttl time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var current int64
	if item, exists := m.data[key]; exists && !item.expired(time.Now()) {
		if val, err := parseInt64(item.value); err == nil {
			current = val
		}
	}

	next := current + delta
	m.data[key] = &memoryItem{value: formatInt64(next), expiresAt: m.expiry(ttl)}
	return next, nil
}

func (m *MemoryCache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return &Error{Operation: "serialize", Key: key, Err: err}
	}
	return m.Set(ctx, key, data, ttl)
}

func (m *MemoryCache) GetJSON(ctx context.Context, key string, dest interface{}) error {
	data, err := m.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return &Error{Operation: "deserialize", Key: key, Err: err}
	}
	return nil
}

func (m *MemoryCache) Ping(context.Context) error {
	return nil
}

func (m *MemoryCache) Close() error {
	m.closeOnce.Do(func() { close(m.stopCh) })
	return nil
}
