package cart

import (
	"context"
	"sync"

	"github.com/pawmart/shopcore/internal/domain"
)

// MemoryCache is an in-process Cache for embeddings without a redis.
type MemoryCache struct {
	mu    sync.RWMutex
	carts map[string]*domain.Cart
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{carts: make(map[string]*domain.Cart)}
}

func (c *MemoryCache) Get(_ context.Context, userID string) (*domain.Cart, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cart, ok := c.carts[userID]
	if !ok {
		return nil, ErrCacheMiss
	}
	return cloneCart(cart), nil
}

func (c *MemoryCache) Set(_ context.Context, userID string, cart *domain.Cart) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.carts[userID] = cloneCart(cart)
	return nil
}

func (c *MemoryCache) Delete(_ context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.carts, userID)
	return nil
}
