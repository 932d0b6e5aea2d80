package cart

import (
	"context"
	"errors"
	"log"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/pawmart/shopcore/internal/domain"
	"github.com/pawmart/shopcore/internal/identity"
)

// Service is the cart store: per-user line collections with merge,
// quantity and total semantics. Carts are partitioned strictly by user id.
type Service struct {
	repo  Repository
	cache Cache
	sfg   singleflight.Group // Prevents cache stampede
}

func NewService(repo Repository, cache Cache) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
	}
}

// Get returns the user's cart, an empty cart on first reference.
func (s *Service) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	if userID == "" {
		return nil, identity.ErrMissingUser
	}

	// Use singleflight to prevent multiple concurrent cache misses for same key
	v, err, _ := s.sfg.Do(userID, func() (interface{}, error) {
		cached, errCache := s.cache.Get(ctx, userID)
		if errCache == nil {
			return cached, nil // cart is in cache
		}
		if !errors.Is(errCache, ErrCacheMiss) {
			log.Printf("cache get error: %v", errCache) // log cache error but continue
		}

		cart, errGet := s.load(ctx, userID)
		if errGet != nil {
			return nil, errGet
		}

		// set cache
		go func() {
			if errSet := s.cache.Set(context.Background(), userID, cart); errSet != nil {
				log.Printf("cache set error: %v", errSet)
			}
		}()

		return cart, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Cart), nil
}

// AddOrIncrease merges the item into the cart by (id, kind): products add
// quantities onto an existing line, services replace their singleton line,
// anything new is appended.
func (s *Service) AddOrIncrease(ctx context.Context, userID string, item domain.CartItem) error {
	if err := item.Validate(); err != nil {
		return err
	}
	return s.mutate(ctx, userID, func(cart *domain.Cart) {
		item.AddedAt = time.Now()
		i, ok := cart.Find(item.Key())
		if !ok {
			cart.Items = append(cart.Items, item)
			return
		}
		if item.Kind == domain.KindProduct {
			cart.Items[i].Quantity += item.Quantity
			return
		}
		// Services carry no quantity axis; re-adding refreshes the line.
		cart.Items[i] = item
	})
}

// IncreaseQuantity bumps a product line by one. Service lines and absent
// lines are left untouched.
func (s *Service) IncreaseQuantity(ctx context.Context, userID, id string) error {
	return s.mutate(ctx, userID, func(cart *domain.Cart) {
		i, ok := cart.Find(domain.LineKey{ID: id, Kind: domain.KindProduct})
		if !ok {
			return
		}
		cart.Items[i].Quantity++
	})
}

// DecreaseQuantity lowers a product line by one; at quantity 1 the line is
// removed so the cart never stores a zero or negative quantity.
func (s *Service) DecreaseQuantity(ctx context.Context, userID, id string) error {
	return s.mutate(ctx, userID, func(cart *domain.Cart) {
		i, ok := cart.Find(domain.LineKey{ID: id, Kind: domain.KindProduct})
		if !ok {
			return
		}
		if cart.Items[i].Quantity <= 1 {
			cart.RemoveAt(i)
			return
		}
		cart.Items[i].Quantity--
	})
}

// Remove deletes the line unconditionally; removing an absent line is a
// no-op.
func (s *Service) Remove(ctx context.Context, userID string, key domain.LineKey) error {
	return s.mutate(ctx, userID, func(cart *domain.Cart) {
		if i, ok := cart.Find(key); ok {
			cart.RemoveAt(i)
		}
	})
}

// Clear empties the user's cart.
func (s *Service) Clear(ctx context.Context, userID string) error {
	if userID == "" {
		return identity.ErrMissingUser
	}
	if err := s.repo.DeleteCart(ctx, userID); err != nil && !errors.Is(err, ErrCartNotFound) {
		log.Printf("repo delete cart error: %v", err)
		return err
	}
	s.invalidate(userID)
	return nil
}

// Total returns the cart total in minor units, 0 for an empty cart.
func (s *Service) Total(ctx context.Context, userID string) (int64, error) {
	cart, err := s.Get(ctx, userID)
	if err != nil {
		return 0, err
	}
	return cart.Total(), nil
}

func (s *Service) mutate(ctx context.Context, userID string, apply func(*domain.Cart)) error {
	if userID == "" {
		return identity.ErrMissingUser
	}
	cart, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	apply(cart)
	if err := s.repo.UpsertCart(ctx, cart); err != nil {
		log.Printf("repo upsert cart error: %v", err)
		return err
	}
	s.invalidate(userID)
	return nil
}

// load reads the cart from the repository, mapping absence to an empty cart.
func (s *Service) load(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := s.repo.GetCart(ctx, userID)
	if errors.Is(err, ErrCartNotFound) {
		now := time.Now()
		return &domain.Cart{
			UserID:    userID,
			Items:     nil,
			CreatedAt: now,
			UpdatedAt: now,
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *Service) invalidate(userID string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, userID); err != nil {
		log.Printf("cache invalidate error: %v", err)
	}
}
