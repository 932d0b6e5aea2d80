package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/pawmart/shopcore/internal/domain"
)

var cartsBucket = []byte("carts")

// BoltRepository persists carts as JSON blobs in a bbolt file, one entry
// per user id. This is the on-device store.
type BoltRepository struct {
	db *bolt.DB
}

// OpenBolt opens (or creates) the cart database at path.
func OpenBolt(path string) (*BoltRepository, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open cart db: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, errBucket := tx.CreateBucketIfNotExists(cartsBucket)
		return errBucket
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create carts bucket: %w", err)
	}
	return &BoltRepository{db: db}, nil
}

func (r *BoltRepository) GetCart(_ context.Context, userID string) (*domain.Cart, error) {
	var cart domain.Cart
	err := r.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(cartsBucket).Get([]byte(userID))
		if data == nil {
			return ErrCartNotFound
		}
		return json.Unmarshal(data, &cart)
	})
	if err != nil {
		if errors.Is(err, ErrCartNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	return &cart, nil
}

func (r *BoltRepository) UpsertCart(_ context.Context, cart *domain.Cart) error {
	now := time.Now()
	if cart.CreatedAt.IsZero() {
		cart.CreatedAt = now
	}
	cart.UpdatedAt = now

	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}
	err = r.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(cartsBucket).Put([]byte(cart.UserID), data)
	})
	if err != nil {
		return fmt.Errorf("failed to upsert cart: %w", err)
	}
	return nil
}

func (r *BoltRepository) DeleteCart(_ context.Context, userID string) error {
	err := r.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(cartsBucket).Delete([]byte(userID))
	})
	if err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}

func (r *BoltRepository) Close() error {
	return r.db.Close()
}
