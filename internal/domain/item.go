package domain

import (
	"errors"
	"fmt"
	"time"
)

// ItemKind discriminates the two purchasable line variants.
type ItemKind string

const (
	KindProduct ItemKind = "product"
	KindService ItemKind = "service"
)

// PriceType applies to service lines only.
type PriceType string

const (
	PriceHourly PriceType = "hourly"
	PriceDaily  PriceType = "daily"
)

var ErrInvalidItem = errors.New("invalid cart item")

// LineKey identifies a cart line. A cart holds at most one line per key.
type LineKey struct {
	ID   string   `json:"id"`
	Kind ItemKind `json:"kind"`
}

// CartItem is a single purchasable line. Prices are integer minor units
// (cents). Quantity is meaningful for products only; services are
// singletons and PriceType is meaningful for services only.
type CartItem struct {
	ID        string    `json:"id"`
	Kind      ItemKind  `json:"kind"`
	Name      string    `json:"name"`
	UnitPrice int64     `json:"unit_price"`
	Quantity  int       `json:"quantity,omitempty"`
	PriceType PriceType `json:"price_type,omitempty"`
	ImageRef  string    `json:"image_ref,omitempty"`
	AddedAt   time.Time `json:"added_at"`
}

// NewProduct builds a validated product line.
func NewProduct(id, name string, unitPrice int64, quantity int, imageRef string) (CartItem, error) {
	item := CartItem{
		ID:        id,
		Kind:      KindProduct,
		Name:      name,
		UnitPrice: unitPrice,
		Quantity:  quantity,
		ImageRef:  imageRef,
	}
	if err := item.Validate(); err != nil {
		return CartItem{}, err
	}
	return item, nil
}

// NewService builds a validated service line.
func NewService(id, name string, unitPrice int64, priceType PriceType, imageRef string) (CartItem, error) {
	item := CartItem{
		ID:        id,
		Kind:      KindService,
		Name:      name,
		UnitPrice: unitPrice,
		PriceType: priceType,
		ImageRef:  imageRef,
	}
	if err := item.Validate(); err != nil {
		return CartItem{}, err
	}
	return item, nil
}

func (i CartItem) Validate() error {
	if i.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidItem)
	}
	if i.UnitPrice < 0 {
		return fmt.Errorf("%w: negative unit price %d", ErrInvalidItem, i.UnitPrice)
	}
	switch i.Kind {
	case KindProduct:
		if i.Quantity < 1 {
			return fmt.Errorf("%w: product quantity %d must be at least 1", ErrInvalidItem, i.Quantity)
		}
	case KindService:
		if i.PriceType != PriceHourly && i.PriceType != PriceDaily {
			return fmt.Errorf("%w: unknown price type %q", ErrInvalidItem, i.PriceType)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidItem, i.Kind)
	}
	return nil
}

func (i CartItem) Key() LineKey {
	return LineKey{ID: i.ID, Kind: i.Kind}
}

// EffectiveQuantity is the quantity used for totals: the stored quantity
// for products, always 1 for services.
func (i CartItem) EffectiveQuantity() int {
	if i.Kind == KindProduct {
		return i.Quantity
	}
	return 1
}

// Subtotal is the line amount in minor units.
func (i CartItem) Subtotal() int64 {
	return i.UnitPrice * int64(i.EffectiveQuantity())
}
