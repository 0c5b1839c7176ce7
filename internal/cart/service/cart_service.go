package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/MoolaPravalesh19/PrintDukan/internal/cart/cache"
	"github.com/MoolaPravalesh19/PrintDukan/internal/cart/repository"
	"github.com/MoolaPravalesh19/PrintDukan/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrItemNotFound    = errors.New("item not found in cart")
)

// saveAttempts bounds the read-modify-write retry loop on version conflicts.
const saveAttempts = 3

type CartService struct {
	repo  repository.CartRepository
	cache cache.CartCache
	sfg   singleflight.Group // Prevents cache stampede

	newID func() string
	now   func() time.Time
}

func NewCartService(repo repository.CartRepository, cache cache.CartCache) *CartService {
	return &CartService{
		repo:  repo,
		cache: cache,
		newID: uuid.NewString,
		now:   time.Now,
	}
}

// GetCart returns the current snapshot. A cart that does not exist yet,
// or whose stored blob is unreadable, reads as empty rather than failing.
func (s *CartService) GetCart(ctx context.Context, cartID string) (*domain.Cart, error) {
	// Use singleflight to prevent multiple concurrent cache misses for same key
	v, err, _ := s.sfg.Do(cartID, func() (interface{}, error) {

		cart, err := s.cache.Get(ctx, cartID)
		if err == nil {
			return cart, nil // cart is in cache
		}

		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("cache get error: %v \n", err) // log cache error but continue
		}

		cart, errGet := s.repo.GetCart(ctx, cartID)
		if errGet != nil {
			if errors.Is(errGet, repository.ErrCartNotFound) || errors.Is(errGet, repository.ErrCartCorrupt) {
				if errors.Is(errGet, repository.ErrCartCorrupt) {
					log.Printf("cart %s unreadable, serving empty snapshot: %v \n", cartID, errGet)
				}
				return s.emptyCart(cartID), nil
			}
			return nil, errGet // err from repo is not recoverable, return it
		}

		// set cache
		go func() {
			errSet := s.cache.Set(context.Background(), cartID, cart)
			if errSet != nil {
				log.Printf("cache set error: %v \n", errSet)
			}
		}()

		return cart, nil // cart was not in cache, return it from repo
	})

	if err != nil {
		return nil, err
	}

	return v.(*domain.Cart), nil
}

// AddItem merges quantity into the line matching (productID, color) or
// appends a new line, and returns the affected line.
func (s *CartService) AddItem(ctx context.Context, cartID, productID string, color *string, quantity int) (*domain.CartItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	var result domain.CartItem
	err := s.mutate(ctx, cartID, func(cart *domain.Cart) error {
		item := cart.MergeItem(s.newID(), productID, color, quantity, s.now())
		result = *item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateQuantity overwrites the quantity of an existing line.
// Non-positive quantities are rejected; removal stays an explicit operation.
func (s *CartService) UpdateQuantity(ctx context.Context, cartID, itemID string, quantity int) (*domain.CartItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	var result domain.CartItem
	err := s.mutate(ctx, cartID, func(cart *domain.Cart) error {
		item := cart.SetQuantity(itemID, quantity)
		if item == nil {
			return ErrItemNotFound
		}
		result = *item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// RemoveItem drops a line from the cart. Removing an absent id succeeds.
func (s *CartService) RemoveItem(ctx context.Context, cartID, itemID string) error {
	return s.mutate(ctx, cartID, func(cart *domain.Cart) error {
		cart.DropItem(itemID)
		return nil
	})
}

func (s *CartService) ClearCart(ctx context.Context, cartID string) error {
	errDelete := s.repo.DeleteCart(ctx, cartID)
	if errDelete != nil {
		log.Printf("repo delete cart error: %v \n", errDelete)
		return errDelete
	}

	s.invalidateCache(cartID)
	return nil
}

// mutate runs the read-snapshot -> apply -> compare-and-swap sequence,
// retrying when a concurrent caller won the race. The mutation callback
// must be pure so replaying it is safe.
func (s *CartService) mutate(ctx context.Context, cartID string, apply func(*domain.Cart) error) error {
	for attempt := 0; attempt < saveAttempts; attempt++ {
		cart, err := s.repo.GetCart(ctx, cartID)
		if err != nil {
			switch {
			case errors.Is(err, repository.ErrCartNotFound):
				cart = s.emptyCart(cartID)
			case errors.Is(err, repository.ErrCartCorrupt):
				// Drop the unreadable snapshot so the rebuilt cart can
				// be inserted fresh.
				log.Printf("cart %s unreadable, rebuilding: %v \n", cartID, err)
				if errDrop := s.repo.DeleteCart(ctx, cartID); errDrop != nil {
					return errDrop
				}
				cart = s.emptyCart(cartID)
			default:
				return err
			}
		}

		if errApply := apply(cart); errApply != nil {
			return errApply
		}

		errSave := s.repo.SaveCart(ctx, cart)
		if errSave == nil {
			s.invalidateCache(cartID)
			return nil
		}
		if !errors.Is(errSave, repository.ErrVersionConflict) {
			log.Printf("repo save cart error: %v \n", errSave)
			return errSave
		}
	}
	return fmt.Errorf("save cart %s: %w", cartID, repository.ErrVersionConflict)
}

func (s *CartService) emptyCart(cartID string) *domain.Cart {
	now := s.now()
	return &domain.Cart{
		ID:        cartID,
		Items:     nil,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *CartService) invalidateCache(cartID string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	errInvalidate := s.cache.Delete(ctx, cartID)
	if errInvalidate != nil {
		log.Printf("cache invalidate error: %v \n", errInvalidate)
	}
}
