package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/singleflight"

	"github.com/Sarahvrq/Practica-3/internal/cache"
	"github.com/Sarahvrq/Practica-3/internal/domain"
	"github.com/Sarahvrq/Practica-3/internal/events"
	"github.com/Sarahvrq/Practica-3/internal/repository"
)

// maxAddRetries bounds the optimistic-concurrency loop in AddItem.
// Each retry re-reads the cart, so a conflicting writer's increment
// is merged instead of clobbered.
const maxAddRetries = 3

// ProductFinder is the slice of the catalog the reconciler needs.
type ProductFinder interface {
	FindProduct(ctx context.Context, productID string) (*domain.Product, error)
}

// CartService reconciles cart mutations: one cart per user, one line
// per product, and no line above the product's current stock.
type CartService struct {
	repo    repository.CartRepository
	catalog ProductFinder
	cache   cache.CartCache
	events  events.Publisher
	log     zerolog.Logger
	sfg     singleflight.Group // Prevents cache stampede
}

func NewCartService(repo repository.CartRepository, catalog ProductFinder, cartCache cache.CartCache, publisher events.Publisher, log zerolog.Logger) *CartService {
	return &CartService{
		repo:    repo,
		catalog: catalog,
		cache:   cartCache,
		events:  publisher,
		log:     log,
	}
}

// AddItem merges quantity units of a product into the user's cart
// and returns the persisted cart. Stock is a ceiling checked against
// the catalog snapshot, not a reservation.
func (s *CartService) AddItem(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrInvalidUserID
	}

	product, err := s.catalog.FindProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	for attempt := 0; attempt < maxAddRetries; attempt++ {
		cart, err := s.reconcile(ctx, uid, product, quantity)
		if errors.Is(err, repository.ErrVersionConflict) || errors.Is(err, repository.ErrCartExists) {
			s.log.Debug().
				Str("user_id", userID).
				Int("attempt", attempt+1).
				Msg("cart write conflict, retrying")
			continue
		}
		if err != nil {
			return nil, err
		}

		s.invalidateCache(userID)
		s.publishItemAdded(userID, productID, quantity)
		return cart, nil
	}

	return nil, fmt.Errorf("add item gave up after %d attempts: %w", maxAddRetries, repository.ErrVersionConflict)
}

// reconcile performs one read-compute-write round. Both write paths
// are conditional (unique index on insert, version match on update),
// so a concurrent mutation surfaces as a retryable conflict instead
// of a lost update.
func (s *CartService) reconcile(ctx context.Context, userID primitive.ObjectID, product *domain.Product, quantity int) (*domain.Cart, error) {
	cart, err := s.repo.FindByUser(ctx, userID)

	if errors.Is(err, repository.ErrCartNotFound) {
		if quantity > product.Stock {
			return nil, ErrInsufficientStock
		}

		cart = &domain.Cart{
			UserID: userID,
			Items:  []domain.CartItem{{ProductID: product.ID, Quantity: quantity}},
		}
		if err := s.repo.Insert(ctx, cart); err != nil {
			return nil, err
		}
		return cart, nil
	}
	if err != nil {
		return nil, err
	}

	items := make([]domain.CartItem, len(cart.Items))
	copy(items, cart.Items)

	if i := cart.Item(product.ID); i >= 0 {
		newQuantity := items[i].Quantity + quantity
		if newQuantity > product.Stock {
			return nil, ErrInsufficientStock
		}
		items[i].Quantity = newQuantity
	} else {
		if quantity > product.Stock {
			return nil, ErrInsufficientStock
		}
		items = append(items, domain.CartItem{ProductID: product.ID, Quantity: quantity})
	}

	if err := s.repo.ReplaceItems(ctx, cart.ID, cart.Version, items); err != nil {
		return nil, err
	}

	cart.Items = items
	cart.Version++
	cart.UpdatedAt = time.Now()
	return cart, nil
}

// GetCart is a pure read: a user without a cart gets an empty one
// back and no document is created.
func (s *CartService) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrInvalidUserID
	}

	// Use singleflight to prevent multiple concurrent cache misses for same key
	v, err, _ := s.sfg.Do(userID, func() (interface{}, error) {
		cart, err := s.cache.Get(ctx, userID)
		if err == nil {
			return cart, nil // cart is in cache
		}

		if !errors.Is(err, cache.ErrCacheMiss) {
			s.log.Warn().Err(err).Msg("cache get error") // log cache error but continue
		}

		cart, errGet := s.repo.FindByUser(ctx, uid)
		if errors.Is(errGet, repository.ErrCartNotFound) {
			return &domain.Cart{
				UserID: uid,
				Items:  []domain.CartItem{},
			}, nil
		}
		if errGet != nil {
			return nil, errGet
		}

		// set cache
		go func() {
			if errSet := s.cache.Set(context.Background(), userID, cart); errSet != nil {
				s.log.Warn().Err(errSet).Msg("cache set error")
			}
		}()

		return cart, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*domain.Cart), nil
}

func (s *CartService) invalidateCache(userID string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, userID); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("cache invalidate error")
	}
}

func (s *CartService) publishItemAdded(userID, productID string, quantity int) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	err := s.events.ItemAdded(ctx, events.ItemAdded{
		UserID:     userID,
		ProductID:  productID,
		Quantity:   quantity,
		OccurredAt: time.Now(),
	})
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("cart event publish error")
	}
}
