package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Sarahvrq/Practica-3/internal/domain"
)

var (
	ErrCartNotFound    = errors.New("cart not found")
	ErrCartExists      = errors.New("cart already exists for user")
	ErrVersionConflict = errors.New("cart was modified concurrently")
	ErrProductNotFound = errors.New("product not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrUserExists      = errors.New("user already exists")
)

// CartRepository defines the cart data operations the reconciler needs.
// Consumers define this interface, not the MongoDB implementation.
type CartRepository interface {
	FindByUser(ctx context.Context, userID primitive.ObjectID) (*domain.Cart, error)
	Insert(ctx context.Context, cart *domain.Cart) error
	// ReplaceItems swaps the cart's item list in a single conditional
	// write: it only matches when the stored version equals the given
	// one, and returns ErrVersionConflict otherwise.
	ReplaceItems(ctx context.Context, cartID primitive.ObjectID, version int64, items []domain.CartItem) error
}

type ProductRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error)
	FindAll(ctx context.Context) ([]domain.Product, error)
	Insert(ctx context.Context, product *domain.Product) error
}

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Insert(ctx context.Context, user *domain.User) error
}
