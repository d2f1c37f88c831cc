package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Sarahvrq/Practica-3/internal/domain"
	"github.com/Sarahvrq/Practica-3/internal/repository"
)

// CatalogService is the read side of the product catalog plus the
// create/list endpoints. The cart reconciler only uses FindProduct.
type CatalogService struct {
	repo repository.ProductRepository
	log  zerolog.Logger
}

func NewCatalogService(repo repository.ProductRepository, log zerolog.Logger) *CatalogService {
	return &CatalogService{repo: repo, log: log}
}

// FindProduct returns a point-in-time snapshot of the product. A
// malformed id can never name a real product, so it reports
// ErrProductNotFound like an unknown one.
func (s *CatalogService) FindProduct(ctx context.Context, productID string) (*domain.Product, error) {
	id, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, ErrProductNotFound
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.FindAll(ctx)
}

func (s *CatalogService) CreateProduct(ctx context.Context, name, description string, price float64, stock int) (*domain.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrMissingName
	}

	p := decimal.NewFromFloat(price)
	if p.LessThanOrEqual(decimal.Zero) || !p.Round(2).Equal(p) {
		return nil, ErrInvalidPrice
	}

	if stock < 0 {
		return nil, ErrInvalidStock
	}

	product := &domain.Product{
		Name:        name,
		Description: strings.TrimSpace(description),
		Price:       p.InexactFloat64(),
		Stock:       stock,
	}

	if err := s.repo.Insert(ctx, product); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("product_id", product.ID.Hex()).
		Str("name", product.Name).
		Int("stock", product.Stock).
		Msg("product created")

	return product, nil
}
