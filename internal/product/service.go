package product

import (
	"context"
	"strings"

	"otherproteins-be/internal/logger"
	"otherproteins-be/internal/stock"
	"otherproteins-be/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context, sort, direction string) ([]*Product, error)
	ListByCategory(ctx context.Context, categoryID uint, sort, direction string) ([]*Product, error)
	GetByID(ctx context.Context, id uint) (*Product, error)

	Create(ctx context.Context, input NewProductInput) (uint, error)
	UpdateName(ctx context.Context, id uint, name string) error
	UpdatePrice(ctx context.Context, id uint, price float64) error
	UpdateDescription(ctx context.Context, id uint, description string) error
	UpdateImageURL(ctx context.Context, id uint, imageURL string) error
	UpdateStock(ctx context.Context, id uint, quantity int) error
	BatchUpdate(ctx context.Context, updates []ProductUpdate) (*BatchResult, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo   Repository
	ledger stock.Ledger
}

func NewService(repo Repository, ledger stock.Ledger) Service {
	return &service{repo: repo, ledger: ledger}
}

func (s *service) List(ctx context.Context, sort, direction string) ([]*Product, error) {
	return s.repo.List(ctx, ListOptions{Sort: sort, Direction: direction})
}

func (s *service) ListByCategory(ctx context.Context, categoryID uint, sort, direction string) ([]*Product, error) {
	return s.repo.List(ctx, ListOptions{Sort: sort, Direction: direction, CategoryID: &categoryID})
}

func (s *service) GetByID(ctx context.Context, id uint) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, input NewProductInput) (uint, error) {
	if !utils.IsAdminFromContext(ctx) {
		return 0, ErrUnauthorized
	}

	input.Name = strings.TrimSpace(input.Name)
	if err := validateName(input.Name); err != nil {
		return 0, err
	}
	if input.Price < 0 {
		return 0, ErrNegativePrice
	}
	if input.Stock < 0 {
		return 0, stock.ErrNegativeStock
	}

	return s.repo.Create(ctx, input)
}

func (s *service) UpdateName(ctx context.Context, id uint, name string) error {
	if !utils.IsAdminFromContext(ctx) {
		return ErrUnauthorized
	}

	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return err
	}

	return s.repo.UpdateName(ctx, id, name)
}

func (s *service) UpdatePrice(ctx context.Context, id uint, price float64) error {
	if !utils.IsAdminFromContext(ctx) {
		return ErrUnauthorized
	}
	if price < 0 {
		return ErrNegativePrice
	}

	return s.repo.UpdatePrice(ctx, id, price)
}

func (s *service) UpdateDescription(ctx context.Context, id uint, description string) error {
	if !utils.IsAdminFromContext(ctx) {
		return ErrUnauthorized
	}

	return s.repo.UpdateDescription(ctx, id, description)
}

func (s *service) UpdateImageURL(ctx context.Context, id uint, imageURL string) error {
	if !utils.IsAdminFromContext(ctx) {
		return ErrUnauthorized
	}

	return s.repo.UpdateImageURL(ctx, id, strings.TrimSpace(imageURL))
}

func (s *service) UpdateStock(ctx context.Context, id uint, quantity int) error {
	if !utils.IsAdminFromContext(ctx) {
		return ErrUnauthorized
	}

	return s.ledger.SetStock(ctx, id, quantity)
}

// BatchUpdate applies only the fields that actually changed, product by
// product. One product's failure never blocks another's updates.
func (s *service) BatchUpdate(ctx context.Context, updates []ProductUpdate) (*BatchResult, error) {
	if !utils.IsAdminFromContext(ctx) {
		return nil, ErrUnauthorized
	}

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "BatchUpdate"),
		zap.Int("product_count", len(updates)),
	)

	result := &BatchResult{}

	for _, u := range updates {
		current, err := s.repo.GetByID(ctx, u.ProductID)
		if err != nil {
			result.Failed = append(result.Failed, BatchFailure{
				ProductID: u.ProductID,
				Field:     "product",
				Reason:    err.Error(),
			})
			continue
		}

		if u.Name != nil {
			name := strings.TrimSpace(*u.Name)
			if name != current.Name {
				if err := validateName(name); err != nil {
					result.Failed = append(result.Failed, failure(u.ProductID, "name", err))
				} else if err := s.repo.UpdateName(ctx, u.ProductID, name); err != nil {
					result.Failed = append(result.Failed, failure(u.ProductID, "name", err))
				} else {
					result.NamesUpdated++
				}
			}
		}

		if u.Price != nil && *u.Price != current.Price {
			if *u.Price < 0 {
				result.Failed = append(result.Failed, failure(u.ProductID, "price", ErrNegativePrice))
			} else if err := s.repo.UpdatePrice(ctx, u.ProductID, *u.Price); err != nil {
				result.Failed = append(result.Failed, failure(u.ProductID, "price", err))
			} else {
				result.PricesUpdated++
			}
		}

		if u.Description != nil && (current.Description == nil || *u.Description != *current.Description) {
			if err := s.repo.UpdateDescription(ctx, u.ProductID, *u.Description); err != nil {
				result.Failed = append(result.Failed, failure(u.ProductID, "description", err))
			} else {
				result.DescriptionsUpdated++
			}
		}

		if u.ImageURL != nil && (current.ImageURL == nil || *u.ImageURL != *current.ImageURL) {
			if err := s.repo.UpdateImageURL(ctx, u.ProductID, *u.ImageURL); err != nil {
				result.Failed = append(result.Failed, failure(u.ProductID, "image_url", err))
			} else {
				result.ImagesUpdated++
			}
		}

		if u.Stock != nil && *u.Stock != current.Stock {
			if err := s.ledger.SetStock(ctx, u.ProductID, *u.Stock); err != nil {
				result.Failed = append(result.Failed, failure(u.ProductID, "stock", err))
			} else {
				result.StocksUpdated++
			}
		}
	}

	log.Info("batch update finished",
		zap.Int("names", result.NamesUpdated),
		zap.Int("prices", result.PricesUpdated),
		zap.Int("descriptions", result.DescriptionsUpdated),
		zap.Int("images", result.ImagesUpdated),
		zap.Int("stocks", result.StocksUpdated),
		zap.Int("failed", len(result.Failed)),
	)

	return result, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	if !utils.IsAdminFromContext(ctx) {
		return ErrUnauthorized
	}

	return s.repo.Delete(ctx, id)
}

func validateName(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	if len(name) > MaxNameLength {
		return ErrNameTooLong
	}
	return nil
}

func failure(productID uint, field string, err error) BatchFailure {
	return BatchFailure{ProductID: productID, Field: field, Reason: err.Error()}
}
