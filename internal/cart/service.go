package cart

import (
	"context"
	"errors"

	"otherproteins-be/internal/logger"
	"otherproteins-be/internal/product"
	"otherproteins-be/internal/stock"

	"go.uber.org/zap"
)

// Service defines the business logic for carts. Stock checks here are
// advisory only: the cart holds no reservation, and checkout revalidates
// against the ledger inside its own transaction.
type Service interface {
	GetCart(ctx context.Context, userID uint) ([]*CartLine, error)
	AddItem(ctx context.Context, userID, productID uint, quantity int) (*CartLine, error)
	SetItemQuantity(ctx context.Context, userID, productID uint, quantity int) error
	RemoveItem(ctx context.Context, userID, productID uint) error
	ClearCart(ctx context.Context, userID uint) error
}

type service struct {
	repo        Repository
	productRepo product.Repository
}

func NewService(repo Repository, productRepo product.Repository) Service {
	return &service{repo: repo, productRepo: productRepo}
}

func (s *service) GetCart(ctx context.Context, userID uint) ([]*CartLine, error) {
	return s.repo.GetCartLines(ctx, userID)
}

// AddItem adds quantity on top of any existing line for the product.
func (s *service) AddItem(ctx context.Context, userID, productID uint, quantity int) (*CartLine, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddItem"),
		zap.Uint("user_id", userID),
		zap.Uint("product_id", productID),
		zap.Int("quantity", quantity),
	)

	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	p, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	existing, err := s.repo.GetLine(ctx, userID, productID)
	if err != nil {
		return nil, err
	}

	finalQty := quantity
	if existing != nil {
		finalQty += existing.Quantity
	}

	if finalQty > p.Stock {
		log.Warn("add to cart rejected",
			zap.Int("requested", finalQty),
			zap.Int("available", p.Stock),
		)
		return nil, &stock.InsufficientStockError{ProductName: p.Name, Available: p.Stock}
	}

	if err := s.repo.UpsertLine(ctx, userID, productID, finalQty); err != nil {
		log.Error("failed to upsert cart line", zap.Error(err))
		return nil, err
	}

	return &CartLine{
		UserID:      userID,
		ProductID:   productID,
		Quantity:    finalQty,
		ProductName: p.Name,
		UnitPrice:   p.Price,
		ImageURL:    p.ImageURL,
		Stock:       p.Stock,
	}, nil
}

// SetItemQuantity writes an absolute quantity; zero or less removes the line.
func (s *service) SetItemQuantity(ctx context.Context, userID, productID uint, quantity int) error {
	if quantity <= 0 {
		return s.repo.DeleteLine(ctx, userID, productID)
	}

	p, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	if quantity > p.Stock {
		return &stock.InsufficientStockError{ProductName: p.Name, Available: p.Stock}
	}

	return s.repo.UpsertLine(ctx, userID, productID, quantity)
}

func (s *service) RemoveItem(ctx context.Context, userID, productID uint) error {
	return s.repo.DeleteLine(ctx, userID, productID)
}

func (s *service) ClearCart(ctx context.Context, userID uint) error {
	return s.repo.ClearCart(ctx, userID)
}
