package cart

import (
	"context"
	"database/sql"
	"errors"

	"otherproteins-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	GetCartLines(ctx context.Context, userID uint) ([]*CartLine, error)
	GetLine(ctx context.Context, userID, productID uint) (*CartLine, error)
	UpsertLine(ctx context.Context, userID, productID uint, quantity int) error
	DeleteLine(ctx context.Context, userID, productID uint) error
	ClearCart(ctx context.Context, userID uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetCartLines(ctx context.Context, userID uint) ([]*CartLine, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetCartLines"),
		zap.Uint("user_id", userID),
	)

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			ci.user_id,
			ci.product_id,
			ci.quantity,
			p.name,
			p.price,
			p.image_url,
			p.stock
		FROM cart_items ci
		JOIN products p ON ci.product_id = p.id
		WHERE ci.user_id = $1
		ORDER BY p.name
	`, userID)
	if err != nil {
		log.Error("failed to query cart lines", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var lines []*CartLine
	for rows.Next() {
		var l CartLine
		if err := rows.Scan(
			&l.UserID,
			&l.ProductID,
			&l.Quantity,
			&l.ProductName,
			&l.UnitPrice,
			&l.ImageURL,
			&l.Stock,
		); err != nil {
			log.Error("failed to scan cart line", zap.Error(err))
			return nil, err
		}
		lines = append(lines, &l)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	log.Debug("cart lines fetched", zap.Int("count", len(lines)))
	return lines, nil
}

func (r *repository) GetLine(ctx context.Context, userID, productID uint) (*CartLine, error) {
	var l CartLine
	err := r.db.QueryRowContext(ctx, `
		SELECT user_id, product_id, quantity
		FROM cart_items
		WHERE user_id = $1 AND product_id = $2
	`, userID, productID).Scan(&l.UserID, &l.ProductID, &l.Quantity)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &l, nil
}

func (r *repository) UpsertLine(ctx context.Context, userID, productID uint, quantity int) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cart_items (user_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = EXCLUDED.quantity
	`, userID, productID, quantity)
	return err
}

// DeleteLine is idempotent: deleting an absent line is not an error.
func (r *repository) DeleteLine(ctx context.Context, userID, productID uint) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_items
		WHERE user_id = $1 AND product_id = $2
	`, userID, productID)
	return err
}

func (r *repository) ClearCart(ctx context.Context, userID uint) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_items
		WHERE user_id = $1
	`, userID)
	return err
}
