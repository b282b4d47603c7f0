package stock

import (
	"context"
	"database/sql"
	"errors"

	"otherproteins-be/internal/logger"

	"go.uber.org/zap"
)

// Queryer is satisfied by both *sql.DB and *sql.Tx so the same atomic
// statements run standalone or inside a larger transaction (checkout and
// cancellation reuse them under their own tx).
type Queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Ledger tracks per-product available stock.
type Ledger interface {
	GetStock(ctx context.Context, productID uint) (int, error)
	ReduceStock(ctx context.Context, productID uint, quantity int) error
	RestoreStock(ctx context.Context, productID uint, quantity int) error
	SetStock(ctx context.Context, productID uint, quantity int) error
}

type ledger struct {
	db *sql.DB
}

func NewLedger(db *sql.DB) Ledger {
	return &ledger{db: db}
}

func (l *ledger) GetStock(ctx context.Context, productID uint) (int, error) {
	return Get(ctx, l.db, productID)
}

func (l *ledger) ReduceStock(ctx context.Context, productID uint, quantity int) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "ledger"),
		zap.String("method", "ReduceStock"),
		zap.Uint("product_id", productID),
		zap.Int("quantity", quantity),
	)

	if err := Reduce(ctx, l.db, productID, quantity); err != nil {
		var insufficient *InsufficientStockError
		if errors.As(err, &insufficient) {
			log.Warn("stock reduction rejected", zap.Int("available", insufficient.Available))
		} else {
			log.Error("failed to reduce stock", zap.Error(err))
		}
		return err
	}

	log.Debug("stock reduced")
	return nil
}

func (l *ledger) RestoreStock(ctx context.Context, productID uint, quantity int) error {
	return Restore(ctx, l.db, productID, quantity)
}

func (l *ledger) SetStock(ctx context.Context, productID uint, quantity int) error {
	return Set(ctx, l.db, productID, quantity)
}

// Get returns the current stock. A missing product is ErrProductNotFound,
// never zero.
func Get(ctx context.Context, q Queryer, productID uint) (int, error) {
	var stock int
	err := q.QueryRowContext(ctx,
		`SELECT stock FROM products WHERE id = $1`, productID,
	).Scan(&stock)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrProductNotFound
	}
	if err != nil {
		return 0, err
	}

	return stock, nil
}

// Reduce atomically decrements stock, rejecting the whole operation when
// fewer than quantity units remain. The conditional update is the single
// critical section; nothing is read-then-written across statements.
func Reduce(ctx context.Context, q Queryer, productID uint, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	res, err := q.ExecContext(ctx, `
		UPDATE products
		SET stock = stock - $1
		WHERE id = $2 AND stock >= $1
	`, quantity, productID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}

	// No row changed: either the product is gone or stock is short.
	var name string
	var available int
	err = q.QueryRowContext(ctx,
		`SELECT name, stock FROM products WHERE id = $1`, productID,
	).Scan(&name, &available)

	if errors.Is(err, sql.ErrNoRows) {
		return ErrProductNotFound
	}
	if err != nil {
		return err
	}

	return &InsufficientStockError{ProductName: name, Available: available}
}

// Restore adds quantity back after a cancellation. No upper bound is
// enforced; a cancelled order restores exactly what it decremented.
func Restore(ctx context.Context, q Queryer, productID uint, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	res, err := q.ExecContext(ctx, `
		UPDATE products
		SET stock = stock + $1
		WHERE id = $2
	`, quantity, productID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// Set writes an absolute stock level (admin path).
func Set(ctx context.Context, q Queryer, productID uint, quantity int) error {
	if quantity < 0 {
		return ErrNegativeStock
	}

	res, err := q.ExecContext(ctx, `
		UPDATE products
		SET stock = $1
		WHERE id = $2
	`, quantity, productID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}

	return nil
}
