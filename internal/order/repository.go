package order

import (
	"context"
	"database/sql"
	"errors"

	"otherproteins-be/internal/logger"
	"otherproteins-be/internal/stock"

	"go.uber.org/zap"
)

type Repository interface {
	CreateOrderTx(ctx context.Context, userID uint, opts DeliveryOptions, initial Status) (uint, error)
	CancelTx(ctx context.Context, o *Order) (*CancelResult, error)
	GetOrder(ctx context.Context, orderID uint) (*Order, error)
	ListForUser(ctx context.Context, userID uint) ([]*Order, error)
	ListAll(ctx context.Context) ([]*Order, error)
	UpdateStatusFrom(ctx context.Context, orderID uint, from, to Status) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

type cartLine struct {
	productID uint
	quantity  int
	name      string
	price     float64
}

// CreateOrderTx converts the user's cart into a persisted order inside one
// transaction. Every line's stock is decremented with the conditional
// update; on any shortage the whole transaction rolls back, so stock,
// order rows and the cart either all move or none do. The attempt keeps
// going past a short line so the returned error names every blocking
// product, not just the first.
func (r *repository) CreateOrderTx(ctx context.Context, userID uint, opts DeliveryOptions, initial Status) (uint, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrderTx"),
		zap.Uint("user_id", userID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return 0, err
	}
	defer tx.Rollback()

	lines, err := readCartLines(ctx, tx, userID)
	if err != nil {
		log.Error("failed to read cart", zap.Error(err))
		return 0, err
	}
	if len(lines) == 0 {
		return 0, ErrEmptyCart
	}

	var short []string
	for _, l := range lines {
		err := stock.Reduce(ctx, tx, l.productID, l.quantity)
		if err == nil {
			continue
		}

		var insufficient *stock.InsufficientStockError
		switch {
		case errors.As(err, &insufficient):
			short = append(short, insufficient.ProductName)
		case errors.Is(err, stock.ErrProductNotFound):
			short = append(short, l.name)
		default:
			return 0, err
		}
	}
	if len(short) > 0 {
		log.Warn("checkout rejected", zap.Strings("short_products", short))
		return 0, &stock.InsufficientError{Products: short}
	}

	var orderID uint
	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (user_id, status, delivery_type, delivery_cost,
			street, number, city, province, postal_code)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`, userID, initial, opts.Type, opts.Cost,
		nullable(opts.Street), nullable(opts.Number), nullable(opts.City),
		nullable(opts.Province), nullable(opts.PostalCode),
	).Scan(&orderID)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return 0, err
	}

	for _, l := range lines {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, product_name, quantity, unit_price)
			VALUES ($1, $2, $3, $4, $5)
		`, orderID, l.productID, l.name, l.quantity, l.price)
		if err != nil {
			log.Error("failed to insert order line", zap.Error(err))
			return 0, err
		}
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM cart_items WHERE user_id = $1`, userID,
	); err != nil {
		log.Error("failed to clear cart", zap.Error(err))
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit order", zap.Error(err))
		return 0, err
	}

	log.Info("order created",
		zap.Uint("order_id", orderID),
		zap.Int("lines", len(lines)),
	)
	return orderID, nil
}

func readCartLines(ctx context.Context, tx *sql.Tx, userID uint) ([]cartLine, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT ci.product_id, ci.quantity, p.name, p.price
		FROM cart_items ci
		JOIN products p ON ci.product_id = p.id
		WHERE ci.user_id = $1
		ORDER BY ci.product_id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []cartLine
	for rows.Next() {
		var l cartLine
		if err := rows.Scan(&l.productID, &l.quantity, &l.name, &l.price); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// CancelTx restores each line's stock and flips the order to cancelled in
// one transaction. A line whose product was deleted after purchase cannot
// be restored; that failure is recorded but never blocks the cancellation
// itself. The status update is keyed on the status the caller read, so a
// concurrent transition makes this attempt fail cleanly.
func (r *repository) CancelTx(ctx context.Context, o *Order) (*CancelResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CancelTx"),
		zap.Uint("order_id", o.ID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	result := &CancelResult{OrderID: o.ID}
	for _, l := range o.Lines {
		err := stock.Restore(ctx, tx, l.ProductID, l.Quantity)
		switch {
		case err == nil:
			result.Restored = append(result.Restored, l.ProductName)
		case errors.Is(err, stock.ErrProductNotFound):
			result.NotRestored = append(result.NotRestored, l.ProductName)
		default:
			return nil, err
		}
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE orders
		SET status = $1
		WHERE id = $2 AND status = $3
	`, StatusCancelled, o.ID, o.Status)
	if err != nil {
		log.Error("failed to update order status", zap.Error(err))
		return nil, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		// Status moved underneath us; the restore must not stand.
		return nil, ErrInvalidTransition
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit cancellation", zap.Error(err))
		return nil, err
	}

	log.Info("order cancelled",
		zap.Int("restored", len(result.Restored)),
		zap.Int("not_restored", len(result.NotRestored)),
	)
	return result, nil
}

const orderColumns = `
	id, user_id, status, delivery_type, delivery_cost,
	street, number, city, province, postal_code, created_at
`

func (r *repository) GetOrder(ctx context.Context, orderID uint) (*Order, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE id = $1
	`, orderID)

	o, err := scanOrder(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT order_id, product_id, product_name, quantity, unit_price
		FROM order_items
		WHERE order_id = $1
		ORDER BY product_id
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var l OrderLine
		if err := rows.Scan(&l.OrderID, &l.ProductID, &l.ProductName, &l.Quantity, &l.UnitPrice); err != nil {
			return nil, err
		}
		o.Lines = append(o.Lines, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return o, nil
}

func (r *repository) ListForUser(ctx context.Context, userID uint) ([]*Order, error) {
	return r.list(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
}

func (r *repository) ListAll(ctx context.Context) ([]*Order, error) {
	return r.list(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		ORDER BY created_at DESC
	`)
}

func (r *repository) list(ctx context.Context, query string, args ...any) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o, err := scanOrder(rows.Scan)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// UpdateStatusFrom applies a transition only when the row still holds the
// status the caller validated against.
func (r *repository) UpdateStatusFrom(ctx context.Context, orderID uint, from, to Status) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET status = $1
		WHERE id = $2 AND status = $3
	`, to, orderID, from)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrInvalidTransition
	}
	return nil
}

func scanOrder(scan func(dest ...any) error) (*Order, error) {
	var o Order
	err := scan(
		&o.ID, &o.UserID, &o.Status, &o.DeliveryType, &o.DeliveryCost,
		&o.Street, &o.Number, &o.City, &o.Province, &o.PostalCode,
		&o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
