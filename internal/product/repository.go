package product

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

type Repository interface {
	List(ctx context.Context, opts ListOptions) ([]*Product, error)
	GetByID(ctx context.Context, id uint) (*Product, error)
	Create(ctx context.Context, input NewProductInput) (uint, error)
	UpdateName(ctx context.Context, id uint, name string) error
	UpdatePrice(ctx context.Context, id uint, price float64) error
	UpdateDescription(ctx context.Context, id uint, description string) error
	UpdateImageURL(ctx context.Context, id uint, imageURL string) error
	Delete(ctx context.Context, id uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `
	p.id, p.name, p.description, p.price, p.image_url,
	p.category_id, c.name, p.stock,
	p.ingredients, p.nutrition_facts, p.usage_directions
`

func (r *repository) List(ctx context.Context, opts ListOptions) ([]*Product, error) {
	// ---------- sort ----------
	// Whitelisted columns only; anything else falls back to name.
	field := "p.name"
	switch opts.Sort {
	case "price":
		field = "p.price"
	case "stock":
		field = "p.stock"
	case "name", "":
		field = "p.name"
	}

	dir := "ASC"
	if strings.EqualFold(opts.Direction, "desc") {
		dir = "DESC"
	}

	query := `
		SELECT ` + productColumns + `
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
	`

	args := []any{}
	if opts.CategoryID != nil {
		query += " WHERE p.category_id = $1"
		args = append(args, *opts.CategoryID)
	}

	query += " ORDER BY " + field + " " + dir

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Product, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+productColumns+`
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		WHERE p.id = $1
	`, id)

	p, err := scanProduct(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	return p, nil
}

func scanProduct(scan func(dest ...any) error) (*Product, error) {
	var p Product
	err := scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.ImageURL,
		&p.CategoryID,
		&p.CategoryName,
		&p.Stock,
		&p.Ingredients,
		&p.NutritionFacts,
		&p.UsageDirections,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) Create(ctx context.Context, input NewProductInput) (uint, error) {
	var id uint
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO products (
			name, description, price, image_url, category_id,
			stock, ingredients, nutrition_facts, usage_directions
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id
	`,
		input.Name,
		input.Description,
		input.Price,
		input.ImageURL,
		input.CategoryID,
		input.Stock,
		input.Ingredients,
		input.NutritionFacts,
		input.UsageDirections,
	).Scan(&id)
	if err != nil {
		return 0, err
	}

	return id, nil
}

func (r *repository) UpdateName(ctx context.Context, id uint, name string) error {
	return r.updateField(ctx, `UPDATE products SET name = $1 WHERE id = $2`, name, id)
}

func (r *repository) UpdatePrice(ctx context.Context, id uint, price float64) error {
	return r.updateField(ctx, `UPDATE products SET price = $1 WHERE id = $2`, price, id)
}

func (r *repository) UpdateDescription(ctx context.Context, id uint, description string) error {
	return r.updateField(ctx, `UPDATE products SET description = $1 WHERE id = $2`, description, id)
}

func (r *repository) UpdateImageURL(ctx context.Context, id uint, imageURL string) error {
	return r.updateField(ctx, `UPDATE products SET image_url = $1 WHERE id = $2`, imageURL, id)
}

func (r *repository) updateField(ctx context.Context, query string, value any, id uint) error {
	res, err := r.db.ExecContext(ctx, query, value, id)
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

func (r *repository) Delete(ctx context.Context, id uint) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
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
