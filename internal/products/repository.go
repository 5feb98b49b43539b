package products

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/openretail/pos/internal/domain"
)

var (
	ErrNotFound     = errors.New("product not found")
	ErrBarcodeTaken = errors.New("barcode already in use")

	// ErrProductInUse rejects deleting a product that appears on a recorded
	// sale: the sale items snapshot its name and price but still reference
	// the row.
	ErrProductInUse = errors.New("product has sales history")
)

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, price, quantity, category, barcode
		FROM products
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	products := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Quantity, &p.Category, &p.Barcode); err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	p := &domain.Product{}

	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, price, quantity, category, barcode
		FROM products
		WHERE id = $1
	`, id).Scan(&p.ID, &p.Name, &p.Price, &p.Quantity, &p.Category, &p.Barcode)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return p, nil
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	p.ID = uuid.New().String()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products (id, name, price, quantity, category, barcode)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, p.ID, p.Name, p.Price, p.Quantity, p.Category, p.Barcode)
	if err != nil {
		return mapConstraintError(err)
	}

	return nil
}

func (r *ProductRepository) Update(ctx context.Context, id string, p *domain.Product) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET name = $1, price = $2, quantity = $3, category = $4, barcode = $5
		WHERE id = $6
	`, p.Name, p.Price, p.Quantity, p.Category, p.Barcode, id)
	if err != nil {
		return mapConstraintError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	p.ID = id
	return nil
}

// Delete removes a product unless any sale item references it. The count and
// the delete run in one transaction; the RESTRICT foreign key is the backstop
// for a sale recorded between them.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var references int
	err = tx.QueryRowContext(ctx, `
		SELECT count(*) FROM sale_items WHERE product_id = $1
	`, id).Scan(&references)
	if err != nil {
		return fmt.Errorf("count sale references: %w", err)
	}
	if references > 0 {
		return ErrProductInUse
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return mapConstraintError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}

func mapConstraintError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch pqErr.Code.Name() {
	case "unique_violation":
		return ErrBarcodeTaken
	case "foreign_key_violation":
		return ErrProductInUse
	}
	return err
}
