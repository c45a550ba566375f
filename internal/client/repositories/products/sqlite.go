package products

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/warrantyguard/internal/common"
	"github.com/dmitrijs2005/warrantyguard/internal/dbx"
	"github.com/dmitrijs2005/warrantyguard/internal/warranty"
)

const selectColumns = `id, name, serial_number, purchase_date, warranty_months, category, notes`

// SQLiteRepository implements Repository over a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Insert(ctx context.Context, p warranty.Product) error {
	return insert(ctx, r.db, p)
}

func insert(ctx context.Context, db dbx.DBTX, p warranty.Product) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO products (id, name, serial_number, purchase_date, warranty_months, category, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.SerialNumber, p.PurchaseDate.String(), p.WarrantyMonths, string(p.Category), p.Notes)
	if err != nil {
		return fmt.Errorf("insert product %s: %w", p.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete product %s: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]warranty.Product, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+selectColumns+` FROM products ORDER BY seq DESC`)
	if err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	defer rows.Close()

	result := make([]warranty.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*warranty.Product, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM products WHERE id = ?`, id)

	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *SQLiteRepository) ReplaceAll(ctx context.Context, products []warranty.Product) error {
	db, ok := r.db.(*sql.DB)
	if !ok {
		// Already running inside the caller's transaction.
		return replaceAll(ctx, r.db, products)
	}
	return dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return replaceAll(ctx, tx, products)
	})
}

func replaceAll(ctx context.Context, db dbx.DBTX, products []warranty.Product) error {
	if _, err := db.ExecContext(ctx, `DELETE FROM products`); err != nil {
		return fmt.Errorf("clear products: %w", err)
	}
	// Oldest first, so the first element ends up with the highest sequence.
	for i := len(products) - 1; i >= 0; i-- {
		if err := insert(ctx, db, products[i]); err != nil {
			return err
		}
	}
	return nil
}

func scanProduct(s dbx.RowScanner) (warranty.Product, error) {
	var (
		p        warranty.Product
		date     string
		category string
	)
	if err := s.Scan(&p.ID, &p.Name, &p.SerialNumber, &date, &p.WarrantyMonths, &category, &p.Notes); err != nil {
		return warranty.Product{}, fmt.Errorf("scan product: %w", err)
	}

	d, err := warranty.ParseDate(date)
	if err != nil {
		return warranty.Product{}, fmt.Errorf("product %s: %w", p.ID, err)
	}
	p.PurchaseDate = d
	p.Category = warranty.Category(category)

	return p, nil
}
