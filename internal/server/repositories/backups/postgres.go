package backups

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/warrantyguard/internal/common"
	"github.com/dmitrijs2005/warrantyguard/internal/dbx"
	"github.com/dmitrijs2005/warrantyguard/internal/server/models"
	"github.com/dmitrijs2005/warrantyguard/internal/warranty"
)

// PostgresRepository keeps backups in the backups table, products as JSONB.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Put(ctx context.Context, userID string, b *models.Backup) error {
	products := b.Products
	if products == nil {
		products = []warranty.Product{}
	}
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("encode products: %w", err)
	}

	query :=
		`INSERT INTO backups (user_id, last_updated, products)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id) DO UPDATE
		 SET last_updated = EXCLUDED.last_updated, products = EXCLUDED.products, updated_at = now()
		 `

	if _, err := r.db.ExecContext(ctx, query, userID, b.LastUpdated, string(data)); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, userID string) (*models.Backup, error) {
	query :=
		`SELECT last_updated, products FROM backups
		 WHERE user_id = $1
		 `

	var (
		lastUpdated string
		products    []byte
	)
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&lastUpdated, &products)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	b := &models.Backup{LastUpdated: lastUpdated}
	if err := json.Unmarshal(products, &b.Products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return b, nil
}
