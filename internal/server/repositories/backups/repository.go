// Package backups stores one backup document per user. Implementations
// exist for a local directory, an S3 bucket and PostgreSQL.
package backups

import (
	"context"

	"github.com/dmitrijs2005/warrantyguard/internal/server/models"
)

// Repository persists backup documents keyed by a validated user id.
// Get returns common.ErrNotFound when the user has no backup.
type Repository interface {
	Put(ctx context.Context, userID string, b *models.Backup) error
	Get(ctx context.Context, userID string) (*models.Backup, error)
}
