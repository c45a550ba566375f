package client

import (
	"context"

	"github.com/dmitrijs2005/warrantyguard/internal/warranty"
)

// BackupClient talks to the backup server. Server URL and user id are passed
// on every call; the client keeps no settings of its own.
type BackupClient interface {
	Backup(ctx context.Context, serverURL, userID string, products []warranty.Product) error
	Restore(ctx context.Context, serverURL, userID string) ([]warranty.Product, error)
}
