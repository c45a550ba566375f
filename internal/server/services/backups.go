package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/warrantyguard/internal/common"
	"github.com/dmitrijs2005/warrantyguard/internal/logging"
	"github.com/dmitrijs2005/warrantyguard/internal/server/metrics"
	"github.com/dmitrijs2005/warrantyguard/internal/server/models"
	"github.com/dmitrijs2005/warrantyguard/internal/server/repositories/backups"
	"github.com/dmitrijs2005/warrantyguard/internal/warranty"
)

// BackupService stores and loads whole-document backups. There is no
// locking: concurrent saves for one user resolve as last write wins.
//
// Errors:
//   - common.ErrInvalidUserID when the id is not a safe storage key
//   - common.ErrNotFound from Load when the user has no backup
//   - common.ErrStorageWrite / common.ErrStorageRead wrapping backend failures
type BackupService struct {
	repo    backups.Repository
	metrics *metrics.Metrics
	logger  logging.Logger
	now     func() time.Time
}

func NewBackupService(repo backups.Repository, m *metrics.Metrics, logger logging.Logger) *BackupService {
	return &BackupService{repo: repo, metrics: m, logger: logger, now: time.Now}
}

// Save replaces the backup of userID. date is the client's timestamp; when
// empty the server time is recorded instead.
func (s *BackupService) Save(ctx context.Context, userID string, products []warranty.Product, date string) error {
	if err := common.ValidateUserID(userID); err != nil {
		s.metrics.RecordOperation("backup", "invalid")
		return err
	}

	if date == "" {
		date = s.now().UTC().Format(time.RFC3339)
	}
	if products == nil {
		products = []warranty.Product{}
	}

	start := time.Now()
	err := s.repo.Put(ctx, userID, &models.Backup{LastUpdated: date, Products: products})
	s.metrics.TrackStorage("put")(start)
	if err != nil {
		s.metrics.RecordOperation("backup", "error")
		s.logger.Error(ctx, "saving backup failed", "user_id", userID, "error", err)
		return fmt.Errorf("%w: %w", common.ErrStorageWrite, err)
	}

	s.metrics.RecordOperation("backup", "ok")
	s.metrics.BackupProducts.Observe(float64(len(products)))
	s.logger.Info(ctx, "backup saved", "user_id", userID, "products", len(products))
	return nil
}

// Load returns the stored backup of userID.
func (s *BackupService) Load(ctx context.Context, userID string) (*models.Backup, error) {
	if err := common.ValidateUserID(userID); err != nil {
		s.metrics.RecordOperation("restore", "invalid")
		return nil, err
	}

	start := time.Now()
	b, err := s.repo.Get(ctx, userID)
	s.metrics.TrackStorage("get")(start)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.metrics.RecordOperation("restore", "not_found")
			return nil, err
		}
		s.metrics.RecordOperation("restore", "error")
		s.logger.Error(ctx, "reading backup failed", "user_id", userID, "error", err)
		return nil, fmt.Errorf("%w: %w", common.ErrStorageRead, err)
	}

	if b.Products == nil {
		b.Products = []warranty.Product{}
	}
	s.metrics.RecordOperation("restore", "ok")
	return b, nil
}
