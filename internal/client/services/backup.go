package services

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"

	"github.com/dmitrijs2005/warrantyguard/internal/client/client"
	"github.com/dmitrijs2005/warrantyguard/internal/common"
	"github.com/dmitrijs2005/warrantyguard/internal/logging"
	"github.com/dmitrijs2005/warrantyguard/internal/warranty"
)

// ErrSyncInProgress is returned when a backup or restore is started while
// another one is still running.
var ErrSyncInProgress = errors.New("a backup or restore is already running")

// BackupService pushes the local records to the backup server and pulls
// them back. Settings are passed explicitly and saved only after a
// successful round trip.
type BackupService interface {
	// Backup uploads every local record and returns how many were sent.
	Backup(ctx context.Context, s Settings) (int, error)
	// Restore replaces the local records with the server copy and returns
	// how many were restored. Local data is untouched on any failure.
	Restore(ctx context.Context, s Settings) (int, error)
}

type backupService struct {
	client   client.BackupClient
	products ProductService
	settings SettingsStore
	logger   logging.Logger
	busy     atomic.Bool
}

func NewBackupService(c client.BackupClient, products ProductService, settings SettingsStore, logger logging.Logger) BackupService {
	return &backupService{client: c, products: products, settings: settings, logger: logger}
}

func (s *backupService) Backup(ctx context.Context, st Settings) (int, error) {
	if err := validateSettings(st); err != nil {
		return 0, err
	}
	if !s.busy.CompareAndSwap(false, true) {
		return 0, ErrSyncInProgress
	}
	defer s.busy.Store(false)

	list, err := s.products.List(ctx)
	if err != nil {
		return 0, err
	}

	if err := s.client.Backup(ctx, st.ServerURL, st.UserID, list); err != nil {
		s.logger.Warn(ctx, "backup failed", "user_id", st.UserID, "error", err)
		return 0, err
	}
	s.logger.Info(ctx, "backup done", "user_id", st.UserID, "products", len(list))

	s.remember(ctx, st)
	return len(list), nil
}

func (s *backupService) Restore(ctx context.Context, st Settings) (int, error) {
	if err := validateSettings(st); err != nil {
		return 0, err
	}
	if !s.busy.CompareAndSwap(false, true) {
		return 0, ErrSyncInProgress
	}
	defer s.busy.Store(false)

	list, err := s.client.Restore(ctx, st.ServerURL, st.UserID)
	if err != nil {
		s.logger.Warn(ctx, "restore failed", "user_id", st.UserID, "error", err)
		return 0, err
	}

	if err := s.products.ReplaceAll(ctx, list); err != nil {
		return 0, err
	}
	s.logger.Info(ctx, "restore done", "user_id", st.UserID, "products", len(list))

	s.remember(ctx, st)
	return len(list), nil
}

// remember persists the settings that just worked. A failure here does not
// undo the sync, so it is only logged.
func (s *backupService) remember(ctx context.Context, st Settings) {
	if err := s.settings.Save(ctx, st); err != nil {
		s.logger.Warn(ctx, "saving settings failed", "error", err)
	}
}

func validateSettings(st Settings) error {
	if strings.TrimSpace(st.ServerURL) == "" {
		return &warranty.ValidationError{Field: "serverUrl", Reason: "is required"}
	}
	if strings.TrimSpace(st.UserID) == "" {
		return &warranty.ValidationError{Field: "userId", Reason: "is required"}
	}
	if err := common.ValidateUserID(st.UserID); err != nil {
		return &warranty.ValidationError{Field: "userId", Reason: "use letters, digits, '.', '_' or '-'"}
	}
	return nil
}
