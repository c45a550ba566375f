package backups

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/warrantyguard/internal/common"
	"github.com/dmitrijs2005/warrantyguard/internal/filex"
	"github.com/dmitrijs2005/warrantyguard/internal/server/models"
)

// FileRepository keeps each backup as <dir>/<userId>.json. Writes go
// through a temp file and rename, so readers never see a partial document.
type FileRepository struct {
	dir string
}

func NewFileRepository(dir string) (*FileRepository, error) {
	abs, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, fmt.Errorf("backup dir: %w", err)
	}
	return &FileRepository{dir: abs}, nil
}

func (r *FileRepository) path(userID string) string {
	return filepath.Join(r.dir, userID+".json")
}

func (r *FileRepository) Put(_ context.Context, userID string, b *models.Backup) error {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("encode backup: %w", err)
	}

	if err := filex.WriteFileAtomic(r.path(userID), data, 0o644); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}
	return nil
}

func (r *FileRepository) Get(_ context.Context, userID string) (*models.Backup, error) {
	data, err := os.ReadFile(r.path(userID))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("read backup: %w", err)
	}

	b := &models.Backup{}
	if err := json.Unmarshal(data, b); err != nil {
		return nil, fmt.Errorf("decode backup: %w", err)
	}
	return b, nil
}
