package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/warrantyguard/internal/client/repositories/metadata"
)

const (
	keyServerURL = "server_url"
	keyUserID    = "user_id"
)

// Settings are the backup coordinates handed to the backup client.
type Settings struct {
	ServerURL string
	UserID    string
}

// SettingsStore loads and saves Settings.
type SettingsStore interface {
	Load(ctx context.Context) (Settings, error)
	Save(ctx context.Context, s Settings) error
}

type metadataSettingsStore struct {
	repo     metadata.Repository
	defaults Settings
}

// NewSettingsStore keeps settings in the metadata table. Keys that were never
// saved fall back to defaults.
func NewSettingsStore(repo metadata.Repository, defaults Settings) SettingsStore {
	return &metadataSettingsStore{repo: repo, defaults: defaults}
}

func (s *metadataSettingsStore) Load(ctx context.Context) (Settings, error) {
	out := s.defaults

	if v, ok, err := s.repo.Get(ctx, keyServerURL); err != nil {
		return Settings{}, fmt.Errorf("load settings: %w", err)
	} else if ok {
		out.ServerURL = v
	}

	if v, ok, err := s.repo.Get(ctx, keyUserID); err != nil {
		return Settings{}, fmt.Errorf("load settings: %w", err)
	} else if ok {
		out.UserID = v
	}

	return out, nil
}

func (s *metadataSettingsStore) Save(ctx context.Context, st Settings) error {
	for key, value := range map[string]string{keyServerURL: st.ServerURL, keyUserID: st.UserID} {
		var err error
		if value == "" {
			err = s.repo.Delete(ctx, key)
		} else {
			err = s.repo.Set(ctx, key, value)
		}
		if err != nil {
			return fmt.Errorf("save settings: %w", err)
		}
	}
	return nil
}
