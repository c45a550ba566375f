package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/warrantyguard/internal/client/client"
	"github.com/dmitrijs2005/warrantyguard/internal/client/services"
	"github.com/dmitrijs2005/warrantyguard/internal/common"
	"github.com/dmitrijs2005/warrantyguard/internal/warranty"
)

func (a *App) Backup(ctx context.Context) error {
	st, err := a.settings.Load(ctx)
	if err != nil {
		return err
	}

	a.printf("Backing up to %s as %q...\n", st.ServerURL, st.UserID)
	n, err := a.backup.Backup(ctx, st)
	if err != nil {
		return err
	}
	a.printf("Backup successful: %d product(s) uploaded.\n", n)
	return nil
}

func (a *App) Restore(ctx context.Context) error {
	st, err := a.settings.Load(ctx)
	if err != nil {
		return err
	}

	ok, err := Confirm(a.reader, fmt.Sprintf("Replace all local products with the backup of %q?", st.UserID), a.out)
	if err != nil {
		return err
	}
	if !ok {
		a.println("Restore aborted.")
		return nil
	}

	n, err := a.backup.Restore(ctx, st)
	if err != nil {
		return err
	}
	a.printf("Restore successful: %d product(s) restored.\n", n)
	return nil
}

// Settings prints the backup settings, or changes one of them:
//
//	settings url <server url>
//	settings user <user id>
func (a *App) Settings(ctx context.Context, args []string) error {
	st, err := a.settings.Load(ctx)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		a.printf("Server URL: %s\nUser ID:    %s\n", st.ServerURL, orNone(st.UserID))
		return nil
	}
	if len(args) != 2 {
		a.println("Usage: settings [url|user <value>]")
		return nil
	}

	switch args[0] {
	case "url":
		st.ServerURL = args[1]
	case "user":
		if err := common.ValidateUserID(args[1]); err != nil {
			return &warranty.ValidationError{Field: "userId", Reason: "use letters, digits, '.', '_' or '-'"}
		}
		st.UserID = args[1]
	default:
		a.println("Usage: settings [url|user <value>]")
		return nil
	}

	if err := a.settings.Save(ctx, st); err != nil {
		return err
	}
	a.println("Settings saved.")
	return nil
}

func orNone(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

// describeError turns a command failure into the status line shown to the
// user.
func describeError(err error) string {
	var (
		ve *warranty.ValidationError
		se *client.SyncError
	)
	switch {
	case errors.Is(err, client.ErrBackupNotFound):
		return "No backup found for this user."
	case errors.Is(err, services.ErrSyncInProgress):
		return "A backup or restore is already running."
	case errors.Is(err, common.ErrNotFound):
		return "Product not found."
	case errors.As(err, &ve):
		return fmt.Sprintf("Check the %s field: %s.", ve.Field, ve.Reason)
	case errors.As(err, &se):
		if se.Timeout() {
			return "The server did not answer in time."
		}
		return "Sync failed: " + se.Error()
	default:
		return "Error: " + err.Error()
	}
}
