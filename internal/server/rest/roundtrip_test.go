package rest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/warrantyguard/internal/client/client"
	"github.com/dmitrijs2005/warrantyguard/internal/warranty"
)

func products(t *testing.T) []warranty.Product {
	t.Helper()
	d1, err := warranty.ParseDate("2024-01-15")
	require.NoError(t, err)
	d2, err := warranty.ParseDate("2023-03-31")
	require.NoError(t, err)
	return []warranty.Product{
		{ID: "p2", Name: "Smart TV", SerialNumber: "SN-TV", PurchaseDate: d1, WarrantyMonths: 12, Category: warranty.CategoryElectronics, Notes: "living room"},
		{ID: "p1", Name: "Kettle", PurchaseDate: d2, WarrantyMonths: 24, Category: warranty.CategoryHousehold},
	}
}

func TestRoundTrip_BackupThenRestore(t *testing.T) {
	srv, _ := newFileServer(t)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	c := client.NewHTTPClient(5 * time.Second)
	ctx := context.Background()

	want := products(t)
	require.NoError(t, c.Backup(ctx, ts.URL, "alice", want))

	got, err := c.Restore(ctx, ts.URL, "alice")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRoundTrip_SecondBackupOverwrites(t *testing.T) {
	srv, _ := newFileServer(t)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	c := client.NewHTTPClient(5 * time.Second)
	ctx := context.Background()

	require.NoError(t, c.Backup(ctx, ts.URL, "alice", products(t)))
	require.NoError(t, c.Backup(ctx, ts.URL, "alice", products(t)[:1]))

	got, err := c.Restore(ctx, ts.URL, "alice")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Smart TV", got[0].Name)
}

func TestRoundTrip_EmptyBackupRestoresEmpty(t *testing.T) {
	srv, _ := newFileServer(t)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	c := client.NewHTTPClient(5 * time.Second)
	ctx := context.Background()

	require.NoError(t, c.Backup(ctx, ts.URL, "bob", nil))

	got, err := c.Restore(ctx, ts.URL, "bob")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRoundTrip_UnknownUser(t *testing.T) {
	srv, _ := newFileServer(t)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	_, err := client.NewHTTPClient(5*time.Second).Restore(context.Background(), ts.URL, "nobody")
	assert.ErrorIs(t, err, client.ErrBackupNotFound)
}

func TestRoundTrip_InvalidUserRejected(t *testing.T) {
	srv, _ := newFileServer(t)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	err := client.NewHTTPClient(5*time.Second).Backup(context.Background(), ts.URL, "bad/id", products(t))

	var se *client.SyncError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusBadRequest, se.StatusCode)
	assert.Equal(t, "Invalid userId", se.Message)
}
