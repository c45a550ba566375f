package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jszwec/csvutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/warrantyguard/internal/client/client"
	"github.com/dmitrijs2005/warrantyguard/internal/client/services"
	"github.com/dmitrijs2005/warrantyguard/internal/warranty"
)

type fakeBackup struct {
	services.BackupService

	backupN  int
	restoreN int
	err      error
	calls    []services.Settings
}

func (f *fakeBackup) Backup(_ context.Context, st services.Settings) (int, error) {
	f.calls = append(f.calls, st)
	return f.backupN, f.err
}

func (f *fakeBackup) Restore(_ context.Context, st services.Settings) (int, error) {
	f.calls = append(f.calls, st)
	return f.restoreN, f.err
}

var testNow = time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T, input string) (*App, *bytes.Buffer, *fakeBackup) {
	t.Helper()

	db, err := client.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repos := client.NewRepositories(db)
	products := services.NewProductService(repos.Products)
	settings := services.NewSettingsStore(repos.Metadata, services.Settings{ServerURL: "http://localhost:3000"})
	backup := &fakeBackup{}

	var out bytes.Buffer
	a := newApp(products, backup, settings, rdr(input), &out)
	a.now = func() time.Time { return testNow }
	return a, &out, backup
}

func addProduct(t *testing.T, a *App, name, serial, date, months string) warranty.Product {
	t.Helper()
	p, err := a.products.Add(context.Background(), warranty.Draft{
		Name: name, SerialNumber: serial, PurchaseDate: date, WarrantyMonths: months,
	})
	require.NoError(t, err)
	return p
}

func TestApp_Add(t *testing.T) {
	a, out, _ := newTestApp(t, "Smart TV\nSN-1\n2024-01-15\n\nelectronics\nliving room\n")

	require.NoError(t, a.Add(context.Background()))
	assert.Contains(t, out.String(), `Added "Smart TV"`)
	assert.Contains(t, out.String(), "Purchase date (YYYY-MM-DD) [2024-06-01]")

	list, err := a.products.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 12, list[0].WarrantyMonths)
	assert.Equal(t, warranty.CategoryElectronics, list[0].Category)
	assert.Equal(t, "living room", list[0].Notes)
}

func TestApp_Add_RetriesAfterValidationError(t *testing.T) {
	input := strings.Join([]string{
		"Laptop", "", "2024-13-40", "", "", "", // bad date
		"y",
		"", "", "2024-02-01", "", "", "", // keep the rest, fix the date
	}, "\n") + "\n"
	a, out, _ := newTestApp(t, input)

	require.NoError(t, a.Add(context.Background()))
	assert.Contains(t, out.String(), "Check the purchaseDate field")

	list, err := a.products.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Laptop", list[0].Name)
}

func TestApp_Add_GiveUp(t *testing.T) {
	a, out, _ := newTestApp(t, "\n\n\n\n\n\nn\n")

	require.NoError(t, a.Add(context.Background()))
	assert.Contains(t, out.String(), "Nothing added.")

	list, err := a.products.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestApp_Scan(t *testing.T) {
	a, out, _ := newTestApp(t, "8991234567890\nKettle\n\n2024-05-01\n24\nhousehold\n\n")

	require.NoError(t, a.Scan(context.Background()))
	assert.Contains(t, out.String(), "Scanned code: 8991234567890")
	assert.False(t, a.intake.Active())

	list, err := a.products.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "8991234567890", list[0].SerialNumber)
	assert.Equal(t, "Kettle", list[0].Name)
}

func TestApp_Scan_Cancelled(t *testing.T) {
	a, out, _ := newTestApp(t, "\n")

	require.NoError(t, a.Scan(context.Background()))
	assert.Contains(t, out.String(), "Scan cancelled.")
	assert.False(t, a.intake.Active())
}

func TestApp_ListSearchDashboard(t *testing.T) {
	a, out, _ := newTestApp(t, "")
	ctx := context.Background()

	require.NoError(t, a.List(ctx))
	assert.Contains(t, out.String(), "No products yet")

	addProduct(t, a, "Old Radio", "R-1", "2020-01-01", "12")
	addProduct(t, a, "TV", "SN-TV", "2024-01-15", "12")

	out.Reset()
	require.NoError(t, a.List(ctx))
	assert.Contains(t, out.String(), "15 Jan 2025")
	assert.Contains(t, out.String(), "active, 228 days left")
	assert.Contains(t, out.String(), "expired")

	out.Reset()
	require.NoError(t, a.Search(ctx, "sn-tv"))
	assert.Contains(t, out.String(), "TV")
	assert.NotContains(t, out.String(), "Old Radio")

	out.Reset()
	require.NoError(t, a.Search(ctx, "fridge"))
	assert.Contains(t, out.String(), `Nothing matches "fridge"`)

	out.Reset()
	require.NoError(t, a.Dashboard(ctx))
	assert.Contains(t, out.String(), "Total: 2  Active: 1  Expired: 1")
}

func TestApp_Delete(t *testing.T) {
	a, out, _ := newTestApp(t, "")
	ctx := context.Background()
	p := addProduct(t, a, "TV", "", "2024-01-15", "12")

	require.NoError(t, a.Delete(ctx, p.ID))
	assert.Contains(t, out.String(), "Deleted.")

	list, err := a.products.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestApp_BackupUsesSavedSettings(t *testing.T) {
	a, out, backup := newTestApp(t, "")
	ctx := context.Background()
	backup.backupN = 3

	require.NoError(t, a.Settings(ctx, []string{"user", "alice"}))
	require.NoError(t, a.Backup(ctx))

	require.Len(t, backup.calls, 1)
	assert.Equal(t, services.Settings{ServerURL: "http://localhost:3000", UserID: "alice"}, backup.calls[0])
	assert.Contains(t, out.String(), "Backup successful: 3 product(s) uploaded.")
}

func TestApp_RestoreNeedsConfirmation(t *testing.T) {
	a, out, backup := newTestApp(t, "n\ny\n")
	ctx := context.Background()
	backup.restoreN = 2

	require.NoError(t, a.Restore(ctx))
	assert.Contains(t, out.String(), "Restore aborted.")
	assert.Empty(t, backup.calls)

	require.NoError(t, a.Restore(ctx))
	assert.Len(t, backup.calls, 1)
	assert.Contains(t, out.String(), "Restore successful: 2 product(s) restored.")
}

func TestApp_Settings(t *testing.T) {
	a, out, _ := newTestApp(t, "")
	ctx := context.Background()

	require.NoError(t, a.Settings(ctx, nil))
	assert.Contains(t, out.String(), "User ID:    (not set)")

	require.NoError(t, a.Settings(ctx, []string{"url", "http://backup.local:3000"}))
	st, err := a.settings.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "http://backup.local:3000", st.ServerURL)

	err = a.Settings(ctx, []string{"user", "../etc"})
	var ve *warranty.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "userId", ve.Field)
}

func TestApp_Export(t *testing.T) {
	a, _, _ := newTestApp(t, "")
	addProduct(t, a, "TV", "SN-TV", "2024-01-15", "12")

	path := filepath.Join(t.TempDir(), "products.csv")
	require.NoError(t, a.Export(context.Background(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var rows []struct {
		Name       string `csv:"name"`
		ExpireDate string `csv:"expire_date"`
		Active     bool   `csv:"active"`
		DaysLeft   int    `csv:"days_left"`
	}
	require.NoError(t, csvutil.Unmarshal(data, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "TV", rows[0].Name)
	assert.Equal(t, "2025-01-15", rows[0].ExpireDate)
	assert.True(t, rows[0].Active)
	assert.Equal(t, 228, rows[0].DaysLeft)
}

func TestDescribeError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{client.ErrBackupNotFound, "No backup found for this user."},
		{services.ErrSyncInProgress, "A backup or restore is already running."},
		{&warranty.ValidationError{Field: "name", Reason: "is required"}, "Check the name field: is required."},
		{&client.SyncError{Op: "backup", Reason: client.ReasonServerRejected, StatusCode: 500}, "Sync failed: backup: server rejected (HTTP 500)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, describeError(tt.err))
	}
}
