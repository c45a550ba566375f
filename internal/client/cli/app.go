package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/dmitrijs2005/warrantyguard/internal/client/client"
	"github.com/dmitrijs2005/warrantyguard/internal/client/config"
	"github.com/dmitrijs2005/warrantyguard/internal/client/scan"
	"github.com/dmitrijs2005/warrantyguard/internal/client/services"
	"github.com/dmitrijs2005/warrantyguard/internal/logging"
)

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

type App struct {
	config   *config.Config
	db       *sql.DB
	products services.ProductService
	backup   services.BackupService
	settings services.SettingsStore
	intake   *scan.Intake
	logger   logging.Logger

	reader      *bufio.Reader
	out         io.Writer
	interactive bool
	now         func() time.Time
}

// NewApp opens the local database and wires the services around it.
func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()
	logger := logging.NewTextLogger(os.Stderr, c.LogLevel)

	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}

	repos := client.NewRepositories(db)
	products := services.NewProductService(repos.Products)
	settings := services.NewSettingsStore(repos.Metadata, services.Settings{
		ServerURL: c.ServerURL,
		UserID:    c.UserID,
	})
	backup := services.NewBackupService(client.NewHTTPClient(c.RequestTimeout), products, settings, logger)

	a := newApp(products, backup, settings, bufio.NewReader(os.Stdin), os.Stdout)
	a.config = c
	a.db = db
	a.logger = logger
	a.interactive = isTerminal(int(os.Stdin.Fd()))
	return a, nil
}

func newApp(products services.ProductService, backup services.BackupService, settings services.SettingsStore,
	reader *bufio.Reader, out io.Writer) *App {
	return &App{
		products: products,
		backup:   backup,
		settings: settings,
		intake:   scan.NewIntake(),
		logger:   logging.Nop(),
		reader:   reader,
		out:      out,
		now:      time.Now,
	}
}

// Run starts the REPL and blocks until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	if a.interactive {
		a.println("WarrantyGuard (type 'help' for commands)")
	}
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) Close() {
	_ = a.intake.Cancel()
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn(context.Background(), "closing database", "error", err)
		}
	}
}

// getStatus shows the backup user, when one is configured.
func (a *App) getStatus() string {
	st, err := a.settings.Load(context.Background())
	if err != nil || st.UserID == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", st.UserID)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
