package cli

import (
	"context"
	"fmt"

	"github.com/jszwec/csvutil"

	"github.com/dmitrijs2005/warrantyguard/internal/filex"
	"github.com/dmitrijs2005/warrantyguard/internal/warranty"
)

type exportRow struct {
	warranty.Product
	ExpireDate warranty.Date `csv:"expire_date"`
	Active     bool          `csv:"active"`
	DaysLeft   int           `csv:"days_left"`
}

// Export writes every record with its current status to path as CSV.
func (a *App) Export(ctx context.Context, path string) error {
	list, err := a.products.List(ctx)
	if err != nil {
		return err
	}

	now := a.now()
	rows := make([]exportRow, 0, len(list))
	for _, p := range list {
		st := warranty.Evaluate(p, now)
		rows = append(rows, exportRow{
			Product:    p,
			ExpireDate: warranty.DateOf(st.ExpireDate),
			Active:     st.IsValid,
			DaysLeft:   st.DaysLeft,
		})
	}

	data, err := csvutil.Marshal(rows)
	if err != nil {
		return fmt.Errorf("encode csv: %w", err)
	}
	if err := filex.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	a.printf("Exported %d product(s) to %s\n", len(rows), path)
	return nil
}
