package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/dmitrijs2005/warrantyguard/internal/client/scan"
	"github.com/dmitrijs2005/warrantyguard/internal/warranty"
)

// recentCount is how many records the dashboard shows.
const recentCount = 3

func (a *App) emptyDraft() warranty.Draft {
	return warranty.Draft{
		PurchaseDate:   warranty.DateOf(a.now()).String(),
		WarrantyMonths: strconv.Itoa(warranty.DefaultWarrantyMonths),
		Category:       string(warranty.CategoryOther),
	}
}

// fillDraft walks the user through the form, offering d as defaults.
func (a *App) fillDraft(d warranty.Draft) (warranty.Draft, error) {
	fields := []struct {
		prompt string
		value  *string
	}{
		{"Product name", &d.Name},
		{"Serial number", &d.SerialNumber},
		{"Purchase date (YYYY-MM-DD)", &d.PurchaseDate},
		{"Warranty (months)", &d.WarrantyMonths},
		{fmt.Sprintf("Category %v", warranty.Categories), &d.Category},
		{"Notes", &d.Notes},
	}

	for _, f := range fields {
		v, err := GetTextWithDefault(a.reader, f.prompt, *f.value, a.out)
		if err != nil {
			return d, err
		}
		*f.value = v
	}
	return d, nil
}

// submitForm shows the form until save accepts the draft, the user gives
// up, or input fails. Validation errors re-open the form with the values
// typed so far. It reports whether the draft was saved.
func (a *App) submitForm(d warranty.Draft, save func(warranty.Draft) error) (bool, error) {
	for {
		var err error
		d, err = a.fillDraft(d)
		if err != nil {
			return false, err
		}

		err = save(d)
		if err == nil {
			return true, nil
		}

		var ve *warranty.ValidationError
		if !errors.As(err, &ve) {
			return false, err
		}
		a.println(describeError(err))

		retry, err := Confirm(a.reader, "Fix and try again?", a.out)
		if err != nil || !retry {
			return false, err
		}
	}
}

func (a *App) Add(ctx context.Context) error {
	var added warranty.Product
	ok, err := a.submitForm(a.emptyDraft(), func(d warranty.Draft) error {
		p, err := a.products.Add(ctx, d)
		if err != nil {
			return err
		}
		added = p
		return nil
	})
	if err != nil {
		return err
	}
	if !ok {
		a.println("Nothing added.")
		return nil
	}

	a.printf("Added %q, id %s\n", added.Name, added.ID)
	return nil
}

// Scan reads one code from the scanner and then opens the add form with the
// code as serial number. The session ends when the record is saved or the
// user gives up.
func (a *App) Scan(ctx context.Context) error {
	s := scan.NewLineScanner(a.reader)
	if err := a.intake.Begin(ctx, s); err != nil {
		return err
	}
	defer func() { _ = a.intake.Cancel() }()

	a.println("Scan a barcode now (or type the code). Empty line cancels.")
	code, err := a.intake.Wait(ctx, s.Done())
	if errors.Is(err, scan.ErrCancelled) {
		a.println("Scan cancelled.")
		return nil
	}
	if err != nil {
		return err
	}
	a.printf("Scanned code: %s\n", code)

	draft := a.emptyDraft()
	draft.SerialNumber = code

	var added warranty.Product
	ok, err := a.submitForm(draft, func(d warranty.Draft) error {
		return a.intake.Complete(func(string) error {
			p, err := a.products.Add(ctx, d)
			if err != nil {
				return err
			}
			added = p
			return nil
		})
	})
	if err != nil {
		return err
	}
	if !ok {
		a.println("Nothing added.")
		return nil
	}

	a.printf("Added %q, id %s\n", added.Name, added.ID)
	return nil
}

func (a *App) List(ctx context.Context) error {
	list, err := a.products.List(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.println("No products yet. Use 'add' or 'scan'.")
		return nil
	}
	a.printProducts(list)
	return nil
}

func (a *App) Search(ctx context.Context, term string) error {
	list, err := a.products.Search(ctx, term)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.printf("Nothing matches %q.\n", term)
		return nil
	}
	a.printProducts(list)
	return nil
}

func (a *App) Delete(ctx context.Context, id string) error {
	if err := a.products.Remove(ctx, id); err != nil {
		return err
	}
	a.println("Deleted.")
	return nil
}

func (a *App) Dashboard(ctx context.Context) error {
	list, err := a.products.List(ctx)
	if err != nil {
		return err
	}

	sum := warranty.Summarize(list, a.now())
	a.printf("Total: %d  Active: %d  Expired: %d\n", sum.Total, sum.Active, sum.Expired)

	if len(list) == 0 {
		return nil
	}
	a.println("Recent:")
	a.printProducts(list[:min(recentCount, len(list))])
	return nil
}

// printProducts renders records newest first with their current status.
func (a *App) printProducts(list []warranty.Product) {
	now := a.now()
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSERIAL\tCATEGORY\tEXPIRES\tSTATUS")
	for _, p := range list {
		st := warranty.Evaluate(p, now)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.Name, p.SerialNumber, p.Category.Label(), st.FormattedExpireDate(), statusText(st))
	}
	_ = tw.Flush()
}

func statusText(st warranty.Status) string {
	if !st.IsValid {
		return "expired"
	}
	if st.DaysLeft == 1 {
		return "active, 1 day left"
	}
	return fmt.Sprintf("active, %d days left", st.DaysLeft)
}
