package warranty

import "time"

// ExpireDateLayout is how expiry dates are shown to users.
const ExpireDateLayout = "02 Jan 2006"

// Status is the warranty state of a product at some instant.
type Status struct {
	// IsValid is true while the expiry instant is strictly in the future.
	IsValid bool
	// DaysLeft counts calendar days from now's date to the expiry date, which
	// is the ceiling of the remaining time without DST drift. Zero or negative
	// once expired; use IsValid to decide.
	DaysLeft   int
	ExpireDate time.Time
}

// FormattedExpireDate renders the expiry date for display.
func (s Status) FormattedExpireDate() string {
	return s.ExpireDate.Format(ExpireDateLayout)
}

// ExpireDate is the purchase date plus the warranty months, clamped to the
// end of a shorter month.
func ExpireDate(p Product) Date {
	return p.PurchaseDate.AddMonths(p.WarrantyMonths)
}

// Evaluate computes the status of p at now. Dates are taken at midnight in
// now's location.
func Evaluate(p Product, now time.Time) Status {
	end := ExpireDate(p)
	expire := end.In(now.Location())

	return Status{
		IsValid:    expire.After(now),
		DaysLeft:   DateOf(now).DaysUntil(end),
		ExpireDate: expire,
	}
}

// Summary counts active and expired records.
type Summary struct {
	Total   int
	Active  int
	Expired int
}

func Summarize(products []Product, now time.Time) Summary {
	s := Summary{Total: len(products)}
	for _, p := range products {
		if Evaluate(p, now).IsValid {
			s.Active++
		} else {
			s.Expired++
		}
	}
	return s
}
