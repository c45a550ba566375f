package warranty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// DefaultWarrantyMonths pre-fills the add form.
const DefaultWarrantyMonths = 12

// Product is one tracked purchase. Records are immutable once stored.
type Product struct {
	ID             string   `json:"id" csv:"id"`
	Name           string   `json:"name" csv:"name"`
	SerialNumber   string   `json:"serialNumber" csv:"serial_number"`
	PurchaseDate   Date     `json:"purchaseDate" csv:"purchase_date"`
	WarrantyMonths int      `json:"warrantyMonths" csv:"warranty_months"`
	Category       Category `json:"category" csv:"category"`
	Notes          string   `json:"notes,omitempty" csv:"notes"`
}

// Validate checks the invariants of a stored record.
func (p Product) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return invalid("id", "is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return invalid("name", "is required")
	}
	if p.PurchaseDate.IsZero() {
		return invalid("purchaseDate", "is required")
	}
	if _, err := ParseDate(p.PurchaseDate.String()); err != nil {
		return invalid("purchaseDate", "%s is not a calendar date", p.PurchaseDate)
	}
	if p.WarrantyMonths < 0 {
		return invalid("warrantyMonths", "must not be negative")
	}
	if _, err := ParseCategory(string(p.Category)); err != nil {
		return invalid("category", "%v", err)
	}
	return nil
}

// Draft is raw form input, as typed by a user or filled by the scanner.
type Draft struct {
	Name           string
	SerialNumber   string
	PurchaseDate   string
	WarrantyMonths string
	Category       string
	Notes          string
}

// Build validates the draft and turns it into a Product with the given id.
// It returns a *ValidationError naming the first bad field.
func (d Draft) Build(id string) (Product, error) {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return Product{}, invalid("name", "is required")
	}

	if strings.TrimSpace(d.PurchaseDate) == "" {
		return Product{}, invalid("purchaseDate", "is required")
	}
	date, err := ParseDate(d.PurchaseDate)
	if err != nil {
		return Product{}, invalid("purchaseDate", "expected YYYY-MM-DD, got %q", d.PurchaseDate)
	}

	rawMonths := strings.TrimSpace(d.WarrantyMonths)
	if rawMonths == "" {
		return Product{}, invalid("warrantyMonths", "is required")
	}
	months, err := strconv.Atoi(rawMonths)
	if err != nil {
		return Product{}, invalid("warrantyMonths", "%q is not a whole number", d.WarrantyMonths)
	}
	if months < 0 {
		return Product{}, invalid("warrantyMonths", "must not be negative")
	}

	category, err := ParseCategory(d.Category)
	if err != nil {
		return Product{}, invalid("category", "%v", err)
	}

	return Product{
		ID:             id,
		Name:           name,
		SerialNumber:   strings.TrimSpace(d.SerialNumber),
		PurchaseDate:   date,
		WarrantyMonths: months,
		Category:       category,
		Notes:          strings.TrimSpace(d.Notes),
	}, nil
}

// NewID returns a time-ordered unique id (UUID version 7).
func NewID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return id.String(), nil
}
