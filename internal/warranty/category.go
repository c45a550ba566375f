package warranty

import (
	"fmt"
	"strings"
)

type Category string

const (
	CategoryElectronics Category = "electronics"
	CategoryGadget      Category = "gadget"
	CategoryAutomotive  Category = "automotive"
	CategoryHousehold   Category = "household"
	CategoryOther       Category = "other"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryElectronics,
	CategoryGadget,
	CategoryAutomotive,
	CategoryHousehold,
	CategoryOther,
}

// labels are the Indonesian names older backups carry instead of the codes.
var labels = map[Category]string{
	CategoryElectronics: "Elektronik",
	CategoryGadget:      "Gadget",
	CategoryAutomotive:  "Otomotif",
	CategoryHousehold:   "Rumah Tangga",
	CategoryOther:       "Lainnya",
}

// Label returns the localized display name.
func (c Category) Label() string {
	if l, ok := labels[c]; ok {
		return l
	}
	return string(c)
}

// ParseCategory accepts a category code or its localized label, ignoring
// case. An empty string means CategoryOther.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return CategoryOther, nil
	}
	for _, c := range Categories {
		if strings.EqualFold(s, string(c)) || strings.EqualFold(s, labels[c]) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

func (c *Category) UnmarshalText(b []byte) error {
	parsed, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
