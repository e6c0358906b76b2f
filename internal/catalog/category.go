package catalog

import (
	"database/sql/driver"
	"fmt"
)

// Category is the closed set of product categories. It is persisted and
// serialized by label, never by ordinal.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryCloths
	CategoryFood
	CategoryHousewares
	CategoryAutomotive
	CategoryTools
)

var categoryLabels = [...]string{
	CategoryUnknown:    "UNKNOWN",
	CategoryCloths:     "CLOTHS",
	CategoryFood:       "FOOD",
	CategoryHousewares: "HOUSEWARES",
	CategoryAutomotive: "AUTOMOTIVE",
	CategoryTools:      "TOOLS",
}

var categoriesByLabel = func() map[string]Category {
	m := make(map[string]Category, len(categoryLabels))
	for c, label := range categoryLabels {
		m[label] = Category(c)
	}
	return m
}()

// Categories returns every category in ordinal order.
func Categories() []Category {
	out := make([]Category, len(categoryLabels))
	for i := range categoryLabels {
		out[i] = Category(i)
	}
	return out
}

// ParseCategory resolves an exact, case-sensitive label.
func ParseCategory(label string) (Category, error) {
	c, ok := categoriesByLabel[label]
	if !ok {
		return CategoryUnknown, validationErr("Invalid attribute: " + label)
	}
	return c, nil
}

func (c Category) Valid() bool {
	return c >= 0 && int(c) < len(categoryLabels)
}

func (c Category) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryLabels[c]
}

func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid category %d", int(c))
	}
	return []byte(categoryLabels[c]), nil
}

func (c *Category) UnmarshalText(b []byte) error {
	v, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Value stores the label in the category column.
func (c Category) Value() (driver.Value, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid category %d", int(c))
	}
	return categoryLabels[c], nil
}

func (c *Category) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return c.UnmarshalText([]byte(v))
	case []byte:
		return c.UnmarshalText(v)
	default:
		return fmt.Errorf("cannot scan %T into Category", src)
	}
}
