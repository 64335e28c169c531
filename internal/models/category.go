package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Category classifies a product. The set of members is closed; an input
// string that does not name a member is a client error, never a fallback
// to CategoryUnknown.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryCloths
	CategoryFood
	CategoryHousewares
	CategoryAutomotive
	CategoryTools
)

var categoryNames = map[Category]string{
	CategoryUnknown:    "UNKNOWN",
	CategoryCloths:     "CLOTHS",
	CategoryFood:       "FOOD",
	CategoryHousewares: "HOUSEWARES",
	CategoryAutomotive: "AUTOMOTIVE",
	CategoryTools:      "TOOLS",
}

var categoriesByName = func() map[string]Category {
	byName := make(map[string]Category, len(categoryNames))
	for c, name := range categoryNames {
		byName[name] = c
	}
	return byName
}()

// ParseCategory resolves a category name to its member. Matching is
// case-insensitive: the name is upper-cased before lookup.
func ParseCategory(name string) (Category, error) {
	c, ok := categoriesByName[strings.ToUpper(name)]
	if !ok {
		return CategoryUnknown, fmt.Errorf("unknown category %q", name)
	}
	return c, nil
}

// String returns the member name, e.g. "CLOTHS".
func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return categoryNames[CategoryUnknown]
}

// MarshalJSON serializes the category as its member name.
func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON parses a category from its member name.
func (c *Category) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("category must be a string: %w", err)
	}
	parsed, err := ParseCategory(name)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Value stores the category as its member name.
func (c Category) Value() (driver.Value, error) {
	return c.String(), nil
}

// Scan reads the category back from its stored member name.
func (c *Category) Scan(value interface{}) error {
	var name string
	switch v := value.(type) {
	case string:
		name = v
	case []byte:
		name = string(v)
	default:
		return fmt.Errorf("cannot scan %T into Category", value)
	}
	parsed, err := ParseCategory(name)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
