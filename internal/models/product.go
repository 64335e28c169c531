package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Price is a fixed-point monetary value. It accepts JSON strings or numbers
// and always serializes as a string with two decimal places, matching the
// decimal(12,2) storage column.
type Price struct {
	decimal.Decimal
}

// MustPrice builds a Price from a decimal string, panicking on bad input.
// Intended for seed data and tests.
func MustPrice(value string) Price {
	return Price{Decimal: decimal.RequireFromString(value)}
}

// MarshalJSON serializes the price with fixed scale, so "10.00" does not
// come back as "10".
func (p Price) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.StringFixed(2))
}

// Product represents a product in the store. The ID is assigned by the
// storage layer at creation time and never changes afterwards.
type Product struct {
	ID          uint     `json:"id" gorm:"primaryKey"`
	Name        string   `json:"name" gorm:"not null;index"`
	Description string   `json:"description"`
	Price       Price    `json:"price" gorm:"type:decimal(12,2)"`
	Available   bool     `json:"available"`
	Category    Category `json:"category" gorm:"type:varchar(32)"`
}

// ProductPayload is the wire representation accepted by create and update.
// Required fields are pointers so a missing JSON key fails the "required"
// validation instead of defaulting silently.
type ProductPayload struct {
	Name        *string   `json:"name" validate:"required"`
	Description string    `json:"description"`
	Price       *Price    `json:"price" validate:"required"`
	Available   *bool     `json:"available" validate:"required"`
	Category    *Category `json:"category" validate:"required"`
}

// ToProduct builds a Product from a validated payload. Any id sent by the
// client is ignored; the storage layer owns id assignment.
func (p *ProductPayload) ToProduct() *Product {
	return &Product{
		Name:        *p.Name,
		Description: p.Description,
		Price:       *p.Price,
		Available:   *p.Available,
		Category:    *p.Category,
	}
}
