package models

import (
	"strconv"
	"strings"
	"time"
)

type Offer struct {
	ID            string    `json:"id" db:"id"`
	Title         string    `json:"title" db:"title"`
	Discount      string    `json:"discount" db:"discount"`
	OriginalPrice float64   `json:"original_price" db:"original_price"`
	SalePrice     float64   `json:"sale_price" db:"sale_price"`
	Service       string    `json:"service" db:"service"`
	Description   string    `json:"description" db:"description"`
	ValidUntil    string    `json:"valid_until" db:"valid_until"`
	Terms         []string  `json:"terms" db:"terms"`
	Popular       bool      `json:"popular" db:"popular"`
	Color         string    `json:"color" db:"color"`
	ImageURL      *string   `json:"image_url,omitempty" db:"image_url"`
	Active        bool      `json:"active" db:"active"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// OfferRequest is shared by create and edit. The admin form sends prices
// as numbers or free text and terms as one comma-joined string.
type OfferRequest struct {
	Title         string      `json:"title" binding:"required"`
	Discount      string      `json:"discount" binding:"required"`
	OriginalPrice interface{} `json:"original_price"`
	SalePrice     interface{} `json:"sale_price"`
	Service       string      `json:"service" binding:"required"`
	Description   string      `json:"description"`
	ValidUntil    string      `json:"valid_until" binding:"required"`
	Terms         string      `json:"terms"`
	Popular       bool        `json:"popular"`
	Color         string      `json:"color"`
	ImageURL      *string     `json:"image_url,omitempty"`
	Active        bool        `json:"active"`
}

// ToRecord converts the form payload into a row, applying the form's
// coercions: loose prices to numbers, comma-joined terms to a list,
// unknown color tags to the default theme.
func (r *OfferRequest) ToRecord() map[string]interface{} {
	record := map[string]interface{}{
		"title":          r.Title,
		"discount":       r.Discount,
		"original_price": CoercePrice(r.OriginalPrice),
		"sale_price":     CoercePrice(r.SalePrice),
		"service":        r.Service,
		"description":    r.Description,
		"valid_until":    r.ValidUntil,
		"terms":          ParseTerms(r.Terms),
		"popular":        r.Popular,
		"color":          NormalizeColor(r.Color),
		"active":         r.Active,
	}
	if r.ImageURL != nil && *r.ImageURL != "" {
		record["image_url"] = *r.ImageURL
	}
	return record
}

// ParseTerms splits the form's comma-joined terms into a trimmed,
// empty-filtered list.
func ParseTerms(s string) []string {
	parts := strings.Split(s, ",")
	terms := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			terms = append(terms, t)
		}
	}
	return terms
}

// JoinTerms converts a stored terms list back to the form's string shape.
func JoinTerms(terms []string) string {
	return strings.Join(terms, ", ")
}

// CoercePrice normalizes a price value from the form; empty or
// unparseable input becomes 0.
func CoercePrice(v interface{}) float64 {
	switch p := v.(type) {
	case float64:
		return p
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// NormalizeColor falls back to the default theme for unknown tags.
func NormalizeColor(c string) string {
	if IsOfferColor(c) {
		return c
	}
	return DefaultOfferColor
}
