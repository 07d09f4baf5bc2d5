// ABOUTME: Core data model for shopping list items
// ABOUTME: Provides constructors, validation, and derived line totals

package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ValidationError reports user-supplied input that cannot be persisted.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// ValidateDescription checks that a description is non-blank.
func ValidateDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return &ValidationError{Field: "description", Message: "cannot be empty or whitespace"}
	}
	return nil
}

// Item is a single line on the shopping list.
type Item struct {
	ID           int64           `json:"id" db:"Id"`
	Description  string          `json:"description" db:"Descricao"`
	Quantity     int             `json:"quantity" db:"Quantidade"`
	UnitPrice    decimal.Decimal `json:"unit_price" db:"Preco"`
	RegisteredAt time.Time       `json:"registered_at" db:"DataCadastro"`
}

// NewItem creates an unsaved item registered now. The store assigns the ID.
func NewItem(description string, quantity int, unitPrice decimal.Decimal) *Item {
	return &Item{
		Description:  description,
		Quantity:     quantity,
		UnitPrice:    unitPrice,
		RegisteredAt: time.Now(),
	}
}

// Validate checks the fields a store requires before writing the item.
func (i *Item) Validate() error {
	return ValidateDescription(i.Description)
}

// LineTotal returns quantity times unit price.
func (i Item) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Total sums the line totals of items.
func Total(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}
