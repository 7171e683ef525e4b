// internal/domain/currency.go
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Currency is immutable reference data, e.g. "Bitcoin".
type Currency struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"-"`
}

// NewCurrency creates a new Currency instance.
func NewCurrency(name string) *Currency {
	return &Currency{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
}
