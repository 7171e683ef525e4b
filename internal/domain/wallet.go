// internal/domain/wallet.go
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Wallet is owned by exactly one user and holds assets.
type Wallet struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"userId"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"-"`
}

// NewWallet creates a new Wallet instance.
func NewWallet(userID uuid.UUID, name string) *Wallet {
	return &Wallet{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
}
