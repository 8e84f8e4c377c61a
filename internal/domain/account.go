package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Account represents the derived state for a single client. It is created
// lazily on the client's first deposit and mutated in place afterwards;
// Total must equal Available plus Held at every observable point.
type Account struct {
	ClientID  uint16
	Available decimal.Decimal // funds free to withdraw or dispute
	Held      decimal.Decimal // funds frozen under an active dispute
	Total     decimal.Decimal
	Locked    bool // set once a chargeback has been applied
}

// NewAccount creates an empty, unlocked account for the given client.
func NewAccount(clientID uint16) *Account {
	return &Account{
		ClientID:  clientID,
		Available: decimal.Zero,
		Held:      decimal.Zero,
		Total:     decimal.Zero,
	}
}

// Validate ensures the account adheres to domain rules
// Returns an error if validation fails
func (a *Account) Validate() error {
	if !a.Total.Equal(a.Available.Add(a.Held)) {
		return errors.New("account total must equal available plus held")
	}

	if a.Available.IsNegative() || a.Held.IsNegative() || a.Total.IsNegative() {
		return errors.New("account balances must not be negative")
	}

	return nil
}
