package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Type represents the type of a transaction record
type Type string

const (
	TypeDeposit    Type = "deposit"
	TypeWithdrawal Type = "withdrawal"
	TypeDispute    Type = "dispute"
	TypeResolve    Type = "resolve"
	TypeChargeback Type = "chargeback"
)

// ParseType converts the wire form of a transaction type into its canonical
// lowercase value. The vocabulary is closed; anything else is an error.
func ParseType(s string) (Type, error) {
	switch Type(strings.ToLower(strings.TrimSpace(s))) {
	case TypeDeposit:
		return TypeDeposit, nil
	case TypeWithdrawal:
		return TypeWithdrawal, nil
	case TypeDispute:
		return TypeDispute, nil
	case TypeResolve:
		return TypeResolve, nil
	case TypeChargeback:
		return TypeChargeback, nil
	}
	return "", fmt.Errorf("unknown transaction type %q", s)
}

// MovesFunds reports whether this transaction type carries an amount of its
// own. Dispute/resolve/chargeback reference an earlier transaction instead.
func (t Type) MovesFunds() bool {
	return t == TypeDeposit || t == TypeWithdrawal
}

// Transaction represents a single input record. Once recorded in history it is
// an immutable fact, except for the Disputed flag which tracks the dispute
// lifecycle of the deposit or withdrawal it belongs to.
type Transaction struct {
	Type     Type
	ClientID uint16
	TxID     uint32
	Amount   decimal.Decimal // meaningful only when Type.MovesFunds()
	Disputed bool
}

// Validate ensures the transaction adheres to domain rules
// Returns an error if validation fails
func (t *Transaction) Validate() error {
	if _, err := ParseType(string(t.Type)); err != nil {
		return err
	}

	// Deposits and withdrawals must carry a non-negative amount; the
	// referencing types ignore whatever amount they were decoded with.
	if t.Type.MovesFunds() && t.Amount.IsNegative() {
		return errors.New("transaction amount must not be negative")
	}

	return nil
}
