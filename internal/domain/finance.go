package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionDirection tells whether a transaction increases or
// decreases the user's balance. The wire field is named "status" for
// compatibility with existing clients.
type TransactionDirection string

const (
	DirectionReceived TransactionDirection = "Received"
	DirectionSent     TransactionDirection = "Sent"
)

// ParseDirection accepts "received"/"sent" in any casing.
func ParseDirection(s string) (TransactionDirection, bool) {
	switch strings.ToLower(s) {
	case "received":
		return DirectionReceived, true
	case "sent":
		return DirectionSent, true
	}
	return "", false
}

// Transaction is one row of a user's ledger. Total is the running
// balance persisted at the time the transaction was recorded: the
// previous row's total plus the amount for Received, minus it for
// Sent, starting from zero. Totals are not recomputed when a row is
// later updated or deleted; FinanceService.Recompute repairs them.
type Transaction struct {
	ID           string               `json:"id"`
	UserID       string               `json:"-"`
	Amount       decimal.Decimal      `json:"amount"`
	Currency     string               `json:"currency"`
	Direction    TransactionDirection `json:"status"`
	Notes        string               `json:"notes"`
	Total        decimal.Decimal      `json:"total"`
	Timestamp    time.Time            `json:"timestamp"`
	ReceiptImage *string              `json:"receipt_image"`
}

// Signed returns the amount with the sign implied by the direction.
func (t *Transaction) Signed() decimal.Decimal {
	if t.Direction == DirectionSent {
		return t.Amount.Neg()
	}
	return t.Amount
}
