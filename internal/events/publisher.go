package events

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionRecorded is emitted after a ledger row is committed.
type TransactionRecorded struct {
	TransactionID string          `json:"transaction_id"`
	UserID        string          `json:"user_id"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Direction     string          `json:"direction"`
	Total         decimal.Decimal `json:"total"`
	Timestamp     time.Time       `json:"timestamp"`
}

type Publisher interface {
	TransactionRecorded(ctx context.Context, evt TransactionRecorded) error
}

// NoopPublisher is used when event publication is disabled.
type NoopPublisher struct{}

func (NoopPublisher) TransactionRecorded(ctx context.Context, evt TransactionRecorded) error {
	return nil
}
