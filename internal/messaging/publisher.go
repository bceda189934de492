package messaging

import (
	"context"

	"github.com/feral-file/ff-staker/internal/domain"
)

// Publisher defines the interface for publishing committed ledger events to a message broker
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishLedgerEvent publishes a committed ledger event
	PublishLedgerEvent(ctx context.Context, event *domain.LedgerEvent) error
	// Close closes the connection
	Close()
}

type noopPublisher struct{}

// NewNoopPublisher returns a publisher that drops every event. It is used when no broker is configured.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) PublishLedgerEvent(context.Context, *domain.LedgerEvent) error {
	return nil
}

func (noopPublisher) Close() {}
