package nats

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Lexv0lk/vending-machine/internal/store/domain"
	"github.com/nats-io/nats.go"
)

const (
	SubjectDeposits  = "vending.deposits"
	SubjectResets    = "vending.resets"
	SubjectPurchases = "vending.purchases"
)

type Publisher interface {
	Publish(subject string, data []byte) error
}

// EventPublisher sends ledger events as JSON, one subject per event kind.
type EventPublisher struct {
	publisher Publisher
}

func NewEventPublisher(publisher Publisher) *EventPublisher {
	return &EventPublisher{
		publisher: publisher,
	}
}

func Connect(url string) (*nats.Conn, error) {
	conn, err := nats.Connect(url,
		nats.Name("vending-machine"),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}

	return conn, nil
}

func (ep *EventPublisher) Publish(ctx context.Context, event domain.LedgerEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	subject, err := subjectFor(event.Kind)
	if err != nil {
		return err
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal ledger event: %w", err)
	}

	if err := ep.publisher.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", subject, err)
	}

	return nil
}

func subjectFor(kind domain.EventKind) (string, error) {
	switch kind {
	case domain.EventDeposit:
		return SubjectDeposits, nil
	case domain.EventReset:
		return SubjectResets, nil
	case domain.EventPurchase:
		return SubjectPurchases, nil
	default:
		return "", fmt.Errorf("unknown ledger event kind %q", kind)
	}
}

// NopPublisher is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, domain.LedgerEvent) error {
	return nil
}
