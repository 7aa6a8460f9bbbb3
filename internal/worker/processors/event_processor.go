package processors

import (
	"context"
	"fmt"
	"time"

	"channelfeed/internal/logger"
	"channelfeed/internal/webhook"
)

// Event types carried on the product-events topic.
const (
	EventProductSaved = "product.saved"
	EventStockChanged = "stock.changed"
)

// Event is one product-change message. product.saved events carry before and
// after snapshots from the admin save; stock.changed events only name the
// product whose stock moved elsewhere (checkout, imports).
type Event struct {
	Type      string            `json:"type"`
	Number    string            `json:"number"`
	Before    *webhook.Snapshot `json:"before,omitempty"`
	After     *webhook.Snapshot `json:"after,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

// EventProcessor turns product-change events into webhook deliveries.
type EventProcessor struct {
	notifier *webhook.Notifier
	logger   *logger.Logger
}

func NewEventProcessor(notifier *webhook.Notifier, log *logger.Logger) *EventProcessor {
	return &EventProcessor{notifier: notifier, logger: log}
}

func (p *EventProcessor) Process(ctx context.Context, event Event) error {
	switch event.Type {
	case EventProductSaved:
		if event.Before == nil || event.After == nil {
			return fmt.Errorf("product.saved event without snapshots")
		}
		decision := webhook.DetectChange(*event.Before, *event.After)
		if !decision.Changed {
			p.logger.Debug("no feed-relevant change for %q", decision.Number)
			return nil
		}
		return p.notifier.NotifyAllShops(ctx, decision.Number)

	case EventStockChanged:
		if event.Number == "" {
			return fmt.Errorf("stock.changed event without product number")
		}
		return p.notifier.NotifyAllShops(ctx, event.Number)

	default:
		return fmt.Errorf("unknown event type %q", event.Type)
	}
}
