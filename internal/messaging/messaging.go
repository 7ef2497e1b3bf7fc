package messaging

import "context"

// Topics carrying domain events.
const (
	TopicOrdersPlaced  = "orders.placed"
	TopicStockAdjusted = "stock.adjusted"
	TopicStockLow      = "stock.low"
)

// Publisher defines an interface for publishing events to a message broker.
type Publisher interface {
	PublishEvent(ctx context.Context, topic string, key string, event any) error
}
