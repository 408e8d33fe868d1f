package kafka

import "time"

// CatalogEvent represents a change to the product catalog, published after
// the owning transaction has committed
type CatalogEvent struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	EntityID   uint      `json:"entity_id"`
	EntityName string    `json:"entity_name"`
	ActorID    uint      `json:"actor_id"`
	Timestamp  time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeProductCreated        = "product.created"
	EventTypeProductUpdated        = "product.updated"
	EventTypeProductDeleted        = "product.deleted"
	EventTypeCategoryStatusChanged = "category.status_changed"
	EventTypeOrderStatusChanged    = "order.status_changed"
)

// Kafka topics
const (
	TopicCatalogChanged = "catalog-changed"
)
