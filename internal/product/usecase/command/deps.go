package command

import (
	"context"

	"github.com/connectchain/admin-api/kafka"
)

// CategoryChecker verifies that a referenced category exists and is live
type CategoryChecker interface {
	CategoryExists(ctx context.Context, id uint) (bool, error)
}

// PartnerChecker verifies that a referenced supplier or customer exists
type PartnerChecker interface {
	UserExistsWithRole(ctx context.Context, id uint, role string) (bool, error)
}

// EventPublisher publishes catalog change events after commit. A nil
// publisher disables events.
type EventPublisher interface {
	PublishCatalogEvent(ctx context.Context, event kafka.CatalogEvent) error
}
