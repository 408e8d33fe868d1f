package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/connectchain/admin-api/internal/apperr"
	"github.com/connectchain/admin-api/internal/order/domain"
	"github.com/connectchain/admin-api/kafka"
	"github.com/connectchain/admin-api/pkg/listing"
)

type fakeOrderRepo struct {
	order *domain.Order
}

func (f *fakeOrderRepo) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	if f.order == nil || f.order.ID != id {
		return nil, apperr.NotFound("order %d not found", id)
	}
	return f.order, nil
}

func (f *fakeOrderRepo) List(ctx context.Context, filter domain.OrderFilter, page listing.Page, sort listing.Sort) ([]domain.Order, int64, error) {
	return nil, 0, nil
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, id uint, status string) (*domain.Order, error) {
	if f.order == nil || f.order.ID != id {
		return nil, apperr.NotFound("order %d not found", id)
	}
	if f.order.Status == status {
		return nil, apperr.StateConflict("order %d is already %s", id, status)
	}
	f.order.Status = status
	return f.order, nil
}

type recordingPublisher struct {
	events []kafka.CatalogEvent
}

func (r *recordingPublisher) PublishCatalogEvent(ctx context.Context, event kafka.CatalogEvent) error {
	r.events = append(r.events, event)
	return nil
}

func TestUpdateOrderStatus(t *testing.T) {
	repo := &fakeOrderRepo{order: &domain.Order{ID: 5, OrderNumber: "ORD-1001", Status: domain.StatusPending}}
	publisher := &recordingPublisher{}
	handler := NewUpdateOrderStatusHandler(repo, publisher)

	order, err := handler.Handle(context.Background(), UpdateOrderStatusCommand{ID: 5, Status: domain.StatusConfirmed, ActorID: 1})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, order.Status)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, kafka.EventTypeOrderStatusChanged, publisher.events[0].EventType)
	assert.Equal(t, "ORD-1001", publisher.events[0].EntityName)
}

func TestUpdateOrderStatus_UnknownStatusRejected(t *testing.T) {
	repo := &fakeOrderRepo{order: &domain.Order{ID: 5, Status: domain.StatusPending}}
	handler := NewUpdateOrderStatusHandler(repo, nil)

	_, err := handler.Handle(context.Background(), UpdateOrderStatusCommand{ID: 5, Status: "teleported"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Equal(t, domain.StatusPending, repo.order.Status, "invalid status must not mutate the order")
}

func TestUpdateOrderStatus_RepeatedStatusRejected(t *testing.T) {
	repo := &fakeOrderRepo{order: &domain.Order{ID: 5, Status: domain.StatusShipped}}
	handler := NewUpdateOrderStatusHandler(repo, nil)

	_, err := handler.Handle(context.Background(), UpdateOrderStatusCommand{ID: 5, Status: domain.StatusShipped})
	require.Error(t, err)
	assert.Equal(t, apperr.KindStateConflict, apperr.KindOf(err))
}

func TestUpdateOrderStatus_MissingOrder(t *testing.T) {
	handler := NewUpdateOrderStatusHandler(&fakeOrderRepo{}, nil)

	_, err := handler.Handle(context.Background(), UpdateOrderStatusCommand{ID: 42, Status: domain.StatusCancelled})
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{domain.StatusPending, domain.StatusConfirmed, domain.StatusProcessing, domain.StatusShipped, domain.StatusDelivered, domain.StatusCancelled} {
		assert.True(t, domain.ValidStatus(s), s)
	}
	assert.False(t, domain.ValidStatus(""))
	assert.False(t, domain.ValidStatus("PENDING"))
}
