package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/connectchain/admin-api/internal/apperr"
	"github.com/connectchain/admin-api/internal/category/domain"
	"github.com/connectchain/admin-api/kafka"
	"github.com/connectchain/admin-api/pkg/listing"
)

// fakeCategoryRepo is an in-memory stand-in for the category repository
type fakeCategoryRepo struct {
	categories map[uint]*domain.Category
}

func newFakeCategoryRepo(categories ...*domain.Category) *fakeCategoryRepo {
	repo := &fakeCategoryRepo{categories: map[uint]*domain.Category{}}
	for _, c := range categories {
		repo.categories[c.ID] = c
	}
	return repo
}

func (f *fakeCategoryRepo) Create(ctx context.Context, category *domain.Category) error {
	for _, existing := range f.categories {
		if existing.Name == category.Name {
			return apperr.Conflict("category %q already exists", category.Name)
		}
	}
	category.ID = uint(len(f.categories) + 1)
	f.categories[category.ID] = category
	return nil
}

func (f *fakeCategoryRepo) FindByID(ctx context.Context, id uint) (*domain.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return nil, apperr.NotFound("category %d not found", id)
	}
	return c, nil
}

func (f *fakeCategoryRepo) FindByName(ctx context.Context, name string) (*domain.Category, error) {
	for _, c := range f.categories {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, apperr.NotFound("category %q not found", name)
}

func (f *fakeCategoryRepo) List(ctx context.Context, filter domain.CategoryFilter, page listing.Page, sort listing.Sort) ([]domain.CategoryWithCount, int64, error) {
	return nil, 0, nil
}

func (f *fakeCategoryRepo) Update(ctx context.Context, category *domain.Category) error {
	f.categories[category.ID] = category
	return nil
}

func (f *fakeCategoryRepo) SetStatus(ctx context.Context, id uint, active bool) (*domain.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return nil, apperr.NotFound("category %d not found", id)
	}
	if c.IsActive == active {
		return nil, apperr.StateConflict("category %d is already in that state", id)
	}
	c.IsActive = active
	return c, nil
}

func (f *fakeCategoryRepo) SoftDelete(ctx context.Context, id uint) error {
	if _, ok := f.categories[id]; !ok {
		return apperr.NotFound("category %d not found", id)
	}
	delete(f.categories, id)
	return nil
}

type recordingPublisher struct {
	events []kafka.CatalogEvent
}

func (r *recordingPublisher) PublishCatalogEvent(ctx context.Context, event kafka.CatalogEvent) error {
	r.events = append(r.events, event)
	return nil
}

func TestSetCategoryStatus(t *testing.T) {
	repo := newFakeCategoryRepo(&domain.Category{ID: 2, Name: "Widgets", IsActive: true})
	publisher := &recordingPublisher{}
	handler := NewSetCategoryStatusHandler(repo, publisher)

	category, err := handler.Handle(context.Background(), SetCategoryStatusCommand{ID: 2, Active: false, ActorID: 1})
	require.NoError(t, err)
	assert.False(t, category.IsActive)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, kafka.EventTypeCategoryStatusChanged, publisher.events[0].EventType)
	assert.Equal(t, uint(2), publisher.events[0].EntityID)
}

func TestSetCategoryStatus_RepeatedStateRejected(t *testing.T) {
	repo := newFakeCategoryRepo(&domain.Category{ID: 2, Name: "Widgets", IsActive: true})
	handler := NewSetCategoryStatusHandler(repo, nil)

	_, err := handler.Handle(context.Background(), SetCategoryStatusCommand{ID: 2, Active: true})
	require.Error(t, err)
	assert.Equal(t, apperr.KindStateConflict, apperr.KindOf(err))
}

func TestSetCategoryStatus_MissingCategory(t *testing.T) {
	handler := NewSetCategoryStatusHandler(newFakeCategoryRepo(), nil)

	_, err := handler.Handle(context.Background(), SetCategoryStatusCommand{ID: 99, Active: false})
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestCreateCategory(t *testing.T) {
	repo := newFakeCategoryRepo()
	handler := NewCreateCategoryHandler(repo)

	category, err := handler.Handle(context.Background(), CreateCategoryCommand{Name: "  Widgets  ", Description: "All widgets"})
	require.NoError(t, err)
	assert.Equal(t, "Widgets", category.Name, "name is trimmed")
	assert.True(t, category.IsActive, "new categories start active")
}

func TestCreateCategory_DuplicateName(t *testing.T) {
	repo := newFakeCategoryRepo(&domain.Category{ID: 1, Name: "Widgets"})
	handler := NewCreateCategoryHandler(repo)

	_, err := handler.Handle(context.Background(), CreateCategoryCommand{Name: "Widgets"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestCreateCategory_BlankName(t *testing.T) {
	handler := NewCreateCategoryHandler(newFakeCategoryRepo())

	_, err := handler.Handle(context.Background(), CreateCategoryCommand{Name: "   "})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}
