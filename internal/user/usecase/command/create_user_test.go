package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/connectchain/admin-api/internal/apperr"
	"github.com/connectchain/admin-api/internal/user/domain"
	"github.com/connectchain/admin-api/pkg/auth"
	"github.com/connectchain/admin-api/pkg/listing"
)

type fakeUserRepo struct {
	users  map[uint]*domain.User
	nextID uint
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: map[uint]*domain.User{}, nextID: 1}
	for _, u := range users {
		repo.users[u.ID] = u
		if u.ID >= repo.nextID {
			repo.nextID = u.ID + 1
		}
	}
	return repo
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	for _, existing := range f.users {
		if existing.Email == user.Email || existing.Username == user.Username {
			return apperr.Conflict("user with this username or email already exists")
		}
	}
	user.ID = f.nextID
	f.nextID++
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperr.NotFound("user %d not found", id)
	}
	return u, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperr.NotFound("user with email %q not found", email)
}

func (f *fakeUserRepo) List(ctx context.Context, filter domain.UserFilter, page listing.Page, sort listing.Sort) ([]domain.User, int64, error) {
	return nil, 0, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *domain.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) SetActive(ctx context.Context, id uint, active bool) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperr.NotFound("user %d not found", id)
	}
	if u.IsActive == active {
		return nil, apperr.StateConflict("user %d state unchanged", id)
	}
	u.IsActive = active
	return u, nil
}

func (f *fakeUserRepo) SoftDelete(ctx context.Context, id uint) error {
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) ExistsWithRole(ctx context.Context, id uint, role string) (bool, error) {
	u, ok := f.users[id]
	return ok && u.Role == role, nil
}

func TestCreateUser(t *testing.T) {
	repo := newFakeUserRepo()
	handler := NewCreateUserHandler(repo)

	user, err := handler.Handle(context.Background(), CreateUserCommand{
		Username:    "acme",
		Email:       "Sales@Acme.example",
		FullName:    "Acme Industrial",
		CompanyName: "Acme GmbH",
		Role:        domain.RoleSupplier,
		Password:    "s3cret-pass",
	})
	require.NoError(t, err)

	assert.Equal(t, "sales@acme.example", user.Email, "email is normalized")
	assert.True(t, user.IsActive)
	assert.False(t, user.IsVerified, "suppliers start unverified")
	assert.NotEqual(t, "s3cret-pass", user.Password, "password is never stored in the clear")
	assert.True(t, auth.CheckPassword("s3cret-pass", user.Password))
}

func TestCreateUser_TemporaryPassword(t *testing.T) {
	handler := NewCreateUserHandler(newFakeUserRepo())

	user, err := handler.Handle(context.Background(), CreateUserCommand{
		Username: "buyer",
		Email:    "buyer@example.com",
		FullName: "Buyer One",
		Role:     domain.RoleCustomer,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, user.Password, "a temporary password is generated and hashed")
}

func TestCreateUser_Validation(t *testing.T) {
	handler := NewCreateUserHandler(newFakeUserRepo())

	cases := []struct {
		name string
		cmd  CreateUserCommand
	}{
		{"missing username", CreateUserCommand{Email: "a@b.c", FullName: "A", Role: domain.RoleSupplier}},
		{"bad email", CreateUserCommand{Username: "a", Email: "nope", FullName: "A", Role: domain.RoleSupplier}},
		{"missing full name", CreateUserCommand{Username: "a", Email: "a@b.c", Role: domain.RoleSupplier}},
		{"admin role refused", CreateUserCommand{Username: "a", Email: "a@b.c", FullName: "A", Role: domain.RoleAdmin}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := handler.Handle(context.Background(), tc.cmd)
			require.Error(t, err)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		})
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo(&domain.User{ID: 1, Username: "acme", Email: "sales@acme.example", Role: domain.RoleSupplier})
	handler := NewCreateUserHandler(repo)

	_, err := handler.Handle(context.Background(), CreateUserCommand{
		Username: "acme2",
		Email:    "sales@acme.example",
		FullName: "Acme Again",
		Role:     domain.RoleSupplier,
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestToggleActive_RepeatedStateRejected(t *testing.T) {
	repo := newFakeUserRepo(&domain.User{ID: 3, Username: "acme", Email: "a@b.c", Role: domain.RoleSupplier, IsActive: true})
	handler := NewToggleActiveHandler(repo)

	_, err := handler.Handle(context.Background(), ToggleActiveCommand{UserID: 3, IsActive: true})
	require.Error(t, err)
	assert.Equal(t, apperr.KindStateConflict, apperr.KindOf(err))
}

func TestUpdateUser_VerifyOnlySuppliers(t *testing.T) {
	verified := true
	repo := newFakeUserRepo(&domain.User{ID: 4, Username: "buyer", Email: "b@b.c", FullName: "Buyer", Role: domain.RoleCustomer})
	handler := NewUpdateUserHandler(repo)

	_, err := handler.Handle(context.Background(), UpdateUserCommand{ID: 4, IsVerified: &verified})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}
