package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leaar-backend/internal/domain"
	"leaar-backend/internal/repository"
)

func newTestDB(t *testing.T) (repository.UserRepository, repository.ProductRepository) {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	users := NewUserRepository(db)
	require.NoError(t, users.Init(context.Background()))
	products := NewProductRepository(db)
	require.NoError(t, products.Init(context.Background()))
	return users, products
}

func testUser(email string) *domain.User {
	return &domain.User{
		ID:           uuid.NewString(),
		Name:         "Ann Lee",
		Email:        email,
		PasswordHash: "$2a$10$fakefakefakefakefakefake",
		Role:         domain.RoleUser,
	}
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	users, _ := newTestDB(t)
	ctx := context.Background()

	user := testUser("ann@example.com")
	require.NoError(t, users.Create(ctx, user))
	assert.False(t, user.CreatedAt.IsZero())

	got, err := users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)
	assert.Equal(t, user.PasswordHash, got.PasswordHash)
	assert.Nil(t, got.LastLogin)
}

func TestUserRepository_GetByEmailIsCaseInsensitive(t *testing.T) {
	users, _ := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, testUser("ann@example.com")))

	got, err := users.GetByEmail(ctx, "ANN@EXAMPLE.COM")
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", got.Email)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	users, _ := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, testUser("ann@example.com")))

	// the unique index folds case, catching a racing duplicate register
	err := users.Create(ctx, testUser("ANN@example.com"))
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestUserRepository_Update(t *testing.T) {
	users, _ := newTestDB(t)
	ctx := context.Background()

	user := testUser("ann@example.com")
	require.NoError(t, users.Create(ctx, user))

	now := time.Now().UTC().Truncate(time.Second)
	user.Name = "Ann B. Lee"
	user.LastLogin = &now
	require.NoError(t, users.Update(ctx, user))

	got, err := users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ann B. Lee", got.Name)
	require.NotNil(t, got.LastLogin)
	assert.True(t, got.LastLogin.Equal(now))
}

func TestUserRepository_UpdateMissing(t *testing.T) {
	users, _ := newTestDB(t)

	err := users.Update(context.Background(), testUser("ghost@example.com"))
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepository_Delete(t *testing.T) {
	users, _ := newTestDB(t)
	ctx := context.Background()

	user := testUser("ann@example.com")
	require.NoError(t, users.Create(ctx, user))
	require.NoError(t, users.Delete(ctx, user.ID))

	_, err := users.GetByID(ctx, user.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.ErrorIs(t, users.Delete(ctx, user.ID), repository.ErrNotFound)
}

func TestProductRepository_CRUD(t *testing.T) {
	_, products := newTestDB(t)
	ctx := context.Background()

	product := &domain.Product{
		ID:       uuid.NewString(),
		Name:     "Widget",
		Price:    9.99,
		Category: "General",
		Stock:    3,
	}
	require.NoError(t, products.Create(ctx, product))

	got, err := products.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget", got.Name)
	assert.Equal(t, 9.99, got.Price)

	got.Stock = 0
	require.NoError(t, products.Update(ctx, got))
	got, err = products.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Zero(t, got.Stock)

	list, err := products.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, products.Delete(ctx, product.ID))
	_, err = products.GetByID(ctx, product.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
