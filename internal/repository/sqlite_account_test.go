package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/parley/internal/domain"
	"github.com/alexanderramin/parley/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountRepo_CreateAndGet(t *testing.T) {
	repo := NewSQLiteAccountRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	acc := testutil.NewTestAccount("John@Example.com", testutil.WithName("john"))
	require.NoError(t, repo.Create(ctx, acc))

	byEmail, err := repo.Get(ctx, AccountFilter{Email: "john@example.com"})
	require.NoError(t, err)
	assert.Equal(t, acc.ID, byEmail.ID)
	assert.Equal(t, "john@example.com", byEmail.Email)
	assert.Equal(t, "john", byEmail.Name)
	assert.Equal(t, domain.RoleUser, byEmail.Role)
	assert.True(t, byEmail.IsActive)
	assert.NotEmpty(t, byEmail.PasswordHash)

	byID, err := repo.Get(ctx, AccountFilter{ID: acc.ID, Email: "ignored@example.com"})
	require.NoError(t, err)
	assert.Equal(t, acc.ID, byID.ID)
}

func TestAccountRepo_Get_Errors(t *testing.T) {
	repo := NewSQLiteAccountRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	_, err := repo.Get(ctx, AccountFilter{Email: "nobody@example.com"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = repo.Get(ctx, AccountFilter{})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAccountRepo_Create_DuplicateEmail(t *testing.T) {
	repo := NewSQLiteAccountRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestAccount("dup@example.com")))
	err := repo.Create(ctx, testutil.NewTestAccount("DUP@example.com"))
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestAccountRepo_ListOmitsPassword(t *testing.T) {
	repo := NewSQLiteAccountRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, testutil.NewTestAccount("a@example.com")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestAccount("b@example.com")))

	accounts, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "b@example.com", accounts[0].Email)
	for _, a := range accounts {
		assert.Empty(t, a.PasswordHash)
	}
}

func TestAccountRepo_Update(t *testing.T) {
	repo := NewSQLiteAccountRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	a := testutil.NewTestAccount("a@example.com")
	b := testutil.NewTestAccount("b@example.com")
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	a.Role = domain.RoleAdmin
	a.Name = "alice"
	require.NoError(t, repo.Update(ctx, a))
	got, err := repo.Get(ctx, AccountFilter{ID: a.ID})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, got.Role)
	assert.Equal(t, "alice", got.Name)

	b.Email = "a@example.com"
	assert.ErrorIs(t, repo.Update(ctx, b), domain.ErrAlreadyExists)
}

func TestAccountRepo_UpdatePasswordAndDelete(t *testing.T) {
	repo := NewSQLiteAccountRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	a := testutil.NewTestAccount("a@example.com")
	require.NoError(t, repo.Create(ctx, a))

	require.NoError(t, repo.UpdatePassword(ctx, a.ID, "new-hash", time.Now().UTC()))
	got, err := repo.Get(ctx, AccountFilter{ID: a.ID})
	require.NoError(t, err)
	assert.Equal(t, "new-hash", got.PasswordHash)

	require.NoError(t, repo.Delete(ctx, a.ID))
	assert.ErrorIs(t, repo.Delete(ctx, a.ID), domain.ErrNotFound)
	assert.ErrorIs(t, repo.UpdatePassword(ctx, a.ID, "x", time.Now()), domain.ErrNotFound)
}
