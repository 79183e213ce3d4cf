package users

import (
	"context"
	"testing"
	"time"

	"github.com/angelmondragon/bookhaven-backend/internal/repo/repotest"
	"github.com/angelmondragon/bookhaven-backend/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndFindByEmail(t *testing.T) {
	conn := repotest.NewDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	created, err := repo.Create(ctx, CreateUserDTO{
		Email:        "  Reader@Example.COM ",
		PasswordHash: "hash",
		FirstName:    "Ada",
		LastName:     "Byron",
		Permissions:  []string{"can_view_all_borrowed_books"},
	})
	require.NoError(t, err)
	assert.Equal(t, "reader@example.com", created.Email)
	assert.True(t, created.IsActive)

	found, err := repo.FindByEmail(ctx, "READER@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, []string{"can_view_all_borrowed_books"}, found.Permissions)

	byID, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada Byron", byID.FullName())
}

func TestCreateDuplicateEmail(t *testing.T) {
	conn := repotest.NewDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	_, err := repo.Create(ctx, CreateUserDTO{Email: "dup@example.com", PasswordHash: "h", FirstName: "A", LastName: "B"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, CreateUserDTO{Email: "DUP@example.com", PasswordHash: "h", FirstName: "C", LastName: "D"})
	require.Error(t, err)
	assert.True(t, db.IsUniqueViolation(err, ""))
}

func TestUpdateLastLogin(t *testing.T) {
	conn := repotest.NewDB(t)
	repo := NewRepository(conn)
	user := repotest.SeedUser(t, conn, "login@example.com")
	at := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

	require.NoError(t, repo.UpdateLastLogin(context.Background(), user.ID, at))

	found, err := repo.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.NotNil(t, found.LastLoginAt)
	assert.True(t, at.Equal(found.LastLoginAt.UTC()))
}

func TestFromModelNil(t *testing.T) {
	assert.Nil(t, FromModel(nil))
}
