package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medrecords-backend/internal/models"
)

func TestUserCreateRequiresFields(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	_, err := repo.Create(context.Background(), UserCreate{Username: "alice"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = repo.Create(context.Background(), UserCreate{
		Username: "alice", Password: "secret",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUserCreateUnknownRole(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	_, err := repo.Create(context.Background(), UserCreate{
		Username: "alice", Password: "secret", RoleID: 9999,
	})
	assert.ErrorIs(t, err, ErrReferenceNotFound)
}

func TestUserCreateHashesPassword(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	id, err := repo.Create(context.Background(), UserCreate{
		Username: "alice", Password: "secret", RoleID: roleID(t, db, models.RoleViewer),
	})
	require.NoError(t, err)

	user, err := repo.Get(context.Background(), id)
	require.NoError(t, err)
	assert.NotEqual(t, "secret", user.Password)
	assert.True(t, user.IsActive)
	assert.Equal(t, models.RoleViewer, user.Role.RoleName)
}

func TestUserListJoinsRoleName(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	createUser(t, db, "alice", "secret", models.RoleModification, true)
	createUser(t, db, "bob", "secret", models.RoleViewer, false)

	users, total, err := repo.List(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, models.RoleModification, users[0].Role)
	assert.True(t, users[0].IsActive)
	assert.Equal(t, models.RoleViewer, users[1].Role)
	assert.False(t, users[1].IsActive)
}

func TestUserUpdateRoleAndActiveFlag(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	id := createUser(t, db, "alice", "secret", models.RoleViewer, true)

	adminID := roleID(t, db, models.RoleAdmin)
	inactive := false
	user, err := repo.Update(context.Background(), id, UserUpdate{
		RoleID:   &adminID,
		IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role.RoleName)
	assert.False(t, user.IsActive)
	// username and hash untouched
	assert.Equal(t, "alice", user.Username)
}

func TestUserUpdateWithoutFieldsRejected(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	id := createUser(t, db, "alice", "secret", models.RoleViewer, true)

	_, err := repo.Update(context.Background(), id, UserUpdate{})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUserUpdateUnknownRoleRejected(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	id := createUser(t, db, "alice", "secret", models.RoleViewer, true)

	bad := uint(9999)
	_, err := repo.Update(context.Background(), id, UserUpdate{RoleID: &bad})
	assert.ErrorIs(t, err, ErrReferenceNotFound)

	// the active flag was not flipped along the way
	user, err := repo.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, models.RoleViewer, user.Role.RoleName)
}

func TestUserUpdateNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	active := true
	_, err := repo.Update(context.Background(), 9999, UserUpdate{IsActive: &active})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserGetByUsernameExactMatch(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	createUser(t, db, "alice", "secret", models.RoleViewer, true)

	user, err := repo.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = repo.GetByUsername(context.Background(), "Alice")
	assert.ErrorIs(t, err, ErrNotFound)
}
