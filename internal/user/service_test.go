package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_CreateAndLookup(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepository())

	created, err := svc.Create(ctx, "alice", "secret")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "alice", created.Username)

	byID, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, byID)

	byUsername, err := svc.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, created, byUsername)
}

func TestService_DuplicateUsername(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepository())

	_, err := svc.Create(ctx, "alice", "secret")
	require.NoError(t, err)

	_, err = svc.Create(ctx, "alice", "other")
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestService_NotFound(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepository())

	_, err := svc.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}
