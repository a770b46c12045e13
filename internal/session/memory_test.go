package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	token, err := s.Create(ctx, "user-1", []string{"user", "admin"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	sess, err := s.Lookup(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", sess.UserID)
	assert.Equal(t, []string{"user", "admin"}, sess.Roles)

	require.NoError(t, s.Destroy(ctx, token))

	_, err = s.Lookup(ctx, token)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestMemoryStoreDestroyUnknownToken(t *testing.T) {
	s := NewMemoryStore()
	err := s.Destroy(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestMemoryStoreTokensAreUnique(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	t1, err := s.Create(ctx, "user-1", nil)
	require.NoError(t, err)
	t2, err := s.Create(ctx, "user-1", nil)
	require.NoError(t, err)
	assert.NotEqual(t, t1, t2)
}
