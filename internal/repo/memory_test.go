package repo

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryUsers(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	id, err := m.CreateUser(ctx, "ada", "ada@example.com", "hash")
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	_, err = m.CreateUser(ctx, "ada", "other@example.com", "hash")
	assert.ErrorIs(t, err, ErrDuplicate)
	_, err = m.CreateUser(ctx, "bob", "ada@example.com", "hash")
	assert.ErrorIs(t, err, ErrDuplicate)

	got, hash, err := m.GetBylogin(ctx, "ada")
	require.NoError(t, err)
	assert.Equal(t, id, got)
	assert.Equal(t, "hash", hash)

	got, _, err = m.GetBylogin(ctx, "nobody")
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestMemoryRunsAreScopedPerUser(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}

	first, err := m.SaveRun(ctx, Run{UserID: 1, Kind: "analysis", Input: json.RawMessage(`{}`), Output: json.RawMessage(`{}`)})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, first.ID)
	second, err := m.SaveRun(ctx, Run{UserID: 1, Kind: "optimization"})
	require.NoError(t, err)
	_, err = m.SaveRun(ctx, Run{UserID: 2, Kind: "analysis"})
	require.NoError(t, err)

	list, err := m.ListRuns(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)

	got, err := m.GetRun(ctx, 1, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "analysis", got.Kind)

	_, err = m.GetRun(ctx, 2, first.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = m.GetRun(ctx, 1, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}
