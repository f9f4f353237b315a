package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *Store {
	return NewStore(filepath.Join(t.TempDir(), "session.json"))
}

func TestStoreLoadAbsent(t *testing.T) {
	store := testStore(t)

	_, ok, err := store.Load()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStoreSaveAndLoad(t *testing.T) {
	store := testStore(t)

	sess := Session{
		UserID:   uuid.New(),
		Username: "alice",
		Email:    "alice@example.com",
		Token:    "token-123",
	}
	require.NoError(t, store.Save(sess))

	loaded, ok, err := store.Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sess, loaded)
}

func TestStoreFileKeepsUserAndTokenKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewStore(path)

	require.NoError(t, store.Save(Session{
		UserID:   uuid.New(),
		Username: "alice",
		Email:    "alice@example.com",
		Token:    "token-123",
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "user")
	assert.Contains(t, raw, "token")

	// The token lives under its own key, not inside the user record.
	var user map[string]any
	require.NoError(t, json.Unmarshal(raw["user"], &user))
	assert.NotContains(t, user, "token")
}

func TestStoreClear(t *testing.T) {
	store := testStore(t)

	require.NoError(t, store.Save(Session{UserID: uuid.New(), Token: "t"}))
	require.NoError(t, store.Clear())

	_, ok, err := store.Load()
	require.NoError(t, err)
	assert.False(t, ok)

	// Clearing again is a no-op.
	require.NoError(t, store.Clear())
}
