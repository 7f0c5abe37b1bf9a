package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_CreateAndValidate(t *testing.T) {
	s := NewStore(time.Hour)

	id, err := s.Create()
	require.NoError(t, err)
	assert.Len(t, id, 32)
	assert.True(t, s.Valid(id))
	assert.False(t, s.Valid("deadbeefdeadbeefdeadbeefdeadbeef"))

	other, err := s.Create()
	require.NoError(t, err)
	assert.NotEqual(t, id, other)
}

func TestStore_CredentialRoundTrip(t *testing.T) {
	s := NewStore(time.Hour)
	id, err := s.Create()
	require.NoError(t, err)

	_, ok := s.Credential(id)
	assert.False(t, ok)

	require.True(t, s.SetCredential(id, "sk-or-alpha"))
	got, ok := s.Credential(id)
	require.True(t, ok)
	assert.Equal(t, "sk-or-alpha", got)

	require.True(t, s.ClearCredential(id))
	_, ok = s.Credential(id)
	assert.False(t, ok)
	assert.True(t, s.Valid(id))
}

func TestStore_SessionsIsolated(t *testing.T) {
	s := NewStore(time.Hour)
	alice, err := s.Create()
	require.NoError(t, err)
	bob, err := s.Create()
	require.NoError(t, err)

	require.True(t, s.SetCredential(alice, "sk-or-alice"))
	require.True(t, s.SetCredential(bob, "sk-or-bob"))

	got, ok := s.Credential(alice)
	require.True(t, ok)
	assert.Equal(t, "sk-or-alice", got)

	got, ok = s.Credential(bob)
	require.True(t, ok)
	assert.Equal(t, "sk-or-bob", got)

	require.True(t, s.ClearCredential(alice))
	_, ok = s.Credential(alice)
	assert.False(t, ok)
	got, ok = s.Credential(bob)
	require.True(t, ok)
	assert.Equal(t, "sk-or-bob", got)
}

func TestStore_IdleExpiry(t *testing.T) {
	s := NewStore(time.Minute)
	clock := time.Date(2025, time.March, 7, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }

	id, err := s.Create()
	require.NoError(t, err)
	require.True(t, s.SetCredential(id, "sk-or-alpha"))

	clock = clock.Add(59 * time.Second)
	assert.True(t, s.Valid(id))

	// The access above refreshed the idle timer.
	clock = clock.Add(59 * time.Second)
	_, ok := s.Credential(id)
	assert.True(t, ok)

	clock = clock.Add(2 * time.Minute)
	_, ok = s.Credential(id)
	assert.False(t, ok)
	assert.False(t, s.Valid(id))
	assert.False(t, s.SetCredential(id, "sk-or-beta"))
}

func TestStore_CreateSweepsExpired(t *testing.T) {
	s := NewStore(time.Minute)
	clock := time.Date(2025, time.March, 7, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }

	stale, err := s.Create()
	require.NoError(t, err)
	assert.Equal(t, 1, s.Len())

	clock = clock.Add(2 * time.Minute)
	fresh, err := s.Create()
	require.NoError(t, err)

	assert.Equal(t, 1, s.Len())
	assert.False(t, s.Valid(stale))
	assert.True(t, s.Valid(fresh))
}
