package localstore

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMemory(t *testing.T) *Store {
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestGetSetDelete(t *testing.T) {
	s := openMemory(t)

	_, err := s.Get(KeyAvatar)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(KeyAvatar, "/avatars/cat.png"))
	require.NoError(t, s.Set(KeyAvatar, "/avatars/dog.png"))
	v, err := s.Get(KeyAvatar)
	require.NoError(t, err)
	assert.Equal(t, "/avatars/dog.png", v)

	require.NoError(t, s.Delete(KeyAvatar))
	_, err = s.Get(KeyAvatar)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTokenRoundTrip(t *testing.T) {
	s := openMemory(t)

	_, _, err := s.LoadToken()
	assert.ErrorIs(t, err, ErrNotFound)

	exp := time.Now().Add(time.Hour).Truncate(time.Millisecond)
	require.NoError(t, s.SaveToken("abc.def.ghi", exp))

	token, got, err := s.LoadToken()
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)
	assert.True(t, exp.Equal(got))

	require.NoError(t, s.ClearToken())
	_, _, err = s.LoadToken()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTokenWithoutExpiration(t *testing.T) {
	s := openMemory(t)
	require.NoError(t, s.Set(KeyToken, "abc"))
	_, _, err := s.LoadToken()
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(KeyTokenExpiration, "soon"))
	_, _, err = s.LoadToken()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCartSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.SaveCart([]string{"b7", "b1"}))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	ids, err := s.LoadCart()
	require.NoError(t, err)
	assert.Equal(t, []string{"b7", "b1"}, ids)
}
