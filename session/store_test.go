package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCookies() []Cookie {
	return []Cookie{
		{Name: "c_user", Value: "12345", Domain: ".facebook.com", Path: "/", Expires: 1893456000, Secure: true, HTTPOnly: true},
		{Name: "xs", Value: "abc%3Adef", Domain: ".facebook.com", Path: "/", Secure: true},
	}
}

func TestFileStoreRoundtrip(t *testing.T) {
	store := FileStore{Dir: t.TempDir()}

	require.NoError(t, store.Save("facebook", sampleCookies()))

	cookies, found, err := store.Load("facebook")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, sampleCookies(), cookies)
}

func TestFileStoreLoadAbsent(t *testing.T) {
	store := FileStore{Dir: t.TempDir()}

	cookies, found, err := store.Load("facebook")

	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, cookies)
}

func TestFileStoreLoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	store := FileStore{Dir: dir}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "facebook_session.json"), []byte("{not json"), 0o600))

	_, found, err := store.Load("facebook")

	assert.Error(t, err)
	assert.False(t, found)
}

func TestFileStoreLoadWrongVersion(t *testing.T) {
	dir := t.TempDir()
	store := FileStore{Dir: dir}
	blob := []byte(`{"version": 99, "saved_at": "2026-01-01T00:00:00Z", "cookies": []}`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "facebook_session.json"), blob, 0o600))

	_, _, err := store.Load("facebook")

	assert.Error(t, err)
}

func TestFileStoreClear(t *testing.T) {
	store := FileStore{Dir: t.TempDir()}
	require.NoError(t, store.Save("facebook", sampleCookies()))

	require.NoError(t, store.Clear("facebook"))

	_, found, err := store.Load("facebook")
	require.NoError(t, err)
	assert.False(t, found)

	// Clearing an absent session is not an error.
	assert.NoError(t, store.Clear("facebook"))
}

func TestFileStoreKeysAreIndependent(t *testing.T) {
	store := FileStore{Dir: t.TempDir()}
	require.NoError(t, store.Save("facebook", sampleCookies()))

	_, found, err := store.Load("craigslist")
	require.NoError(t, err)
	assert.False(t, found)
}
