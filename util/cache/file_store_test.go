package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := NewFileStore(dir, ".png", time.Hour)
	require.NoError(t, err)
	clock := newClock()
	c := New(store, WithClock(clock.Now))

	key := "eth_0x6b175474e89094c44da98b954eedeac495271d0f"
	require.NoError(t, c.Put(ctx, key, []byte("png-bytes"), time.Hour))

	// payload is stored raw under a deterministic name
	raw, err := os.ReadFile(filepath.Join(dir, key+".png"))
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), raw)
	assert.Equal(t, store.Path(key), filepath.Join(dir, key+".png"))

	e, ok := c.Get(ctx, key)
	require.True(t, ok)
	assert.Equal(t, []byte("png-bytes"), e.Payload)
	assert.True(t, clock.now.Equal(e.CreatedAt))
	assert.Equal(t, time.Hour, e.TTL)

	clock.Advance(61 * time.Minute)
	_, ok = c.Get(ctx, key)
	assert.False(t, ok)
}

func TestFileStoreOverwrite(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir(), ".png", time.Hour)
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx, Entry{Key: "k", Payload: []byte("old"), CreatedAt: time.Now(), TTL: time.Hour}))
	require.NoError(t, store.Save(ctx, Entry{Key: "k", Payload: []byte("new"), CreatedAt: time.Now(), TTL: Forever}))

	e, found, err := store.Load(ctx, "k")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []byte("new"), e.Payload)
	assert.Equal(t, Forever, e.TTL)

	// no temp files are left behind
	files, err := filepath.Glob(filepath.Join(store.Dir(), ".tmp-*"))
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestFileStoreWithoutSidecarUsesMtime(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := NewFileStore(dir, ".png", 30*time.Minute)
	require.NoError(t, err)

	path := store.Path("bsc_0xabc")
	require.NoError(t, os.WriteFile(path, []byte("legacy"), 0644))
	mtime := time.Now().Add(-10 * time.Minute).Truncate(time.Second)
	require.NoError(t, os.Chtimes(path, mtime, mtime))

	e, found, err := store.Load(ctx, "bsc_0xabc")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []byte("legacy"), e.Payload)
	assert.True(t, mtime.Equal(e.CreatedAt))
	assert.Equal(t, 30*time.Minute, e.TTL)
}

func TestFileStoreMissingKey(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), ".png", time.Hour)
	require.NoError(t, err)
	_, found, err := store.Load(context.Background(), "nothing")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSanitizeKey(t *testing.T) {
	assert.Equal(t, "eth_0xAbC", sanitizeKey("eth_0xAbC"))
	assert.Equal(t, ".._etc_passwd", sanitizeKey("../etc/passwd"))
	assert.Equal(t, "a_b_c", sanitizeKey("a b/c"))
}
