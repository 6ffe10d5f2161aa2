package imagestore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskStoreSaveAndRemove(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir, "/uploads")
	require.NoError(t, err)

	url, ref, err := store.Save(context.Background(), "pancakes.jpg", "image/jpeg", strings.NewReader("payload"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/"))
	assert.True(t, strings.HasSuffix(url, "-pancakes.jpg"))
	assert.Equal(t, strings.TrimPrefix(url, "/uploads/"), ref)

	data, err := os.ReadFile(filepath.Join(dir, ref))
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))

	require.NoError(t, store.Remove(context.Background(), ref))
	_, err = os.Stat(filepath.Join(dir, ref))
	assert.True(t, os.IsNotExist(err))
}

func TestDiskStoreSanitizesNames(t *testing.T) {
	store, err := NewDiskStore(t.TempDir(), "/uploads")
	require.NoError(t, err)

	_, ref, err := store.Save(context.Background(), "../outside/my photo.png", "image/png", strings.NewReader("x"))
	require.NoError(t, err)
	assert.NotContains(t, ref, "/")
	assert.NotContains(t, ref, " ")
	assert.True(t, strings.HasSuffix(ref, "my_photo.png"))
}

func TestDiskStoreCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	_, err := NewDiskStore(dir, "/uploads")
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestObjectNameFallback(t *testing.T) {
	name := objectName("")
	assert.True(t, strings.HasSuffix(name, "-image"))
}
