package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/maildeck/internal/core/domain"
)

func TestNewConfigStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "config")

	store, err := NewConfigStore(dir)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
	_, err = os.Stat(dir)
	require.NoError(t, err)
}

func TestConfigStore_SetPersistsImmediately(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Set("global.editor", domain.StringEntry("vi")))

	// A second store over the same directory sees the value.
	reopened, err := NewConfigStore(dir)
	require.NoError(t, err)
	entry, ok := reopened.Get("global.editor")
	require.True(t, ok)
	v, _ := entry.StringValue()
	assert.Equal(t, "vi", v)
}

func TestConfigStore_KindsSurviveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Set("index.limit", domain.IntegerEntry(100)))
	require.NoError(t, store.Set("index.folders", domain.ListEntry([]string{"inbox", "sent"})))

	reopened, err := NewConfigStore(dir)
	require.NoError(t, err)

	num, ok := reopened.Get("index.limit")
	require.True(t, ok)
	assert.Equal(t, domain.KindInteger, num.Kind())
	n, _ := num.IntegerValue()
	assert.Equal(t, int64(100), n)

	list, ok := reopened.Get("index.folders")
	require.True(t, ok)
	assert.Equal(t, domain.KindList, list.Kind())
	items, _ := list.ListValue()
	assert.Equal(t, []string{"inbox", "sent"}, items)
}

func TestConfigStore_SetReplacesKind(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("steve", domain.StringEntry("kemp")))
	require.NoError(t, store.Set("steve", domain.IntegerEntry(1)))

	entry, ok := store.Get("steve")
	require.True(t, ok)
	assert.Equal(t, domain.KindInteger, entry.Kind())
	assert.Len(t, store.Keys(), 1)
}

func TestConfigStore_Delete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Set("steve", domain.StringEntry("kemp")))
	require.NoError(t, store.Delete("steve"))

	reopened, err := NewConfigStore(dir)
	require.NoError(t, err)
	_, ok := reopened.Get("steve")
	assert.False(t, ok)
}

func TestConfigStore_LoadRejectsUnknownKind(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	contents := "[entries.\"bad.key\"]\nkind = \"float\"\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0600))

	_, err := NewConfigStore(dir)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestConfigStore_LoadMissingFileStartsEmpty(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())

	require.NoError(t, err)
	assert.Empty(t, store.Keys())
}
