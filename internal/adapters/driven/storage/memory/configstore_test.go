package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/maildeck/internal/core/domain"
)

func TestConfigStore_GetSet(t *testing.T) {
	store := NewConfigStore()

	_, ok := store.Get("steve")
	assert.False(t, ok)

	require.NoError(t, store.Set("steve", domain.StringEntry("kemp")))

	entry, ok := store.Get("steve")
	require.True(t, ok)
	assert.Equal(t, domain.KindString, entry.Kind())
}

func TestConfigStore_SetReplacesInPlace(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("steve", domain.StringEntry("kemp")))
	require.NoError(t, store.Set("steve", domain.IntegerEntry(1)))

	entry, ok := store.Get("steve")
	require.True(t, ok)
	assert.Equal(t, domain.KindInteger, entry.Kind())
	assert.Len(t, store.Keys(), 1)
}

func TestConfigStore_KeysSortedAndDistinct(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("b", domain.StringEntry("2")))
	require.NoError(t, store.Set("a", domain.StringEntry("1")))
	require.NoError(t, store.Set("b", domain.IntegerEntry(2)))

	assert.Equal(t, []string{"a", "b"}, store.Keys())
}

func TestConfigStore_Delete(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("steve", domain.StringEntry("kemp")))
	require.NoError(t, store.Delete("steve"))

	_, ok := store.Get("steve")
	assert.False(t, ok)
	assert.Empty(t, store.Keys())

	// Deleting an absent key is a no-op.
	require.NoError(t, store.Delete("steve"))
}

func TestConfigStore_SaveLoadPath(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Save())
	require.NoError(t, store.Load())
	assert.Equal(t, ":memory:", store.Path())
}
