package blob

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocal(t *testing.T) *Local {
	t.Helper()
	store, err := NewLocal(t.TempDir(), "https://cdn.example.com")
	require.NoError(t, err)
	return store
}

func TestLocalPutGetRoundTrip(t *testing.T) {
	store := newTestLocal(t)
	ctx := context.Background()

	ref, err := store.Put(ctx, "conducere/Popescu_Ion.json", []byte(`{"person":{}}`), "application/json")
	require.NoError(t, err)
	assert.Equal(t, "conducere/Popescu_Ion.json", ref.Path)
	assert.Equal(t, "https://cdn.example.com/conducere/Popescu_Ion.json", ref.URL)

	body, err := store.Get(ctx, "conducere/Popescu_Ion.json")
	require.NoError(t, err)
	assert.Equal(t, `{"person":{}}`, string(body))
}

func TestLocalPutOverwrites(t *testing.T) {
	store := newTestLocal(t)
	ctx := context.Background()

	_, err := store.Put(ctx, "docs/a.txt", []byte("first"), "")
	require.NoError(t, err)
	_, err = store.Put(ctx, "docs/a.txt", []byte("second"), "")
	require.NoError(t, err)

	body, err := store.Get(ctx, "docs/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "second", string(body))
}

func TestLocalListByPrefix(t *testing.T) {
	store := newTestLocal(t)
	ctx := context.Background()

	for _, path := range []string{"news/a.json", "news/b.json", "projects/c.json"} {
		_, err := store.Put(ctx, path, []byte("{}"), "application/json")
		require.NoError(t, err)
	}

	objects, err := store.List(ctx, "news/")
	require.NoError(t, err)
	require.Len(t, objects, 2)
	assert.Equal(t, "news/a.json", objects[0].Path)
	assert.Equal(t, "a.json", objects[0].Filename)
	assert.Equal(t, int64(2), objects[0].Size)

	empty, err := store.List(ctx, "missing/")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestLocalDeleteAndExists(t *testing.T) {
	store := newTestLocal(t)
	ctx := context.Background()

	_, err := store.Put(ctx, "docs/a.txt", []byte("x"), "")
	require.NoError(t, err)

	exists, err := store.Exists(ctx, "docs/a.txt")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, store.Delete(ctx, "docs/a.txt"))
	// Deleting an absent object is not an error.
	require.NoError(t, store.Delete(ctx, "docs/a.txt"))

	exists, err = store.Exists(ctx, "docs/a.txt")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLocalRejectsRootEscape(t *testing.T) {
	store := newTestLocal(t)
	ctx := context.Background()

	_, err := store.Put(ctx, "../outside.txt", []byte("x"), "")
	assert.Error(t, err)
	_, err = store.Get(ctx, "../../etc/passwd")
	assert.Error(t, err)
	assert.Error(t, store.Delete(ctx, "../outside.txt"))
}

func TestLocalUsage(t *testing.T) {
	store := newTestLocal(t)
	ctx := context.Background()

	_, err := store.Put(ctx, "docs/a.txt", []byte("12345"), "")
	require.NoError(t, err)
	_, err = store.Put(ctx, "news/b.json", []byte("123"), "")
	require.NoError(t, err)

	usage, err := store.Usage(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(8), usage.TotalSize)
	assert.Equal(t, 2, usage.FileCount)
}

func TestPathFromURL(t *testing.T) {
	tests := []struct {
		name    string
		rawURL  string
		baseURL string
		want    string
	}{
		{"matching base", "https://cdn.example.com/news/a.json", "https://cdn.example.com", "news/a.json"},
		{"foreign host falls back", "https://other.example.com/news/a.json", "https://cdn.example.com", "news/a.json"},
		{"bare path", "/news/a.json", "https://cdn.example.com", "news/a.json"},
		{"no base configured", "https://cdn.example.com/news/a.json", "", "news/a.json"},
		{"host only", "https://cdn.example.com", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PathFromURL(tt.rawURL, tt.baseURL))
		})
	}
}
