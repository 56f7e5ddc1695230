package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "Plain title", input: "Funny Movie", want: "funny-movie"},
		{name: "Punctuation collapsed", input: "  Mission: Impossible -- 2!", want: "mission-impossible-2"},
		{name: "Nothing usable", input: "***", want: ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Slugify(tc.input))
		})
	}
}

func TestMovieImageKey(t *testing.T) {
	key := MovieImageKey("Action Movie", ".png")
	assert.True(t, strings.HasPrefix(key, "uploads/movies/action-movie-"), "unexpected key %s", key)
	assert.True(t, strings.HasSuffix(key, ".png"))
	assert.NotEqual(t, key, MovieImageKey("Action Movie", ".png"), "expected keys to be unique")

	assert.True(t, strings.HasPrefix(MovieImageKey("!!!", ".jpg"), "uploads/movies/movie-"))
}

func TestExtensionFor(t *testing.T) {
	ext, ok := ExtensionFor("image/png")
	assert.True(t, ok)
	assert.Equal(t, ".png", ext)

	_, ok = ExtensionFor("text/plain; charset=utf-8")
	assert.False(t, ok)
}

func TestLocalStore(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocalStore(root, "/media/")
	require.NoError(t, err)

	ctx := context.Background()
	ref, err := store.Put(ctx, "uploads/movies/poster.png", strings.NewReader("png-bytes"), 9, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "/media/uploads/movies/poster.png", ref)

	content, err := os.ReadFile(filepath.Join(root, "uploads", "movies", "poster.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(content))

	require.NoError(t, store.Delete(ctx, "uploads/movies/poster.png"))
	_, err = os.Stat(filepath.Join(root, "uploads", "movies", "poster.png"))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, store.Delete(ctx, "uploads/movies/missing.png"), "deleting a missing image should not fail")

	key, ok := store.KeyOf(ref)
	assert.True(t, ok)
	assert.Equal(t, "uploads/movies/poster.png", key)
	_, ok = store.KeyOf("https://elsewhere.example.com/poster.png")
	assert.False(t, ok)

	_, err = store.Put(ctx, "../outside.png", strings.NewReader("x"), 1, "image/png")
	assert.Error(t, err, "expected keys outside the root to be rejected")
}

func TestNewS3Store(t *testing.T) {
	tests := []struct {
		name        string
		cfg         S3Config
		expectedErr bool
	}{
		{name: "Missing bucket", cfg: S3Config{Region: "eu-central-1"}, expectedErr: true},
		{name: "Missing region", cfg: S3Config{Bucket: "posters"}, expectedErr: true},
		{name: "Custom endpoint", cfg: S3Config{Bucket: "posters", Region: "eu-central-1", Endpoint: "minio.local:9000", PathStyle: true, KeyID: "id", Secret: "secret"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store, err := NewS3Store(tc.cfg)
			if tc.expectedErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "s3://posters", store.publicURL)
			key, ok := store.KeyOf("s3://posters/uploads/movies/a.png")
			assert.True(t, ok)
			assert.Equal(t, "uploads/movies/a.png", key)
		})
	}
}
