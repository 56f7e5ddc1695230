// Package storage keeps uploaded movie images either on the local filesystem
// or in an S3-compatible bucket.
package storage

import (
	"context"
	"io"
	"path"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// ImageStore persists an uploaded image under key and returns the reference
// that clients use to fetch it. KeyOf maps such a reference back to its key;
// ok is false for references the store did not produce.
type ImageStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	KeyOf(ref string) (key string, ok bool)
}

var (
	_ ImageStore = (*LocalStore)(nil)
	_ ImageStore = (*S3Store)(nil)
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lower-cases s and collapses everything that is not a letter or digit into single dashes.
func Slugify(s string) string {
	return strings.Trim(nonSlugChars.ReplaceAllString(strings.ToLower(s), "-"), "-")
}

// MovieImageKey builds a unique object key for an image of the movie titled title.
func MovieImageKey(title, extension string) string {
	name := Slugify(title)
	if name == "" {
		name = "movie"
	}
	return path.Join("uploads", "movies", name+"-"+uuid.NewString()+extension)
}

func keyUnder(prefix, ref string) (string, bool) {
	key, ok := strings.CutPrefix(ref, prefix+"/")
	if !ok || key == "" {
		return "", false
	}
	return key, true
}

// ExtensionFor maps the sniffed content type of an accepted image to a file extension.
// ok is false for content types that are not accepted as movie images.
func ExtensionFor(contentType string) (ext string, ok bool) {
	switch contentType {
	case "image/jpeg":
		return ".jpg", true
	case "image/png":
		return ".png", true
	case "image/gif":
		return ".gif", true
	case "image/webp":
		return ".webp", true
	default:
		return "", false
	}
}
