// Package storage keeps uploaded documents in S3-compatible object
// storage. Clients upload directly with a presigned URL; the server only
// checks that the object arrived and reads text bodies back.
package storage

import (
	"context"
	"errors"
	"io"
	"net/url"
	"path"
	"strings"
	"time"
	"unicode"
)

// ErrObjectNotFound is returned when an object does not exist.
var ErrObjectNotFound = errors.New("object not found")

// Config holds object storage settings.
type Config struct {
	Endpoint  string        `mapstructure:"endpoint"`
	AccessKey string        `mapstructure:"access_key"`
	SecretKey string        `mapstructure:"secret_key"`
	Bucket    string        `mapstructure:"bucket"`
	Region    string        `mapstructure:"region"`
	UseSSL    bool          `mapstructure:"use_ssl"`
	URLExpiry time.Duration `mapstructure:"url_expiry"`
}

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ContentType  string
	ETag         string
	LastModified time.Time
}

// ObjectStore is the subset of object storage the document workflow needs.
type ObjectStore interface {
	// PresignUpload returns a URL the client can PUT the object to, and
	// when that URL expires.
	PresignUpload(ctx context.Context, key string) (*url.URL, time.Time, error)

	// Stat returns ErrObjectNotFound when the object is missing.
	Stat(ctx context.Context, key string) (ObjectInfo, error)

	// Open streams the object body. The caller closes it.
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// ObjectKey builds the storage key for a document:
// documents/<id>/<sanitized filename>.
func ObjectKey(documentID, filename string) string {
	return path.Join("documents", documentID, sanitizeFilename(filename))
}

// sanitizeFilename keeps the base name and replaces anything outside
// [A-Za-z0-9._-] with '-'.
func sanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)),
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	s := strings.Trim(b.String(), ".-")
	if s == "" {
		return "file"
	}
	return s
}
