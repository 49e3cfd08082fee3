package gcp

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

const uriScheme = "gs://"

// IsObjectURI reports whether s names a Cloud Storage object.
func IsObjectURI(s string) bool {
	return strings.HasPrefix(strings.TrimSpace(s), uriScheme)
}

// ParseObjectURI splits gs://bucket/path/to/object into bucket and object.
func ParseObjectURI(uri string) (bucket, object string, err error) {
	raw := strings.TrimSpace(uri)
	if !strings.HasPrefix(raw, uriScheme) {
		return "", "", fmt.Errorf("not a gs:// uri: %q", uri)
	}
	rest := strings.TrimPrefix(raw, uriScheme)
	parts := strings.SplitN(rest, "/", 2)
	if len(parts) != 2 || parts[0] == "" || strings.Trim(parts[1], "/") == "" {
		return "", "", fmt.Errorf("gs uri must be gs://bucket/object, got %q", uri)
	}
	return parts[0], parts[1], nil
}

// readCloser closes the storage client together with the object reader.
type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (r *readCloser) Close() error {
	var first error
	for _, c := range r.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// OpenObject streams one object. STORAGE_EMULATOR_HOST switches the client to
// an unauthenticated emulator endpoint.
func OpenObject(ctx context.Context, uri string) (io.ReadCloser, error) {
	bucket, object, err := ParseObjectURI(uri)
	if err != nil {
		return nil, err
	}

	var opts []option.ClientOption
	if strings.TrimSpace(os.Getenv("STORAGE_EMULATOR_HOST")) != "" {
		opts = append(opts, option.WithoutAuthentication())
	} else {
		opts = append(ClientOptionsFromEnv(), option.WithScopes(storage.ScopeReadOnly))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	reader, err := client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("open %s: %w", uri, err)
	}
	return &readCloser{Reader: reader, closers: []io.Closer{reader, client}}, nil
}
