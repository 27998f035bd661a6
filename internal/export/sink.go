// Package export writes generated documents (library dumps, template lists,
// proposals) either to a local file or to an S3-compatible bucket.
package export

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/dmitrijs2005/tripquote/internal/filex"
)

var ErrBadTarget = errors.New("invalid export target")

// Sink receives one document.
type Sink interface {
	Write(ctx context.Context, data []byte) error
	// Location is a human readable description of where data went.
	Location() string
}

// NewSink picks a sink for target: "s3://bucket/key" goes to object storage,
// anything else is a file path, relative paths being placed under dir.
func NewSink(ctx context.Context, target, dir string, opts S3Options) (Sink, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return nil, fmt.Errorf("%w: empty", ErrBadTarget)
	}

	if strings.HasPrefix(target, "s3://") {
		u, err := url.Parse(target)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadTarget, err)
		}
		key := strings.TrimPrefix(u.Path, "/")
		if u.Host == "" || key == "" {
			return nil, fmt.Errorf("%w: %s needs a bucket and a key", ErrBadTarget, target)
		}
		return NewS3Sink(ctx, u.Host, key, opts)
	}

	p, err := filex.Resolve(dir, target)
	if err != nil {
		return nil, err
	}
	return &FileSink{path: p}, nil
}

type FileSink struct {
	path string
}

func (f *FileSink) Write(_ context.Context, data []byte) error {
	return filex.WriteFile(f.path, data)
}

func (f *FileSink) Location() string { return f.path }

func contentType(key string) string {
	switch strings.ToLower(path.Ext(key)) {
	case ".json":
		return "application/json"
	case ".pdf":
		return "application/pdf"
	case ".txt":
		return "text/plain; charset=utf-8"
	}
	return "application/octet-stream"
}
