// Package export writes downloaded note files to their destination: a
// local directory or an S3 bucket.
package export

import (
	"context"
	"path/filepath"

	"github.com/dmitrijs2005/notehub/internal/filex"
)

// Sink stores one exported file and returns where it ended up.
type Sink interface {
	Put(ctx context.Context, name string, data []byte, contentType string) (location string, err error)
}

// DirSink writes files into a local directory, created on first use.
type DirSink struct {
	Dir string
}

func NewDirSink(dir string) *DirSink {
	return &DirSink{Dir: dir}
}

// Put writes data to Dir/name atomically. name is reduced to its base name.
func (s *DirSink) Put(ctx context.Context, name string, data []byte, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	dir, err := filex.EnsureDir(s.Dir)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, filex.SafeName(name, "download"))
	if err := filex.WriteFileAtomic(path, data, 0o640); err != nil {
		return "", err
	}
	return path, nil
}

var _ Sink = (*DirSink)(nil)
