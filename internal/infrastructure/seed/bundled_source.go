package seed

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
)

//go:embed data/*.json
var bundle embed.FS

// BundledSource serves the seed documents compiled into the binary
type BundledSource struct {
	files fs.FS
}

func NewBundledSource() *BundledSource {
	sub, err := fs.Sub(bundle, "data")
	if err != nil {
		panic(err)
	}
	return &BundledSource{files: sub}
}

// NewFSSource serves seed documents from any file system, e.g. os.DirFS
func NewFSSource(files fs.FS) *BundledSource {
	return &BundledSource{files: files}
}

func (s *BundledSource) Fetch(ctx context.Context, resource Resource) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(s.files, resource.FileName())
	if err != nil {
		return nil, fmt.Errorf("read bundled %s: %w", resource.FileName(), err)
	}
	return data, nil
}
