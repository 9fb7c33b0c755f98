package fs

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/fwojciec/netkit"
)

// Ensure FileStore implements netkit.FileStore at compile time.
var _ netkit.FileStore = (*FileStore)(nil)

// FileStore implements netkit.FileStore with atomic write semantics.
// Content is written to dir/name.tmp, then renamed to dir/name once it is
// complete.
type FileStore struct {
	dir string
}

// NewFileStore creates a FileStore that saves into dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Save writes the file for url. The final path is only created when fill
// returns nil; on any failure the temp file is removed.
func (s *FileStore) Save(ctx context.Context, url string, fill func(w io.Writer) error) (string, error) {
	name, err := FilenameFromURL(url)
	if err != nil {
		return "", netkit.Errorf(netkit.EINVALID, "invalid URL %q: %v", url, err)
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", err
	}

	finalPath := filepath.Join(s.dir, name)
	tempPath := finalPath + ".tmp"

	f, err := os.Create(tempPath)
	if err != nil {
		return "", err
	}

	if err := fill(f); err != nil {
		_ = f.Close()
		_ = os.Remove(tempPath)
		return "", err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tempPath)
		return "", err
	}

	// A cancelled download must not replace an existing file.
	if err := ctx.Err(); err != nil {
		_ = os.Remove(tempPath)
		return "", err
	}

	if err := os.Rename(tempPath, finalPath); err != nil {
		_ = os.Remove(tempPath)
		return "", err
	}
	return finalPath, nil
}
