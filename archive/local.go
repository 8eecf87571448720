package archive

import (
	"context"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/hupe1980/dimgo/internal/fs"
)

const tempSuffix = ".tmp-"

// LocalStore implements Store using the local file system.
// Writes go to a temp file in the target directory and become visible
// through an atomic rename on Close.
type LocalStore struct {
	root string
	fs   fs.FileSystem
}

// NewLocalStore creates a new LocalStore rooted at the given directory.
func NewLocalStore(root string) *LocalStore {
	return NewLocalStoreFS(nil, root)
}

// NewLocalStoreFS creates a LocalStore on the given file system.
// A nil fsys falls back to the local OS file system.
func NewLocalStoreFS(fsys fs.FileSystem, root string) *LocalStore {
	if fsys == nil {
		fsys = fs.Default
	}
	return &LocalStore{root: root, fs: fsys}
}

func (s *LocalStore) path(name string) string {
	return filepath.Join(s.root, filepath.FromSlash(name))
}

// Open opens an object for reading.
func (s *LocalStore) Open(_ context.Context, name string) (Blob, error) {
	f, err := s.fs.OpenFile(s.path(name), os.O_RDONLY, 0)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	return &localBlob{f: f, size: info.Size()}, nil
}

// Create creates a new writable object.
func (s *LocalStore) Create(_ context.Context, name string) (WritableBlob, error) {
	final := s.path(name)
	if err := s.fs.MkdirAll(filepath.Dir(final), 0o755); err != nil {
		return nil, err
	}
	f, path, err := s.createTemp(final)
	if err != nil {
		return nil, err
	}
	return &localWritableBlob{fs: s.fs, f: f, path: path, final: final}, nil
}

// createTemp opens an exclusive temp file next to the final path, the
// way os.CreateTemp does, so concurrent writers never collide.
func (s *LocalStore) createTemp(final string) (fs.File, string, error) {
	for try := 0; ; try++ {
		path := final + tempSuffix + strconv.FormatUint(rand.Uint64(), 36)
		f, err := s.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return f, path, nil
		}
		if !os.IsExist(err) || try >= 10000 {
			return nil, "", err
		}
	}
}

// Put writes an object atomically.
func (s *LocalStore) Put(ctx context.Context, name string, data []byte) error {
	w, err := s.Create(ctx, name)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		Discard(w)
		return err
	}
	return w.Close()
}

// Delete removes an object.
func (s *LocalStore) Delete(_ context.Context, name string) error {
	return s.fs.Remove(s.path(name))
}

// List returns all objects matching the prefix, sorted.
// In-progress temp files are not listed.
func (s *LocalStore) List(_ context.Context, prefix string) ([]string, error) {
	var names []string
	if err := s.list(s.root, "", prefix, &names); err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

func (s *LocalStore) list(dir, rel, prefix string, names *[]string) error {
	entries, err := s.fs.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, e := range entries {
		childRel := e.Name()
		if rel != "" {
			childRel = rel + "/" + e.Name()
		}
		if e.IsDir() {
			if err := s.list(filepath.Join(dir, e.Name()), childRel, prefix, names); err != nil {
				return err
			}
			continue
		}
		if strings.Contains(e.Name(), tempSuffix) {
			continue
		}
		if prefix == "" || strings.HasPrefix(childRel, prefix) {
			*names = append(*names, childRel)
		}
	}
	return nil
}

// localBlob implements Blob for local files.
type localBlob struct {
	f    fs.File
	size int64
}

func (b *localBlob) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return b.f.ReadAt(p, off)
}

func (b *localBlob) ReadRange(ctx context.Context, off, length int64) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if off >= b.size {
		return nil, io.EOF
	}
	if off+length > b.size {
		length = b.size - off
	}
	// The section reader shares the file handle; Close on the range
	// reader must not close the blob.
	return io.NopCloser(io.NewSectionReader(b.f, off, length)), nil
}

func (b *localBlob) Close() error {
	return b.f.Close()
}

func (b *localBlob) Size() int64 {
	return b.size
}

// localWritableBlob implements WritableBlob with rename-on-close.
type localWritableBlob struct {
	fs     fs.FileSystem
	f      fs.File
	path   string
	final  string
	closed atomic.Bool
}

func (w *localWritableBlob) Write(p []byte) (int, error) {
	if w.closed.Load() {
		return 0, ErrClosed
	}
	return w.f.Write(p)
}

func (w *localWritableBlob) Sync() error {
	return w.f.Sync()
}

func (w *localWritableBlob) Close() error {
	if !w.closed.CompareAndSwap(false, true) {
		return ErrClosed
	}
	if err := w.f.Sync(); err != nil {
		w.f.Close()
		w.fs.Remove(w.path)
		return err
	}
	if err := w.f.Close(); err != nil {
		w.fs.Remove(w.path)
		return err
	}
	return w.fs.Rename(w.path, w.final)
}

// Abort discards the write without publishing. Safe to call after Close.
func (w *localWritableBlob) Abort() error {
	if !w.closed.CompareAndSwap(false, true) {
		return nil
	}
	err := w.f.Close()
	if rmErr := w.fs.Remove(w.path); err == nil {
		err = rmErr
	}
	return err
}
