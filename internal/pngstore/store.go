// Package pngstore loads PNG files from disk and writes them back atomically.
package pngstore

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"github.com/samcharles93/pngme/internal/logger"
	"github.com/samcharles93/pngme/pkg/png"
)

// MaxFileSize bounds the files Load accepts.
const MaxFileSize = 1 << 30

const defaultMode fs.FileMode = 0o644

var ErrFileTooLarge = errors.New("pngstore: file too large")

// Store reads and writes PNG files, logging through its Logger.
type Store struct {
	log logger.Logger
	// MaxSize overrides MaxFileSize when positive.
	MaxSize int64
}

// New returns a Store. A nil logger discards output.
func New(log logger.Logger) *Store {
	if log == nil {
		log = logger.Discard()
	}
	return &Store{log: log.With("component", "pngstore")}
}

var defaultStore = New(nil)

// Load reads and parses the PNG at path.
func Load(path string) (*png.PNG, error) {
	return defaultStore.Load(path)
}

// Save writes p to path, replacing any existing file atomically.
func Save(path string, p *png.PNG) error {
	return defaultStore.Save(path, p)
}

// Load maps the file read-only, parses it and unmaps it again. The parsed
// chunks own their payloads, so nothing refers to the mapping afterwards.
// When mmap is unavailable the file is read with ReadAt.
func (s *Store) Load(path string) (*png.PNG, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	st, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if !st.Mode().IsRegular() {
		return nil, fmt.Errorf("pngstore: %s is not a regular file", path)
	}
	size := st.Size()
	if size > s.maxSize() {
		return nil, fmt.Errorf("%w: %s is %d bytes, limit %d", ErrFileTooLarge, path, size, s.maxSize())
	}

	var p *png.PNG
	mapped := false
	if size > 0 {
		data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
		if err == nil {
			mapped = true
			p, err = png.Parse(data)
			if uerr := unix.Munmap(data); uerr != nil {
				s.log.Warn("munmap failed", "path", path, "error", uerr)
			}
		} else {
			s.log.Debug("mmap unavailable, reading file", "path", path, "error", err)
		}
		if mapped && err != nil {
			return nil, fmt.Errorf("pngstore: parse %s: %w", path, err)
		}
	}
	if !mapped {
		data, err := readAllAt(f, int(size))
		if err != nil {
			return nil, fmt.Errorf("pngstore: read %s: %w", path, err)
		}
		if p, err = png.Parse(data); err != nil {
			return nil, fmt.Errorf("pngstore: parse %s: %w", path, err)
		}
	}

	s.log.Debug("loaded png", "path", path, "bytes", size, "chunks", p.Len(), "mmap", mapped)
	return p, nil
}

// Save encodes p into a temporary file beside path, syncs it and renames it
// over path. An existing file keeps its permission bits; new files get 0644.
func (s *Store) Save(path string, p *png.PNG) (err error) {
	mode := defaultMode
	if st, statErr := os.Stat(path); statErr == nil {
		mode = st.Mode().Perm()
	} else if !errors.Is(statErr, fs.ErrNotExist) {
		return statErr
	}

	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return fmt.Errorf("pngstore: create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	data := p.Bytes()
	if err = writeFull(tmp, data); err != nil {
		return fmt.Errorf("pngstore: write %s: %w", tmp.Name(), err)
	}
	if err = tmp.Chmod(mode); err != nil {
		return fmt.Errorf("pngstore: chmod %s: %w", tmp.Name(), err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("pngstore: sync %s: %w", tmp.Name(), err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("pngstore: close %s: %w", tmp.Name(), err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("pngstore: replace %s: %w", path, err)
	}

	s.log.Debug("saved png", "path", path, "bytes", len(data), "chunks", p.Len())
	return nil
}

func (s *Store) maxSize() int64 {
	if s.MaxSize > 0 {
		return s.MaxSize
	}
	return MaxFileSize
}

func readAllAt(r io.ReaderAt, size int) ([]byte, error) {
	out := make([]byte, size)
	var off int64
	for off < int64(size) {
		n, err := r.ReadAt(out[off:], off)
		off += int64(n)
		if err == nil {
			continue
		}
		if err == io.EOF && off == int64(size) {
			break
		}
		return nil, err
	}
	return out, nil
}

func writeFull(w io.Writer, b []byte) error {
	for len(b) > 0 {
		n, err := w.Write(b)
		if err != nil {
			return err
		}
		if n == 0 {
			return io.ErrShortWrite
		}
		b = b[n:]
	}
	return nil
}
