// Package storage keeps attachment payloads on the local disk under opaque
// UUID handles.
package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("stored object not found")
	ErrInvalidHandle = errors.New("invalid storage handle")
)

type Storage interface {
	// Save writes r to a new object and returns its handle and size.
	Save(r io.Reader) (handle string, size int64, err error)
	Open(handle string) (io.ReadCloser, error)
	Remove(handle string) error
}

type Disk struct {
	dir string
}

func NewDisk(dir string) (*Disk, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &Disk{dir: dir}, nil
}

func (d *Disk) Save(r io.Reader) (string, int64, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", 0, err
	}
	handle := id.String()

	f, err := os.OpenFile(d.path(handle), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		return "", 0, err
	}
	n, err := io.Copy(f, r)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(d.path(handle))
		return "", 0, err
	}
	return handle, n, nil
}

func (d *Disk) Open(handle string) (io.ReadCloser, error) {
	if err := validate(handle); err != nil {
		return nil, err
	}
	f, err := os.Open(d.path(handle))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	return f, err
}

// Remove succeeds when the object is already gone.
func (d *Disk) Remove(handle string) error {
	if err := validate(handle); err != nil {
		return err
	}
	err := os.Remove(d.path(handle))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (d *Disk) path(handle string) string {
	return filepath.Join(d.dir, handle)
}

// validate keeps handles from escaping the storage directory.
func validate(handle string) error {
	if _, err := uuid.Parse(handle); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidHandle, handle)
	}
	return nil
}
