//go:build linux || darwin

package shmframe

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
)

// Region errors.
var (
	// ErrBadRegionName is returned for empty names or names containing
	// a path separator.
	ErrBadRegionName = errors.New("shmframe: invalid region name")

	// ErrRegionClosed is returned when operating on a closed region.
	ErrRegionClosed = errors.New("shmframe: region is closed")
)

// Region is a named, memory-mapped shared-memory region. On Linux it lives
// in /dev/shm, which is what shm_open resolves to, so a Go producer and a
// consumer using shm_open("name") see the same object. On other Unix
// systems it falls back to a file in the temporary directory.
type Region struct {
	name string
	path string
	data []byte
}

// regionPath resolves a region name to its backing file path. Names follow
// the shm_open convention: an optional leading slash, no other separators.
func regionPath(name string) (string, error) {
	name = strings.TrimPrefix(name, "/")
	if name == "" || strings.ContainsRune(name, os.PathSeparator) {
		return "", fmt.Errorf("%w: %q", ErrBadRegionName, name)
	}
	return filepath.Join(shmDir(), name), nil
}

// CreateRegion allocates a new shared-memory region of the given size.
// It fails if a region with the same name already exists.
func CreateRegion(name string, size int) (*Region, error) {
	if size <= 0 {
		return nil, fmt.Errorf("shmframe: invalid region size %d", size)
	}
	path, err := regionPath(name)
	if err != nil {
		return nil, err
	}

	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CREAT|unix.O_EXCL, 0o600)
	if err != nil {
		return nil, fmt.Errorf("shmframe: create %s: %w", path, err)
	}
	defer unix.Close(fd)

	if err := unix.Ftruncate(fd, int64(size)); err != nil {
		_ = unix.Unlink(path)
		return nil, fmt.Errorf("shmframe: size %s to %d: %w", path, size, err)
	}

	data, err := unix.Mmap(fd, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		_ = unix.Unlink(path)
		return nil, fmt.Errorf("shmframe: mmap %s: %w", path, err)
	}

	return &Region{name: name, path: path, data: data}, nil
}

// OpenRegion maps an existing shared-memory region created by this process
// or any other.
func OpenRegion(name string) (*Region, error) {
	path, err := regionPath(name)
	if err != nil {
		return nil, err
	}

	fd, err := unix.Open(path, unix.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("shmframe: open %s: %w", path, err)
	}
	defer unix.Close(fd)

	var st unix.Stat_t
	if err := unix.Fstat(fd, &st); err != nil {
		return nil, fmt.Errorf("shmframe: stat %s: %w", path, err)
	}

	data, err := unix.Mmap(fd, 0, int(st.Size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("shmframe: mmap %s: %w", path, err)
	}

	return &Region{name: name, path: path, data: data}, nil
}

// Name returns the region name.
func (r *Region) Name() string { return r.name }

// Bytes returns the mapped bytes. The slice is valid until Close.
func (r *Region) Bytes() []byte { return r.data }

// Size returns the mapped size in bytes.
func (r *Region) Size() int { return len(r.data) }

// Close unmaps the region. The underlying object persists until some
// process unlinks it.
func (r *Region) Close() error {
	if r.data == nil {
		return ErrRegionClosed
	}
	err := unix.Munmap(r.data)
	r.data = nil
	if err != nil {
		return fmt.Errorf("shmframe: munmap %s: %w", r.path, err)
	}
	return nil
}

// Unlink removes the region's name. Existing mappings stay valid; the
// memory is reclaimed once every process has unmapped it.
func (r *Region) Unlink() error {
	if err := unix.Unlink(r.path); err != nil {
		return fmt.Errorf("shmframe: unlink %s: %w", r.path, err)
	}
	return nil
}

// CreateArray creates a region sized for the given shape and dtype, writes
// the self-describing header, and returns both the region and the block
// view. This is the whole creator handshake in one call:
//
//	region, block, err := shmframe.CreateArray("frames", []uint32{450, 800, 4}, "uint8")
func CreateArray(name string, shape []uint32, dtype string) (*Region, *Block, error) {
	h := Header{Shape: shape, DType: dtype}
	size, err := h.PayloadSize()
	if err != nil {
		return nil, nil, err
	}

	region, err := CreateRegion(name, h.PayloadOffset()+size)
	if err != nil {
		return nil, nil, err
	}

	block, err := Format(region.Bytes(), h)
	if err != nil {
		_ = region.Close()
		_ = region.Unlink()
		return nil, nil, err
	}
	return region, block, nil
}
