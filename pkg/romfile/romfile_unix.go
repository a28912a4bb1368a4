//go:build unix

// Package romfile loads the raw bytes the rest of the core reads
// sections out of (the "external ELF reader"/"ROM image" input of
// spec.md §1, §6). On unix it maps the file instead of copying it, so
// even multi-hundred-megabyte ROM images load without allocating a
// matching-size buffer.
package romfile

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// File is a read-only, memory-mapped view of a ROM or ELF image.
type File struct {
	data []byte
	f    *os.File
}

// Open mmaps path read-only.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("romfile: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("romfile: %w", err)
	}
	if info.Size() == 0 {
		f.Close()
		return nil, fmt.Errorf("romfile: %s is empty", path)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(info.Size()), unix.PROT_READ, unix.MAP_PRIVATE)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("romfile: mmap %s: %w", path, err)
	}

	return &File{data: data, f: f}, nil
}

// Bytes returns the whole mapped image. Callers must not retain it past
// Close.
func (r *File) Bytes() []byte { return r.data }

// Close unmaps the file and releases the underlying descriptor.
func (r *File) Close() error {
	var errs []error
	if r.data != nil {
		if err := unix.Munmap(r.data); err != nil {
			errs = append(errs, err)
		}
		r.data = nil
	}
	if err := r.f.Close(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("romfile: close: %v", errs)
	}
	return nil
}
