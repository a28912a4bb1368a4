//go:build !unix

package romfile

import (
	"fmt"
	"os"
)

// File is a read-only view of a ROM or ELF image, loaded by a plain read
// on platforms without mmap support.
type File struct {
	data []byte
}

// Open reads path fully into memory.
func Open(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("romfile: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("romfile: %s is empty", path)
	}
	return &File{data: data}, nil
}

func (r *File) Bytes() []byte { return r.data }

func (r *File) Close() error { return nil }
