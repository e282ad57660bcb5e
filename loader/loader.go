// Package loader reads a flat program image from disk into a
// Machine's linear memory at offset 0, per spec §4.6 and §6. Ground:
// teacher's loader package (the glue between raw bytes and Memory),
// collapsed here from assembly-encoding to plain binary loading since
// this spec has no assembler front end; also grounded on
// original_source/RISC-V.c's load_memory, which this package matches
// in its two checks (image too large is fatal, size not a multiple of
// 4 is a warning).
package loader

import (
	"fmt"
	"os"

	"github.com/lookbusy-dev/rv32emu/core"
	"github.com/lookbusy-dev/rv32emu/memory"
)

// ImageError is a fatal image-loading error: the file cannot be
// opened, or it is larger than the memory capacity.
type ImageError struct {
	Path    string
	Message string
}

func (e *ImageError) Error() string {
	return fmt.Sprintf("image error (%s): %s", e.Path, e.Message)
}

// LoadImage reads the file at path and loads it into m's memory at
// offset 0. It returns a non-empty warning string, and no error, when
// the image size is not a multiple of 4 bytes — execution proceeds
// regardless (spec §4.6, the only non-fatal condition in the error
// taxonomy).
func LoadImage(m *core.Machine, path string) (warning string, err error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-specified program image path
	if err != nil {
		return "", &ImageError{Path: path, Message: err.Error()}
	}

	if len(data) > memory.Capacity {
		return "", &ImageError{Path: path, Message: fmt.Sprintf("image size %d exceeds memory capacity %d", len(data), memory.Capacity)}
	}

	if err := m.Memory.LoadBytes(0, data); err != nil {
		return "", &ImageError{Path: path, Message: err.Error()}
	}

	if len(data)%4 != 0 {
		warning = fmt.Sprintf("image size %d is not a multiple of 4 bytes", len(data))
	}

	return warning, nil
}
