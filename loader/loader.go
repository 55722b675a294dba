// Package loader reads a raw binary image (a stand-in for a 3DO game
// image's code segment) into a CPU's memory bus. ISO9660 traversal and
// any other disc-image format handling is out of scope; the loader
// only ever sees a flat byte stream.
package loader

import (
	"fmt"
	"os"

	"github.com/hayate891/fourdo/bus"
)

// LoadFile reads the file at path and copies its contents into b
// starting at loadAddr, returning the number of bytes loaded.
func LoadFile(b *bus.Bus, path string, loadAddr uint32) (int, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- caller-provided image path
	if err != nil {
		return 0, fmt.Errorf("loader: failed to read %s: %w", path, err)
	}
	return LoadBytes(b, data, loadAddr)
}

// LoadBytes copies data into b starting at loadAddr, rejecting empty
// images and images that would fall outside the bus's mapped range.
func LoadBytes(b *bus.Bus, data []byte, loadAddr uint32) (int, error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("loader: refusing to load an empty image")
	}
	if uint64(loadAddr)+uint64(len(data)) > uint64(b.Size()) {
		return 0, fmt.Errorf("loader: image of %d bytes at 0x%08X exceeds bus size %d", len(data), loadAddr, b.Size())
	}
	if err := b.LoadBytes(loadAddr, data); err != nil {
		return 0, fmt.Errorf("loader: %w", err)
	}
	return len(data), nil
}
