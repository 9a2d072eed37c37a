// Package loader copies a program image into a machine.Device. Per
// spec.md §6, an image has no header: it's a contiguous big-endian byte
// stream, and the caller supplies the base address it should land at.
package loader

import (
	"errors"
	"fmt"
	"io"

	"rvm32/internal/log"
	"rvm32/internal/machine"
)

// ErrLoader wraps every error this package returns.
var ErrLoader = errors.New("loader error")

// Loader copies program images into a device, byte by byte, grounded on
// the teacher's internal/vm/loader.go Loader.Load.
type Loader struct {
	log *log.Logger
}

// New creates an image loader.
func New() *Loader {
	return &Loader{log: log.DefaultLogger()}
}

// Load reads all of r and writes it starting at base in dev, returning
// the number of bytes written. An empty image is an error: spec.md has
// no notion of loading "nothing" meaningfully.
func (l *Loader) Load(dev machine.Device, base machine.Word, r io.Reader) (int, error) {
	img, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrLoader, err)
	}

	if len(img) == 0 {
		return 0, fmt.Errorf("%w: empty image", ErrLoader)
	}

	l.log.Debug("loading image", "base", base, "bytes", len(img))

	addr := base
	for _, b := range img {
		dev.SetByte(addr, machine.Byte(b))
		addr++
	}

	return len(img), nil
}
