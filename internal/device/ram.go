package device

import "rvm32/internal/machine"

// RAM is the bulk-storage device every program is backed by: a thin,
// semantically-named wrapper over machine.Memory. Grounded on the
// teacher's PhysicalMemory-backed Memory.load/.store (internal/vm/mem.go)
// -- spec.md §1 treats concrete devices as the Device interface's own
// implementations, with RAM simply being the one every test and CLI
// scenario in spec.md §8 needs mapped at address 0.
type RAM struct {
	*machine.Memory
}

// NewRAM allocates size bytes of zeroed RAM.
func NewRAM(size machine.Word) *RAM {
	return &RAM{Memory: machine.NewMemory(size)}
}

var _ machine.Device = (*RAM)(nil)
