package machine

// mapper.go dispatches addresses to devices over non-overlapping (in
// well-formed configurations) regions. Ported close to verbatim from the
// original source's MemoryMapper: insertion-reverse precedence lets a
// later, narrower mapping shadow a broader one (MMIO over RAM).

// region is a single mapped address range delegating to a device.
type region struct {
	device Device
	start  Word
	end    Word
	remap  bool
}

func (r *region) contains(addr Word) bool {
	return addr >= r.start && addr < r.end
}

// MemoryMapper is an ordered collection of regions. The CPU never
// addresses a device directly; every access goes through the mapper.
type MemoryMapper struct {
	// regions is ordered most-recently-mapped first.
	regions []*region
}

// NewMemoryMapper creates an empty mapper.
func NewMemoryMapper() *MemoryMapper {
	return &MemoryMapper{}
}

// Map inserts a region at the front of the region list, so it takes
// precedence over any previously mapped, overlapping region.
func (mm *MemoryMapper) Map(device Device, start, end Word, remap bool) {
	r := &region{device: device, start: start, end: end, remap: remap}
	mm.regions = append([]*region{r}, mm.regions...)
}

// find scans front-to-back for the first region containing addr. It
// panics with a *MemoryFault if no region matches -- the mapper has no
// notion of a "hole" that silently reads as zero.
func (mm *MemoryMapper) find(addr Word) *region {
	for _, r := range mm.regions {
		if r.contains(addr) {
			return r
		}
	}

	panic(&MemoryFault{Addr: addr, Op: "map"})
}

func (r *region) local(addr Word) Word {
	if r.remap {
		return addr - r.start
	}

	return addr
}

// GetByte reads a byte through the mapper.
func (mm *MemoryMapper) GetByte(addr Word) Byte {
	r := mm.find(addr)
	return r.device.GetByte(r.local(addr))
}

// GetWord reads a word through the mapper.
func (mm *MemoryMapper) GetWord(addr Word) Word {
	r := mm.find(addr)
	return r.device.GetWord(r.local(addr))
}

// SetByte writes a byte through the mapper.
func (mm *MemoryMapper) SetByte(addr Word, v Byte) {
	r := mm.find(addr)
	r.device.SetByte(r.local(addr), v)
}

// SetWord writes a word through the mapper.
func (mm *MemoryMapper) SetWord(addr Word, v Word) {
	r := mm.find(addr)
	r.device.SetWord(r.local(addr), v)
}

var _ Device = (*MemoryMapper)(nil)
