package machine

// registers.go defines the register file: a fixed-size Memory indexed by
// symbolic register addresses. The name-to-offset mapping is a compile-
// time constant, not a general map, per the design notes: registers are
// addressable by word-aligned byte offset.

// Register byte offsets into the register file. Order matches the
// general-purpose r1..r8 block used by PushState/PopState (offsets
// 0..28), followed by the special-purpose registers.
const (
	R1 Word = iota * 4
	R2
	R3
	R4
	R5
	R6
	R7
	R8

	PC
	ACC
	SR
	SP
	FP

	// RegisterCount is the number of 32-bit registers in the file.
	RegisterCount = 13
)

// NumGeneralRegisters is the count of r1..r8, pushed/popped as a block by
// PushState/PopState.
const NumGeneralRegisters = 8

// registerNames maps a register's byte offset to its symbolic name, for
// diagnostics and the debug view. Built once at init from a const-derived
// table, not a runtime map keyed by interface{} or string lookups on the
// hot path.
var registerNames = [RegisterCount]string{
	R1 / 4: "r1",
	R2 / 4: "r2",
	R3 / 4: "r3",
	R4 / 4: "r4",
	R5 / 4: "r5",
	R6 / 4: "r6",
	R7 / 4: "r7",
	R8 / 4: "r8",
	PC / 4: "pc",
	ACC / 4: "acc",
	SR / 4: "sr",
	SP / 4: "sp",
	FP / 4: "fp",
}

// RegisterName returns the symbolic name of the register at byte offset
// addr, or "?" if addr isn't a known register offset.
func RegisterName(addr Word) string {
	idx := addr / 4
	if addr%4 != 0 || idx >= RegisterCount {
		return "?"
	}

	return registerNames[idx]
}
