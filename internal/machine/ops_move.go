package machine

// ops_move.go implements the MOV, PUSH/PUSHR, pointer/indexed move, and
// byte-granular LOAD/STORE families (opcodes 0x10-0x1E). Operands are
// fetched strictly in the order given by spec.md's opcode table; every
// operand -- literal, register address, or memory address -- is a full
// Word, per §4.7's encoding convention.
//
// LOAD/LOADR/LOADM and STORE/STORER/STOREM resolve spec.md's open
// "reserved load/store family" (§9, Open Question) as byte-granular
// counterparts to MOVMR/MOVRPR/MOVROR and MOVRM/MOVRPR/MOVROR
// respectively: LOAD* zero-extends a fetched byte into a register;
// STORE* truncates a register to its low byte and writes that. See
// DESIGN.md for the resolution.
func (cpu *CPU) execMove(op Opcode) {
	switch op {
	case MOVR:
		w := cpu.FetchWord()
		r := cpu.FetchWord()
		cpu.SetReg(r, w)

	case MOVM:
		w := cpu.FetchWord()
		a := cpu.FetchWord()
		cpu.Mapper.SetWord(a, w)

	case MOVRR:
		r1 := cpu.FetchWord()
		r2 := cpu.FetchWord()
		cpu.SetReg(r2, cpu.GetReg(r1))

	case MOVRM:
		r := cpu.FetchWord()
		a := cpu.FetchWord()
		cpu.Mapper.SetWord(a, cpu.GetReg(r))

	case MOVMR:
		a := cpu.FetchWord()
		r := cpu.FetchWord()
		cpu.SetReg(r, cpu.Mapper.GetWord(a))

	case PUSH:
		w := cpu.FetchWord()
		cpu.Push(w)

	case PUSHR:
		r := cpu.FetchWord()
		cpu.Push(cpu.GetReg(r))

	case MOVRPR:
		r1 := cpu.FetchWord()
		r2 := cpu.FetchWord()
		cpu.SetReg(r2, cpu.Mapper.GetWord(cpu.GetReg(r1)))

	case MOVROR:
		r1 := cpu.FetchWord()
		w := cpu.FetchWord()
		r2 := cpu.FetchWord()
		cpu.SetReg(r2, cpu.Mapper.GetWord(cpu.GetReg(r1)+w))

	case LOAD:
		r := cpu.FetchWord()
		a := cpu.FetchWord()
		cpu.SetReg(r, Word(cpu.Mapper.GetByte(a)))

	case LOADR:
		r1 := cpu.FetchWord()
		r2 := cpu.FetchWord()
		cpu.SetReg(r2, Word(cpu.Mapper.GetByte(cpu.GetReg(r1))))

	case LOADM:
		r1 := cpu.FetchWord()
		w := cpu.FetchWord()
		r2 := cpu.FetchWord()
		cpu.SetReg(r2, Word(cpu.Mapper.GetByte(cpu.GetReg(r1)+w)))

	case STORE:
		r := cpu.FetchWord()
		a := cpu.FetchWord()
		cpu.Mapper.SetByte(a, Byte(cpu.GetReg(r)))

	case STORER:
		r1 := cpu.FetchWord()
		r2 := cpu.FetchWord()
		cpu.Mapper.SetByte(cpu.GetReg(r1), Byte(cpu.GetReg(r2)))

	case STOREM:
		r1 := cpu.FetchWord()
		w := cpu.FetchWord()
		r2 := cpu.FetchWord()
		cpu.Mapper.SetByte(cpu.GetReg(r1)+w, Byte(cpu.GetReg(r2)))
	}
}
