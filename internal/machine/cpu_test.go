package machine

import "testing"

func newBareCPU(t *testing.T, memSize, stackSize Word) *CPU {
	t.Helper()

	mapper := NewMemoryMapper()
	mapper.Map(NewMemory(memSize), 0, memSize, false)

	cpu := NewCPU(mapper, 0)
	cpu.SetStack(memSize, stackSize)

	return cpu
}

func TestUpdateSR(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		pre, post Word
		wantZ     bool
		wantC     bool
	}{
		{"zero and borrow", 5, 0, true, true},
		{"nonzero and borrow", 5, 3, false, true},
		{"nonzero and no borrow", 3, 5, false, false},
		{"zero and no borrow", 0, 0, true, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cpu := newBareCPU(t, 0x40, 0x20)
			cpu.UpdateSR(c.pre, c.post)

			if got := cpu.GetStatusFlag(0); got != c.wantZ {
				t.Errorf("Z = %v, want %v", got, c.wantZ)
			}

			if got := cpu.GetStatusFlag(1); got != c.wantC {
				t.Errorf("C = %v, want %v", got, c.wantC)
			}
		})
	}
}

func TestPushPopStackFaults(t *testing.T) {
	t.Parallel()

	t.Run("overflow", func(t *testing.T) {
		cpu := newBareCPU(t, 0x20, 0x10)

		defer func() {
			r := recover()
			if _, ok := r.(*StackFault); !ok {
				t.Fatalf("panic = %T, want *StackFault", r)
			}
		}()

		for i := 0; i < 100; i++ {
			cpu.Push(Word(i))
		}
	})

	t.Run("underflow", func(t *testing.T) {
		cpu := newBareCPU(t, 0x20, 0x10)

		defer func() {
			r := recover()
			if _, ok := r.(*StackFault); !ok {
				t.Fatalf("panic = %T, want *StackFault", r)
			}
		}()

		cpu.Pop()
	})
}

func TestPushPopRoundTrip(t *testing.T) {
	t.Parallel()

	cpu := newBareCPU(t, 0x40, 0x20)
	sp0 := cpu.GetReg(SP)

	cpu.Push(0x11)
	cpu.Push(0x22)
	cpu.Push(0x33)

	if got := cpu.Pop(); got != 0x33 {
		t.Errorf("pop #1 = %s, want 0x33", got)
	}

	if got := cpu.Pop(); got != 0x22 {
		t.Errorf("pop #2 = %s, want 0x22", got)
	}

	if got := cpu.Pop(); got != 0x11 {
		t.Errorf("pop #3 = %s, want 0x11", got)
	}

	if got := cpu.GetReg(SP); got != sp0 {
		t.Errorf("sp = %s, want restored %s", got, sp0)
	}
}

// TestPopState exercises the push_state/pop_state pair across two
// sequential call frames with different argument counts, to check that
// the stackframe_size bookkeeping recovers sp and fp correctly regardless
// of how many arguments the caller pushed. See DESIGN.md, Open Question 1,
// for the pre-increment quirk this is guarding.
func TestPopState(t *testing.T) {
	t.Parallel()

	cpu := newBareCPU(t, 0x100, 0x80)

	sp0 := cpu.GetReg(SP)
	fp0 := cpu.GetReg(FP)

	for i := Word(0); i < NumGeneralRegisters; i++ {
		cpu.SetReg(i*4, i+1)
	}

	// Frame 1: one argument.
	cpu.Push(0xAA)
	cpu.Push(1) // arg_count
	cpu.PushState()
	cpu.PopState()

	if got := cpu.GetReg(SP); got != sp0 {
		t.Fatalf("after 1-arg frame, sp = %s, want %s", got, sp0)
	}

	if got := cpu.GetReg(FP); got != fp0 {
		t.Fatalf("after 1-arg frame, fp = %s, want %s", got, fp0)
	}

	for i := Word(0); i < NumGeneralRegisters; i++ {
		if got := cpu.GetReg(i * 4); got != i+1 {
			t.Errorf("r%d = %s, want %s", i+1, got, i+1)
		}
	}

	// Frame 2: three arguments, nested under no outer frame (still at the
	// top level, but with a wider argument list) to check arg_count isn't
	// hardcoded.
	cpu.Push(0xBB)
	cpu.Push(0xCC)
	cpu.Push(0xDD)
	cpu.Push(3) // arg_count
	cpu.PushState()
	cpu.PopState()

	if got := cpu.GetReg(SP); got != sp0 {
		t.Fatalf("after 3-arg frame, sp = %s, want %s", got, sp0)
	}

	if got := cpu.GetReg(FP); got != fp0 {
		t.Fatalf("after 3-arg frame, fp = %s, want %s", got, fp0)
	}
}

func TestRegisterNameUnknown(t *testing.T) {
	t.Parallel()

	if got := RegisterName(9999); got != "?" {
		t.Errorf("RegisterName(9999) = %q, want %q", got, "?")
	}
}
