package loader

import (
	"strings"
	"testing"

	"rvm32/internal/machine"
)

func TestLoadWritesAtBase(t *testing.T) {
	t.Parallel()

	mem := machine.NewMemory(64)
	n, err := New().Load(mem, 8, strings.NewReader("\x01\x02\x03"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if n != 3 {
		t.Fatalf("n = %d, want 3", n)
	}

	for i, want := range []byte{0x01, 0x02, 0x03} {
		if got := mem.GetByte(machine.Word(8 + i)); byte(got) != want {
			t.Errorf("byte %d = %#x, want %#x", i, got, want)
		}
	}
}

func TestLoadRejectsEmptyImage(t *testing.T) {
	t.Parallel()

	mem := machine.NewMemory(8)

	_, err := New().Load(mem, 0, strings.NewReader(""))
	if err == nil {
		t.Fatal("expected an error loading an empty image")
	}
}
