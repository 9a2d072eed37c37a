package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// be32 big-endian encodes a word, matching the image format loader
// expects and the assembly helpers in internal/machine's tests.
func be32(w uint32) []byte {
	return []byte{byte(w >> 24), byte(w >> 16), byte(w >> 8), byte(w)}
}

func TestRunExecutesImageToHalt(t *testing.T) {
	t.Parallel()

	// MOVR r1, 0x2A ; HALT
	var img []byte
	img = append(img, 0x10)       // MOVR
	img = append(img, be32(0x2A)...)
	img = append(img, be32(0)...) // r1
	img = append(img, 0xFF)       // HALT

	path := filepath.Join(t.TempDir(), "image.bin")
	if err := os.WriteFile(path, img, 0o600); err != nil {
		t.Fatalf("write image: %v", err)
	}

	if code := run([]string{"run", "--mem=4096", "--stack-size=256", path}); code != 0 {
		t.Fatalf("run() = %d, want 0", code)
	}
}

func TestRunRejectsMissingImage(t *testing.T) {
	t.Parallel()

	if code := run([]string{"run", filepath.Join(t.TempDir(), "missing.bin")}); code == 0 {
		t.Fatal("run() with a missing image should fail")
	}
}

// TestRunRejectsUndefinedOpcode covers SPEC_FULL.md §14's testable
// property: an image with an undefined opcode exits non-zero with a
// DecodeFault diagnostic on stderr.
func TestRunRejectsUndefinedOpcode(t *testing.T) {
	img := []byte{0x0F} // not in the opcode table

	path := filepath.Join(t.TempDir(), "image.bin")
	if err := os.WriteFile(path, img, 0o600); err != nil {
		t.Fatalf("write image: %v", err)
	}

	stderr := captureStderr(t, func() {
		if code := run([]string{"run", "--mem=4096", "--stack-size=256", path}); code == 0 {
			t.Fatal("run() with an undefined opcode should fail")
		}
	})

	if !strings.Contains(stderr, "decode fault") {
		t.Errorf("stderr = %q, want it to mention a decode fault", stderr)
	}
}

// captureStderr redirects os.Stderr for the duration of fn and returns
// what was written to it.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}

	orig := os.Stderr
	os.Stderr = w

	fn()

	os.Stderr = orig
	w.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read captured stderr: %v", err)
	}

	return string(out)
}
