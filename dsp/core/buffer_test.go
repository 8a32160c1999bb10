package core

import "testing"

func TestZeroComplex(t *testing.T) {
	buf := []complex128{1 + 1i, 2, 3i}
	ZeroComplex(buf)

	for i, v := range buf {
		if v != 0 {
			t.Fatalf("buf[%d] = %v, want 0", i, v)
		}
	}
}
