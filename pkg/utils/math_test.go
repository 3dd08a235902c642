package utils

import "testing"

func TestCeilToPowerOfTwo(t *testing.T) {
	tests := []struct {
		n, want int
	}{
		{-3, 2}, {0, 2}, {1, 2}, {2, 2}, {3, 4}, {4, 4}, {5, 8},
		{1000, 1024}, {1 << 20, 1 << 20}, {1<<20 + 1, 1 << 21},
	}
	for _, tt := range tests {
		if got := CeilToPowerOfTwo(tt.n); got != tt.want {
			t.Errorf("CeilToPowerOfTwo(%d) = %d; want %d", tt.n, got, tt.want)
		}
	}
}

func TestFloorToPowerOfTwo(t *testing.T) {
	tests := []struct {
		n, want int
	}{
		{1, 1}, {2, 2}, {3, 2}, {4, 4}, {100, 64}, {1 << 30, 1 << 30}, {1<<30 + 5, 1 << 30},
	}
	for _, tt := range tests {
		if got := FloorToPowerOfTwo(tt.n); got != tt.want {
			t.Errorf("FloorToPowerOfTwo(%d) = %d; want %d", tt.n, got, tt.want)
		}
	}
}

func TestIsPowerOfTwo(t *testing.T) {
	for _, n := range []int{1, 2, 4, 1024} {
		if !IsPowerOfTwo(n) {
			t.Errorf("IsPowerOfTwo(%d) = false", n)
		}
	}
	for _, n := range []int{0, -4, 3, 1000} {
		if IsPowerOfTwo(n) {
			t.Errorf("IsPowerOfTwo(%d) = true", n)
		}
	}
}

func TestClampInt(t *testing.T) {
	if got := ClampInt(1, 4, 8); got != 4 {
		t.Errorf("ClampInt below = %d", got)
	}
	if got := ClampInt(16, 4, 8); got != 8 {
		t.Errorf("ClampInt above = %d", got)
	}
	if got := ClampInt(6, 4, 8); got != 6 {
		t.Errorf("ClampInt inside = %d", got)
	}
}

func TestBigEndianRoundTrip(t *testing.T) {
	if got := BytesToUint32ByBigEndian(Uint32ToBytesByBigEndian(0xdeadbeef)); got != 0xdeadbeef {
		t.Errorf("uint32 round trip = %x", got)
	}
	if b := Uint32ToBytesByBigEndian(1); b[3] != 1 || b[0] != 0 {
		t.Errorf("uint32 not big-endian: %v", b)
	}
	if got := BytesToUint64ByBigEndian(Uint64ToBytesByBigEndian(1 << 40)); got != 1<<40 {
		t.Errorf("uint64 round trip = %x", got)
	}
}
