package utils

import (
	"encoding/binary"
	"time"
)

// Uint64ToBytesByBigEndian converts uint64 to a big-endian byte slice.
func Uint64ToBytesByBigEndian(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}

// BytesToUint64ByBigEndian converts a big-endian byte slice to uint64.
func BytesToUint64ByBigEndian(b []byte) uint64 {
	return binary.BigEndian.Uint64(b)
}

// Uint32ToBytesByBigEndian converts uint32 to a big-endian byte slice.
func Uint32ToBytesByBigEndian(n uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, n)
	return b
}

// BytesToUint32ByBigEndian converts a big-endian byte slice to uint32.
func BytesToUint32ByBigEndian(b []byte) uint32 {
	return binary.BigEndian.Uint32(b)
}

// ToDuration converts a number of seconds from configuration into a time.Duration.
func ToDuration(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}

// ToDurationMs converts a number of milliseconds from configuration into a time.Duration.
func ToDurationMs(millis int) time.Duration {
	return time.Duration(millis) * time.Millisecond
}
