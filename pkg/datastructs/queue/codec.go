package queue

import (
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/huynhanx03/stn-common/pkg/utils"
)

// maxStringLen bounds the length prefix StringCodec accepts.
const maxStringLen = 64 << 20

// stringReadChunk bounds the buffer StringCodec reserves before the bytes arrive.
const stringReadChunk = 64 << 10

// Codec reads and writes single elements of a FIFOSet stream.
type Codec[T any] interface {
	Write(w io.Writer, v T) error
	Read(r io.Reader) (T, error)
}

// Int64Codec encodes int64 values as 8 big-endian bytes.
type Int64Codec struct{}

func (Int64Codec) Write(w io.Writer, v int64) error {
	_, err := w.Write(utils.Uint64ToBytesByBigEndian(uint64(v)))
	return err
}

func (Int64Codec) Read(r io.Reader) (int64, error) {
	v, err := readUint64(r)
	return int64(v), err
}

// IntCodec encodes int values as 8 big-endian bytes.
type IntCodec struct{}

func (IntCodec) Write(w io.Writer, v int) error {
	_, err := w.Write(utils.Uint64ToBytesByBigEndian(uint64(v)))
	return err
}

func (IntCodec) Read(r io.Reader) (int, error) {
	v, err := readUint64(r)
	return int(v), err
}

// Int32Codec encodes int32 values as 4 big-endian bytes.
type Int32Codec struct{}

func (Int32Codec) Write(w io.Writer, v int32) error {
	_, err := w.Write(utils.Uint32ToBytesByBigEndian(uint32(v)))
	return err
}

func (Int32Codec) Read(r io.Reader) (int32, error) {
	v, err := readUint32(r)
	return int32(v), err
}

// Uint64Codec encodes uint64 values as 8 big-endian bytes.
type Uint64Codec struct{}

func (Uint64Codec) Write(w io.Writer, v uint64) error {
	_, err := w.Write(utils.Uint64ToBytesByBigEndian(v))
	return err
}

func (Uint64Codec) Read(r io.Reader) (uint64, error) {
	return readUint64(r)
}

// StringCodec encodes a string as a 4 byte big-endian length followed by its bytes.
type StringCodec struct{}

func (StringCodec) Write(w io.Writer, v string) error {
	if len(v) > maxStringLen {
		return errors.Errorf("string of %d bytes exceeds limit %d", len(v), maxStringLen)
	}
	if _, err := w.Write(utils.Uint32ToBytesByBigEndian(uint32(len(v)))); err != nil {
		return err
	}
	_, err := io.WriteString(w, v)
	return err
}

func (StringCodec) Read(r io.Reader) (string, error) {
	n, err := readUint32(r)
	if err != nil {
		return "", err
	}
	if n > maxStringLen {
		return "", errors.Errorf("string length %d exceeds limit %d", n, maxStringLen)
	}
	// Copy instead of allocating n bytes up front: the length prefix is untrusted.
	var sb strings.Builder
	sb.Grow(int(min(n, stringReadChunk)))
	if _, err := io.CopyN(&sb, r, int64(n)); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return "", err
	}
	return sb.String(), nil
}

func readUint32(r io.Reader) (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return utils.BytesToUint32ByBigEndian(b[:]), nil
}

func readUint64(r io.Reader) (uint64, error) {
	var b [8]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return utils.BytesToUint64ByBigEndian(b[:]), nil
}
