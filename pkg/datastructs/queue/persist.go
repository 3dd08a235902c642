package queue

import (
	"io"

	"github.com/pkg/errors"

	"github.com/huynhanx03/stn-common/pkg/utils"
)

// Encode writes the queue to w: a 4 byte big-endian element count followed by
// every element front to back, each written by codec.
func (q *FIFOSet[T]) Encode(w io.Writer, codec Codec[T]) error {
	if _, err := w.Write(utils.Uint32ToBytesByBigEndian(uint32(q.Len()))); err != nil {
		return errors.Wrap(err, "queue: write count")
	}
	for x := range q.All() {
		if err := codec.Write(w, x); err != nil {
			return errors.Wrap(err, "queue: write element")
		}
	}
	return nil
}

// DecodeFIFOSet reads a queue written by Encode.
// Truncated input, a negative or oversized count and duplicate elements yield ErrMalformedStream.
func DecodeFIFOSet[T comparable](r io.Reader, codec Codec[T], opts ...Option) (*FIFOSet[T], error) {
	o := applyOptions(opts)

	raw, err := readUint32(r)
	if err != nil {
		return nil, errors.Wrapf(ErrMalformedStream, "read count: %v", err)
	}
	n := int(int32(raw))
	if n < 0 {
		return nil, errors.Wrapf(ErrMalformedStream, "negative element count %d", n)
	}
	if n >= o.maxCapacity {
		return nil, errors.Wrapf(ErrMalformedStream, "element count %d exceeds capacity limit %d", n, o.maxCapacity)
	}

	// The count is untrusted: start small and let the buffer grow as elements arrive.
	q := newFIFOSet[T](utils.CeilToPowerOfTwo(min(n, decodeInitialCapacity)+1), o.maxCapacity)
	for i := 0; i < n; i++ {
		x, err := codec.Read(r)
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedStream, "read element %d of %d: %v", i, n, err)
		}
		if !q.EnqueueBack(x) {
			return nil, errors.Wrapf(ErrMalformedStream, "duplicate element at %d", i)
		}
	}
	return q, nil
}
