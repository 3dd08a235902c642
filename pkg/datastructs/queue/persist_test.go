package queue

import (
	"bytes"
	"errors"
	"io"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huynhanx03/stn-common/pkg/utils"
)

// Interface compliance (compile-time)
var (
	_ Codec[int]    = IntCodec{}
	_ Codec[int32]  = Int32Codec{}
	_ Codec[int64]  = Int64Codec{}
	_ Codec[uint64] = Uint64Codec{}
	_ Codec[string] = StringCodec{}
)

// =============================================================================
// Method: Encode()
// =============================================================================

func TestFIFOSet_EncodeLayout(t *testing.T) {
	q := newIntSet(t, 1, 2, 3)
	var buf bytes.Buffer

	require.NoError(t, q.Encode(&buf, Int32Codec{}.asInt()))

	want := []byte{
		0, 0, 0, 3,
		0, 0, 0, 1,
		0, 0, 0, 2,
		0, 0, 0, 3,
	}
	assert.Equal(t, want, buf.Bytes())
}

func TestFIFOSet_EncodeWrappedOrder(t *testing.T) {
	q := newIntSet(t, 3, 4)
	q.EnqueueFront(2)
	q.EnqueueFront(1)

	var buf bytes.Buffer
	require.NoError(t, q.Encode(&buf, IntCodec{}))

	got, err := DecodeFIFOSet[int](&buf, IntCodec{})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4}, got.ToSlice())
}

type failingWriter struct{ after int }

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.after <= 0 {
		return 0, io.ErrClosedPipe
	}
	w.after--
	return len(p), nil
}

func TestFIFOSet_EncodeWriterError(t *testing.T) {
	q := newIntSet(t, 1, 2)

	err := q.Encode(&failingWriter{}, IntCodec{})
	assert.ErrorIs(t, err, io.ErrClosedPipe)

	err = q.Encode(&failingWriter{after: 1}, IntCodec{})
	assert.ErrorIs(t, err, io.ErrClosedPipe)
}

// =============================================================================
// Function: DecodeFIFOSet()
// =============================================================================

func TestDecodeFIFOSet_RoundTrip(t *testing.T) {
	q := newIntSet(t, 1, 2, 3)
	var buf bytes.Buffer
	require.NoError(t, q.Encode(&buf, IntCodec{}))

	got, err := DecodeFIFOSet[int](&buf, IntCodec{})
	require.NoError(t, err)

	assert.Equal(t, 3, got.Len())
	first, err := got.First()
	require.NoError(t, err)
	assert.Equal(t, 1, first)
	last, err := got.Last()
	require.NoError(t, err)
	assert.Equal(t, 3, last)
	assert.True(t, got.Contains(2))
	assert.Equal(t, uint64(4), got.Capacity())
	checkInvariants(t, got)
}

func TestDecodeFIFOSet_Capacity(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		wantCap uint64
	}{
		{"empty", 0, 4},
		{"three", 3, 4},
		{"four", 4, 8},
		{"hundred", 100, 128},
		{"power_of_two_minus_one", 127, 128},
		{"power_of_two", 128, 256},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewDefaultFIFOSet[int]()
			for i := 0; i < tt.n; i++ {
				q.Add(i)
			}
			var buf bytes.Buffer
			require.NoError(t, q.Encode(&buf, IntCodec{}))

			got, err := DecodeFIFOSet[int](&buf, IntCodec{})
			require.NoError(t, err)
			assert.Equal(t, tt.wantCap, got.Capacity())
			assert.Equal(t, q.ToSlice(), got.ToSlice())

			// The decoded queue must keep working normally.
			got.Add(-1)
			v, err := got.DequeueBack()
			require.NoError(t, err)
			assert.Equal(t, -1, v)
			checkInvariants(t, got)
		})
	}
}

func TestDecodeFIFOSet_Strings(t *testing.T) {
	q := NewDefaultFIFOSet[string]()
	for _, s := range []string{"alpha", "", "gamma delta", "ünïcode"} {
		q.Add(s)
	}
	var buf bytes.Buffer
	require.NoError(t, q.Encode(&buf, StringCodec{}))

	got, err := DecodeFIFOSet[string](&buf, StringCodec{})
	require.NoError(t, err)
	assert.Equal(t, q.ToSlice(), got.ToSlice())
	assert.True(t, got.Contains(""))
}

func TestDecodeFIFOSet_Malformed(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		opts []Option
	}{
		{"empty_stream", nil, nil},
		{"short_count", []byte{0, 0, 1}, nil},
		{"negative_count", []byte{0xff, 0xff, 0xff, 0xfe}, nil},
		{"truncated_elements", []byte{0, 0, 0, 2, 0, 0, 0, 0, 0, 0, 0, 1}, nil},
		{"partial_element", []byte{0, 0, 0, 1, 0, 0, 0}, nil},
		{"duplicate", []byte{
			0, 0, 0, 2,
			0, 0, 0, 0, 0, 0, 0, 7,
			0, 0, 0, 0, 0, 0, 0, 7,
		}, nil},
		{"over_limit", []byte{0, 0, 0, 8}, []Option{WithMaxCapacity(8)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeFIFOSet[int](bytes.NewReader(tt.data), IntCodec{}, tt.opts...)
			assert.True(t, errors.Is(err, ErrMalformedStream), "got %v", err)
			assert.Nil(t, got)
		})
	}
}

// bytesAllocated reports how many heap bytes f allocated.
func bytesAllocated(f func()) uint64 {
	var before, after runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)
	f()
	runtime.ReadMemStats(&after)
	return after.TotalAlloc - before.TotalAlloc
}

func TestDecodeFIFOSet_LargeCountWithoutBody(t *testing.T) {
	const limit = 16 << 20

	tests := []struct {
		name  string
		count uint32
		body  []byte
	}{
		{"count_2_24", 1 << 24, nil},
		{"count_just_under_default_limit", defaultMaxCapacity - 1, nil},
		{"count_under_limit_with_partial_body", defaultMaxCapacity - 1, []byte{0, 0, 0, 0, 0, 0, 0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := append(utils.Uint32ToBytesByBigEndian(tt.count), tt.body...)

			var got *FIFOSet[int64]
			var err error
			allocated := bytesAllocated(func() {
				got, err = DecodeFIFOSet[int64](bytes.NewReader(data), Int64Codec{})
			})

			assert.ErrorIs(t, err, ErrMalformedStream)
			assert.Nil(t, got)
			assert.Less(t, allocated, uint64(limit), "allocated %d bytes", allocated)
		})
	}
}

func TestDecodeFIFOSet_GrowsPastInitialChunk(t *testing.T) {
	const n = decodeInitialCapacity*2 + 5

	q := NewDefaultFIFOSet[int]()
	for i := 0; i < n; i++ {
		q.Add(i)
	}
	var buf bytes.Buffer
	require.NoError(t, q.Encode(&buf, IntCodec{}))

	got, err := DecodeFIFOSet[int](&buf, IntCodec{})
	require.NoError(t, err)
	assert.Equal(t, uint64(utils.CeilToPowerOfTwo(n+1)), got.Capacity())
	assert.Equal(t, q.ToSlice(), got.ToSlice())
	checkInvariants(t, got)
}

func TestStringCodec_HugeLengthWithoutBody(t *testing.T) {
	data := utils.Uint32ToBytesByBigEndian(maxStringLen)

	var err error
	allocated := bytesAllocated(func() {
		_, err = StringCodec{}.Read(bytes.NewReader(data))
	})

	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Less(t, allocated, uint64(1<<20), "allocated %d bytes", allocated)
}

func TestStringCodec_RejectsHugeLength(t *testing.T) {
	data := []byte{0xff, 0xff, 0xff, 0xff}
	_, err := StringCodec{}.Read(bytes.NewReader(data))
	assert.Error(t, err)
}

// asInt adapts Int32Codec to int elements so the 4 byte layout can be asserted directly.
func (c Int32Codec) asInt() Codec[int] {
	return int32AsInt{c}
}

type int32AsInt struct{ c Int32Codec }

func (a int32AsInt) Write(w io.Writer, v int) error { return a.c.Write(w, int32(v)) }

func (a int32AsInt) Read(r io.Reader) (int, error) {
	v, err := a.c.Read(r)
	return int(v), err
}
