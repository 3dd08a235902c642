package queue

import (
	"fmt"
	"iter"
	"strings"

	"github.com/pkg/errors"

	"github.com/huynhanx03/stn-common/pkg/settings"
	"github.com/huynhanx03/stn-common/pkg/utils"
)

var _ Queue[int] = (*FIFOSet[int])(nil)

// FIFOSet is a double-ended queue over a circular buffer that refuses duplicate pending entries.
// Membership is answered in O(1) from a set mirroring the buffer contents.
//
// One slot of the buffer is always left empty, so a buffer of capacity C holds at most C-1
// elements. The buffer doubles before an insertion would fill it and halves after a removal
// leaves it at most a quarter full.
//
// It is NOT thread-safe.
type FIFOSet[T comparable] struct {
	buf     []T
	head    int // index of the first element
	tail    int // index of the slot after the last element
	mask    int // len(buf) - 1
	maxCap  int
	present map[T]struct{}
}

// NewFIFOSet creates an empty FIFOSet whose backing buffer holds capacity slots.
// The capacity is rounded up to a power of two; 0 is treated as 1.
func NewFIFOSet[T comparable](capacity int, opts ...Option) (*FIFOSet[T], error) {
	if capacity < 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "negative capacity %d", capacity)
	}
	o := applyOptions(opts)
	if capacity == 0 {
		capacity = 1
	}
	if capacity > o.maxCapacity {
		capacity = o.maxCapacity
	}
	return newFIFOSet[T](utils.CeilToPowerOfTwo(capacity), o.maxCapacity), nil
}

// NewDefaultFIFOSet creates an empty FIFOSet with DefaultCapacity.
func NewDefaultFIFOSet[T comparable](opts ...Option) *FIFOSet[T] {
	o := applyOptions(opts)
	return newFIFOSet[T](DefaultCapacity, o.maxCapacity)
}

// NewFIFOSetFromConfig creates an empty FIFOSet sized by cfg.
// Options passed explicitly take precedence over cfg.
func NewFIFOSetFromConfig[T comparable](cfg *settings.Queue, opts ...Option) (*FIFOSet[T], error) {
	if cfg == nil {
		return NewDefaultFIFOSet[T](opts...), nil
	}
	return NewFIFOSet[T](cfg.InitialCapacity, append([]Option{WithConfig(cfg)}, opts...)...)
}

func newFIFOSet[T comparable](capacity, maxCap int) *FIFOSet[T] {
	capacity = utils.ClampInt(capacity, minCapacity, maxCap)
	return &FIFOSet[T]{
		buf:     make([]T, capacity),
		mask:    capacity - 1,
		maxCap:  maxCap,
		present: make(map[T]struct{}, capacity),
	}
}

// EnqueueBack appends x at the tail.
// Returns false, leaving the queue untouched, if x is already pending.
// Panics with ErrCapacityExceeded when the buffer is full at its maximum capacity.
func (q *FIFOSet[T]) EnqueueBack(x T) bool {
	if _, ok := q.present[x]; ok {
		return false
	}
	q.ensureSpace()
	q.buf[q.tail] = x
	q.tail = (q.tail + 1) & q.mask
	q.present[x] = struct{}{}
	return true
}

// EnqueueFront prepends x at the head.
// Returns false, leaving the queue untouched, if x is already pending.
// Panics with ErrCapacityExceeded like EnqueueBack.
func (q *FIFOSet[T]) EnqueueFront(x T) bool {
	if _, ok := q.present[x]; ok {
		return false
	}
	q.ensureSpace()
	q.head = (q.head - 1) & q.mask
	q.buf[q.head] = x
	q.present[x] = struct{}{}
	return true
}

// Add inserts x at the tail and reports whether it was inserted.
func (q *FIFOSet[T]) Add(x T) bool {
	return q.EnqueueBack(x)
}

// Enqueue implements Queue.
func (q *FIFOSet[T]) Enqueue(item T) bool {
	return q.EnqueueBack(item)
}

// Dequeue implements Queue.
func (q *FIFOSet[T]) Dequeue() (T, bool) {
	x, err := q.DequeueFront()
	return x, err == nil
}

// DequeueFront removes and returns the oldest element.
func (q *FIFOSet[T]) DequeueFront() (T, error) {
	var zero T
	if q.head == q.tail {
		return zero, ErrEmptyQueue
	}
	x := q.buf[q.head]
	q.buf[q.head] = zero
	q.head = (q.head + 1) & q.mask
	delete(q.present, x)
	q.shrinkIfSparse()
	return x, nil
}

// DequeueBack removes and returns the newest element.
func (q *FIFOSet[T]) DequeueBack() (T, error) {
	var zero T
	if q.head == q.tail {
		return zero, ErrEmptyQueue
	}
	q.tail = (q.tail - 1) & q.mask
	x := q.buf[q.tail]
	q.buf[q.tail] = zero
	delete(q.present, x)
	q.shrinkIfSparse()
	return x, nil
}

// First returns the oldest element without removing it.
func (q *FIFOSet[T]) First() (T, error) {
	if q.head == q.tail {
		var zero T
		return zero, ErrEmptyQueue
	}
	return q.buf[q.head], nil
}

// Last returns the newest element without removing it.
func (q *FIFOSet[T]) Last() (T, error) {
	if q.head == q.tail {
		var zero T
		return zero, ErrEmptyQueue
	}
	return q.buf[(q.tail-1)&q.mask], nil
}

// Contains reports whether x is pending.
func (q *FIFOSet[T]) Contains(x T) bool {
	_, ok := q.present[x]
	return ok
}

// Remove deletes x from anywhere in the queue and reports whether it was present.
// The gap is closed by shifting whichever side of x holds fewer elements.
func (q *FIFOSet[T]) Remove(x T) bool {
	if _, ok := q.present[x]; !ok {
		return false
	}
	i := q.indexOf(x)
	if i < 0 {
		return false
	}

	var zero T
	size := q.Len()
	if i < size-1-i {
		for j := i; j > 0; j-- {
			q.buf[q.slot(j)] = q.buf[q.slot(j-1)]
		}
		q.buf[q.head] = zero
		q.head = (q.head + 1) & q.mask
	} else {
		for j := i; j < size-1; j++ {
			q.buf[q.slot(j)] = q.buf[q.slot(j+1)]
		}
		q.tail = (q.tail - 1) & q.mask
		q.buf[q.tail] = zero
	}

	delete(q.present, x)
	q.shrinkIfSparse()
	return true
}

// RetainAll is not supported and always returns ErrUnsupported.
func (q *FIFOSet[T]) RetainAll(_ ...T) error {
	return errors.Wrap(ErrUnsupported, "retain all")
}

// Len returns the number of pending elements.
func (q *FIFOSet[T]) Len() int {
	return (q.tail - q.head) & q.mask
}

// IsEmpty reports whether the queue holds no elements.
func (q *FIFOSet[T]) IsEmpty() bool {
	return q.head == q.tail
}

// Capacity returns the size of the backing buffer.
func (q *FIFOSet[T]) Capacity() uint64 {
	return uint64(len(q.buf))
}

// All returns the elements front to back.
// The end cursor and the element count are fixed when All is called; the start cursor
// and the buffer are read when ranging begins. Mutating the queue in between, or while
// ranging, leaves the order of the affected elements undefined.
func (q *FIFOSet[T]) All() iter.Seq[T] {
	tail, n := q.tail, q.Len()
	return func(yield func(T) bool) {
		for i, k := q.head, 0; k < n && i != tail; k++ {
			if !yield(q.buf[i]) {
				return
			}
			i = (i + 1) & q.mask
		}
	}
}

// Backward returns the elements back to front.
// The start cursor and the element count are fixed when Backward is called; the end
// cursor and the buffer are read when ranging begins, with the same caveats as All.
func (q *FIFOSet[T]) Backward() iter.Seq[T] {
	head, n := q.head, q.Len()
	return func(yield func(T) bool) {
		for i, k := q.tail, 0; k < n && i != head; k++ {
			i = (i - 1) & q.mask
			if !yield(q.buf[i]) {
				return
			}
		}
	}
}

// ToSlice returns a copy of the elements front to back.
func (q *FIFOSet[T]) ToSlice() []T {
	out := make([]T, q.Len())
	q.CopyTo(out)
	return out
}

// CopyTo copies the elements front to back into dst and returns how many were copied.
func (q *FIFOSet[T]) CopyTo(dst []T) int {
	if q.head <= q.tail {
		return copy(dst, q.buf[q.head:q.tail])
	}
	n := copy(dst, q.buf[q.head:])
	return n + copy(dst[n:], q.buf[:q.tail])
}

// Trim shrinks the backing buffer to the smallest power of two that fits the
// current elements plus the spare slot.
func (q *FIFOSet[T]) Trim() {
	target := utils.ClampInt(utils.CeilToPowerOfTwo(q.Len()+1), minCapacity, q.maxCap)
	if target < len(q.buf) {
		q.resize(target)
	}
}

// Clear drops every element and releases the backing buffer down to the minimum capacity.
func (q *FIFOSet[T]) Clear() {
	q.buf = make([]T, minCapacity)
	q.mask = minCapacity - 1
	q.head, q.tail = 0, 0
	clear(q.present)
}

// String formats the elements front to back.
func (q *FIFOSet[T]) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	first := true
	for x := range q.All() {
		if !first {
			sb.WriteByte(' ')
		}
		first = false
		fmt.Fprint(&sb, x)
	}
	sb.WriteByte(']')
	return sb.String()
}

// slot maps an offset from head to a buffer index.
func (q *FIFOSet[T]) slot(offset int) int {
	return (q.head + offset) & q.mask
}

// indexOf returns the offset of x from head, or -1.
func (q *FIFOSet[T]) indexOf(x T) int {
	size := q.Len()
	for i := 0; i < size; i++ {
		if q.buf[q.slot(i)] == x {
			return i
		}
	}
	return -1
}

// ensureSpace grows the buffer when one more element would fill it.
func (q *FIFOSet[T]) ensureSpace() {
	if q.Len()+1 < len(q.buf) {
		return
	}
	if len(q.buf) >= q.maxCap {
		panic(errors.Wrapf(ErrCapacityExceeded, "limit %d", q.maxCap))
	}
	q.resize(min(q.maxCap, len(q.buf)<<1))
}

// shrinkIfSparse halves the buffer once it is at most a quarter full.
func (q *FIFOSet[T]) shrinkIfSparse() {
	c := len(q.buf)
	if c > minCapacity && q.Len() <= c>>2 {
		q.resize(c >> 1)
	}
}

// resize moves the elements front to back into a new buffer starting at index 0.
func (q *FIFOSet[T]) resize(capacity int) {
	n := q.Len()
	buf := make([]T, capacity)
	q.CopyTo(buf)
	q.buf = buf
	q.mask = capacity - 1
	q.head = 0
	q.tail = n
}
