package prioritymap

import "cmp"

type entry[K comparable, P cmp.Ordered] struct {
	key      K
	priority P
}

// Map is a keyed max-priority queue.
// Every key appears at most once; setting an existing key updates its priority in place.
// It is NOT thread-safe.
type Map[K comparable, P cmp.Ordered] struct {
	heap  []entry[K, P]
	index map[K]int // key -> position in heap
}

// New creates an empty Map.
func New[K comparable, P cmp.Ordered]() *Map[K, P] {
	return &Map[K, P]{
		index: make(map[K]int),
	}
}

// Len returns the number of keys.
func (m *Map[K, P]) Len() int {
	return len(m.heap)
}

// Set inserts key with priority p, or updates its priority if already present.
func (m *Map[K, P]) Set(key K, p P) {
	if i, ok := m.index[key]; ok {
		old := m.heap[i].priority
		m.heap[i].priority = p
		if p > old {
			m.up(i)
		} else if p < old {
			m.down(i)
		}
		return
	}

	m.heap = append(m.heap, entry[K, P]{key: key, priority: p})
	i := len(m.heap) - 1
	m.index[key] = i
	m.up(i)
}

// Get returns the priority of key.
func (m *Map[K, P]) Get(key K) (P, bool) {
	i, ok := m.index[key]
	if !ok {
		var zero P
		return zero, false
	}
	return m.heap[i].priority, true
}

// Contains reports whether key is present.
func (m *Map[K, P]) Contains(key K) bool {
	_, ok := m.index[key]
	return ok
}

// Max returns the key with the highest priority without removing it.
// Ties are broken arbitrarily.
func (m *Map[K, P]) Max() (K, P, bool) {
	if len(m.heap) == 0 {
		var (
			k K
			p P
		)
		return k, p, false
	}
	top := m.heap[0]
	return top.key, top.priority, true
}

// PopMax removes and returns the key with the highest priority.
func (m *Map[K, P]) PopMax() (K, P, bool) {
	k, p, ok := m.Max()
	if ok {
		m.removeAt(0)
	}
	return k, p, ok
}

// Delete removes key and reports whether it was present.
func (m *Map[K, P]) Delete(key K) bool {
	i, ok := m.index[key]
	if !ok {
		return false
	}
	m.removeAt(i)
	return true
}

// Keys returns the keys in heap order (not sorted).
func (m *Map[K, P]) Keys() []K {
	keys := make([]K, len(m.heap))
	for i, e := range m.heap {
		keys[i] = e.key
	}
	return keys
}

// Clear removes every key.
func (m *Map[K, P]) Clear() {
	clear(m.heap)
	m.heap = m.heap[:0]
	clear(m.index)
}

func (m *Map[K, P]) removeAt(i int) {
	last := len(m.heap) - 1
	removed := m.heap[i].key
	if i != last {
		m.swap(i, last)
	}
	m.heap[last] = entry[K, P]{}
	m.heap = m.heap[:last]
	delete(m.index, removed)

	if i < len(m.heap) {
		m.down(i)
		m.up(i)
	}
}

func (m *Map[K, P]) up(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if m.heap[parent].priority >= m.heap[i].priority {
			return
		}
		m.swap(i, parent)
		i = parent
	}
}

func (m *Map[K, P]) down(i int) {
	n := len(m.heap)
	for {
		largest := i
		if l := 2*i + 1; l < n && m.heap[l].priority > m.heap[largest].priority {
			largest = l
		}
		if r := 2*i + 2; r < n && m.heap[r].priority > m.heap[largest].priority {
			largest = r
		}
		if largest == i {
			return
		}
		m.swap(i, largest)
		i = largest
	}
}

func (m *Map[K, P]) swap(i, j int) {
	m.heap[i], m.heap[j] = m.heap[j], m.heap[i]
	m.index[m.heap[i].key] = i
	m.index[m.heap[j].key] = j
}
