// Package fibheap implements a Fibonacci heap: a decrease-key priority queue
// with O(1) amortized Insert and DecreaseKey and O(log n) amortized
// ExtractMin.
//
// Both navigators keep one heap per worker and relax vertex costs through
// DecreaseKey on the handle returned by Insert. A binary heap would pay
// O(log n) for every relaxation, which dominates Dijkstra on street graphs
// where most pushes are later improved.
//
// The heap is not safe for concurrent use.
package fibheap

import "errors"

// ErrPriorityIncrease is the panic value raised when DecreaseKey is asked to
// raise a priority. Callers must never do this; it is a programming error,
// not a recoverable condition.
var ErrPriorityIncrease = errors.New("fibheap: new priority exceeds current priority")

// Entry is a handle to a value stored in the heap.
type Entry[T any] struct {
	value    T
	priority float64

	degree int
	marked bool
	next   *Entry[T]
	prev   *Entry[T]
	parent *Entry[T]
	child  *Entry[T]
}

// Value returns the value stored in the entry.
func (e *Entry[T]) Value() T { return e.value }

// Priority returns the current priority of the entry.
func (e *Entry[T]) Priority() float64 { return e.priority }

// Heap is a min-ordered Fibonacci heap. The zero value is an empty heap.
type Heap[T any] struct {
	min  *Entry[T]
	size int

	// scratch reused by consolidate
	roots []*Entry[T]
	table []*Entry[T]
}

// New returns an empty heap.
func New[T any]() *Heap[T] {
	return &Heap[T]{}
}

// Len returns the number of entries in the heap.
func (h *Heap[T]) Len() int { return h.size }

// IsEmpty reports whether the heap holds no entries.
func (h *Heap[T]) IsEmpty() bool { return h.size == 0 }

// Insert adds value with the given priority and returns its handle.
func (h *Heap[T]) Insert(value T, priority float64) *Entry[T] {
	e := &Entry[T]{value: value, priority: priority}
	e.next = e
	e.prev = e
	h.min = mergeLists(h.min, e)
	h.size++
	return e
}

// Min returns the entry with the smallest priority without removing it.
func (h *Heap[T]) Min() (*Entry[T], bool) {
	if h.min == nil {
		return nil, false
	}
	return h.min, true
}

// ExtractMin removes and returns the value with the smallest priority.
// ok is false when the heap is empty.
func (h *Heap[T]) ExtractMin() (value T, priority float64, ok bool) {
	m := h.min
	if m == nil {
		return value, 0, false
	}
	h.size--

	if m.next == m {
		h.min = nil
	} else {
		m.prev.next = m.next
		m.next.prev = m.prev
		h.min = m.next
	}

	if m.child != nil {
		c := m.child
		for {
			c.parent = nil
			c = c.next
			if c == m.child {
				break
			}
		}
	}
	h.min = mergeLists(h.min, m.child)

	m.child = nil
	m.next = m
	m.prev = m

	if h.min != nil {
		h.consolidate()
	}
	return m.value, m.priority, true
}

// DecreaseKey lowers the priority of entry to priority. It panics with
// ErrPriorityIncrease if priority is greater than the current one.
func (h *Heap[T]) DecreaseKey(entry *Entry[T], priority float64) {
	if priority > entry.priority {
		panic(ErrPriorityIncrease)
	}
	entry.priority = priority

	if parent := entry.parent; parent != nil && entry.priority < parent.priority {
		h.cut(entry)
	}
	if entry.priority < h.min.priority {
		h.min = entry
	}
}

// Clear drops every entry. Handles obtained before Clear must not be used
// with the heap afterwards.
func (h *Heap[T]) Clear() {
	h.min = nil
	h.size = 0
}

// consolidate links roots of equal degree until every root has a distinct
// degree, then rescans the roots for the new minimum.
func (h *Heap[T]) consolidate() {
	h.roots = h.roots[:0]
	for cur := h.min; ; {
		h.roots = append(h.roots, cur)
		cur = cur.next
		if cur == h.min {
			break
		}
	}
	for i := range h.table {
		h.table[i] = nil
	}

	for _, cur := range h.roots {
		for {
			for cur.degree >= len(h.table) {
				h.table = append(h.table, nil)
			}
			other := h.table[cur.degree]
			if other == nil {
				h.table[cur.degree] = cur
				break
			}
			h.table[cur.degree] = nil

			lo, hi := cur, other
			if other.priority < cur.priority {
				lo, hi = other, cur
			}
			// unlink hi from the root list and hang it under lo
			hi.next.prev = hi.prev
			hi.prev.next = hi.next
			hi.next = hi
			hi.prev = hi
			lo.child = mergeLists(lo.child, hi)
			hi.parent = lo
			hi.marked = false
			lo.degree++

			cur = lo
		}
	}

	h.min = nil
	for _, root := range h.table {
		if root != nil && (h.min == nil || root.priority < h.min.priority) {
			h.min = root
		}
	}
	for i := range h.roots {
		h.roots[i] = nil
	}
}

// cut moves entry to the root list and cascades up through marked parents.
func (h *Heap[T]) cut(entry *Entry[T]) {
	for {
		parent := entry.parent
		if parent == nil {
			entry.marked = false
			return
		}

		if entry.next == entry {
			parent.child = nil
		} else {
			entry.next.prev = entry.prev
			entry.prev.next = entry.next
			if parent.child == entry {
				parent.child = entry.next
			}
		}
		parent.degree--

		entry.next = entry
		entry.prev = entry
		entry.parent = nil
		entry.marked = false
		h.min = mergeLists(h.min, entry)

		if parent.parent == nil {
			return
		}
		if !parent.marked {
			parent.marked = true
			return
		}
		entry = parent
	}
}

// mergeLists splices two circular lists together and returns the entry with
// the smaller priority. Either list may be nil.
func mergeLists[T any](one, two *Entry[T]) *Entry[T] {
	switch {
	case one == nil:
		return two
	case two == nil:
		return one
	}
	oneNext := one.next
	one.next = two.next
	one.next.prev = one
	two.next = oneNext
	two.next.prev = two

	if two.priority < one.priority {
		return two
	}
	return one
}
