// Copyright (C) 2026, Lux Partners Limited. All rights reserved.
// See the file LICENSE for licensing terms.

package lru

// handle addresses a slot in a recency list. Handles stay valid until the
// slot is removed, after which they may be reused for another entry.
type handle uint32

// root is the sentinel slot. root.next is the least recently used entry and
// root.prev the most recently used one; an empty list links root to itself.
const root handle = 0

type slot[K comparable, V any] struct {
	key   K
	value V
	// weight is only meaningful to SizedCache.
	weight     int
	prev, next handle
}

// recencyList is a circular doubly-linked list whose nodes live in a single
// slice. Removed slots go on a free list and are handed out again before the
// slice grows, so a list that never holds more than n entries never holds
// more than n+1 slots.
//
// The zero value is not valid, use newRecencyList.
type recencyList[K comparable, V any] struct {
	slots []slot[K, V]
	free  []handle
	len   int
}

func newRecencyList[K comparable, V any](sizeHint int) recencyList[K, V] {
	return recencyList[K, V]{
		slots: make([]slot[K, V], 1, sizeHint+1),
	}
}

// pushBack stores a new entry at the most recently used end.
func (l *recencyList[K, V]) pushBack(key K, value V, weight int) handle {
	var h handle
	if n := len(l.free); n > 0 {
		h = l.free[n-1]
		l.free = l.free[:n-1]
	} else {
		h = handle(len(l.slots))
		l.slots = append(l.slots, slot[K, V]{})
	}
	s := &l.slots[h]
	s.key = key
	s.value = value
	s.weight = weight
	l.link(h, l.slots[root].prev)
	l.len++
	return h
}

// moveToBack marks h as the most recently used entry.
func (l *recencyList[K, V]) moveToBack(h handle) {
	if l.slots[root].prev == h {
		return
	}
	l.unlink(h)
	l.link(h, l.slots[root].prev)
}

// remove unlinks h, clears its slot and returns it to the free list.
func (l *recencyList[K, V]) remove(h handle) (K, V) {
	l.unlink(h)
	s := &l.slots[h]
	key, value := s.key, s.value
	*s = slot[K, V]{}
	l.free = append(l.free, h)
	l.len--
	return key, value
}

// front returns the least recently used entry, or root if the list is empty.
func (l *recencyList[K, V]) front() handle {
	return l.slots[root].next
}

func (l *recencyList[K, V]) get(h handle) *slot[K, V] {
	return &l.slots[h]
}

// init empties the list while keeping the backing arrays.
func (l *recencyList[K, V]) init() {
	clear(l.slots)
	l.slots = l.slots[:1]
	l.free = l.free[:0]
	l.len = 0
}

// keys returns the keys from least to most recently used.
func (l *recencyList[K, V]) keys() []K {
	keys := make([]K, 0, l.len)
	for h := l.front(); h != root; h = l.slots[h].next {
		keys = append(keys, l.slots[h].key)
	}
	return keys
}

// link inserts h directly after at.
func (l *recencyList[K, V]) link(h, at handle) {
	next := l.slots[at].next
	l.slots[h].prev = at
	l.slots[h].next = next
	l.slots[at].next = h
	l.slots[next].prev = h
}

func (l *recencyList[K, V]) unlink(h handle) {
	prev, next := l.slots[h].prev, l.slots[h].next
	l.slots[prev].next = next
	l.slots[next].prev = prev
	l.slots[h].prev, l.slots[h].next = root, root
}
