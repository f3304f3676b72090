package lru

import (
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/lrucache"
)

func TestNewRejectsNonPositiveCapacity(t *testing.T) {
	for _, capacity := range []int{0, -1, -100} {
		c, err := New[string, int](capacity)
		require.ErrorIs(t, err, lrucache.ErrInvalidConfiguration)
		require.Nil(t, c)
	}
}

func TestNewRejectsCapacityBeyondHandleSpace(t *testing.T) {
	require := require.New(t)

	_, err := New[int, int](math.MaxInt)
	require.ErrorIs(err, lrucache.ErrInvalidConfiguration)

	_, err = New[int, int](MaxCapacity + 1)
	require.ErrorIs(err, lrucache.ErrInvalidConfiguration)
}

func TestLargeCapacityAllocatesLazily(t *testing.T) {
	require := require.New(t)

	cache, err := New[int, int](MaxCapacity)
	require.NoError(err)
	require.Equal(MaxCapacity, cache.Cap())
	require.LessOrEqual(cap(cache.order.slots), sizeHint+1)

	for i := 0; i < 3*sizeHint; i++ {
		cache.Put(i, i)
	}
	require.Equal(3*sizeHint, cache.Len())
	val, ok := cache.Get(0)
	require.True(ok)
	require.Zero(val)
	require.Less(cache.PortionFilled(), 1e-5)
}

func TestGetRefreshesRecency(t *testing.T) {
	require := require.New(t)

	cache, err := New[string, int](2)
	require.NoError(err)

	cache.Put("A", 1)
	cache.Put("B", 2)

	val, ok := cache.Get("A")
	require.True(ok)
	require.Equal(1, val)

	cache.Put("C", 3) // Should evict B

	_, ok = cache.Get("B")
	require.False(ok)

	val, ok = cache.Get("C")
	require.True(ok)
	require.Equal(3, val)

	val, ok = cache.Get("A")
	require.True(ok)
	require.Equal(1, val)
}

func TestCapacityOneEvictsOnEveryNewKey(t *testing.T) {
	require := require.New(t)

	cache, err := New[string, int](1)
	require.NoError(err)

	cache.Put("X", 1)
	cache.Put("Y", 2)

	_, ok := cache.Get("X")
	require.False(ok)

	val, ok := cache.Get("Y")
	require.True(ok)
	require.Equal(2, val)
	require.Equal(1, cache.Len())
}

func TestPutExistingKeyUpdatesInPlace(t *testing.T) {
	require := require.New(t)

	evicted := 0
	cache, err := New[string, int](2, WithOnEvict(func(string, int) { evicted++ }))
	require.NoError(err)

	cache.Put("A", 1)
	cache.Put("A", 10)
	require.Equal(1, cache.Len())

	val, ok := cache.Get("A")
	require.True(ok)
	require.Equal(10, val)

	for i := 0; i < 100; i++ {
		cache.Put("A", i)
	}
	require.Equal(1, cache.Len())
	require.Zero(evicted)
}

func TestNeverTouchedKeysEvictInInsertionOrder(t *testing.T) {
	require := require.New(t)

	var evicted []string
	cache, err := New[string, int](3, WithOnEvict(func(k string, _ int) {
		evicted = append(evicted, k)
	}))
	require.NoError(err)

	cache.Put("A", 1)
	cache.Put("B", 2)
	cache.Put("C", 3)
	cache.Put("D", 4)

	require.Equal([]string{"A"}, evicted)
	_, ok := cache.Get("A")
	require.False(ok)
	for _, key := range []string{"B", "C", "D"} {
		_, ok := cache.Get(key)
		require.True(ok, key)
	}

	cache.Put("E", 5)
	cache.Put("F", 6)
	require.Equal([]string{"A", "B", "C"}, evicted)
}

func TestMissLeavesStateUntouched(t *testing.T) {
	require := require.New(t)

	cache, err := New[string, int](2)
	require.NoError(err)

	_, ok := cache.Get("missing")
	require.False(ok)
	require.Zero(cache.Len())

	cache.Put("A", 1)
	cache.Put("B", 2)
	before := cache.Keys()
	for i := 0; i < 3; i++ {
		_, ok := cache.Get("missing")
		require.False(ok)
	}
	require.Equal(before, cache.Keys())
}

func TestPeekDoesNotRefresh(t *testing.T) {
	require := require.New(t)

	cache, err := New[string, int](2)
	require.NoError(err)

	cache.Put("A", 1)
	cache.Put("B", 2)

	val, ok := cache.Peek("A")
	require.True(ok)
	require.Equal(1, val)
	require.True(cache.Contains("A"))

	cache.Put("C", 3)
	require.False(cache.Contains("A"))
	require.Equal([]string{"B", "C"}, cache.Keys())
}

func TestOldest(t *testing.T) {
	require := require.New(t)

	cache, err := New[string, int](3)
	require.NoError(err)

	_, _, ok := cache.Oldest()
	require.False(ok)

	cache.Put("A", 1)
	cache.Put("B", 2)
	cache.Get("A")

	key, val, ok := cache.Oldest()
	require.True(ok)
	require.Equal("B", key)
	require.Equal(2, val)
}

func TestOnEvictCanPutBackIntoCache(t *testing.T) {
	require := require.New(t)

	var cache *Cache[int, int]
	cache, err := New[int, int](2, WithOnEvict(func(k, _ int) {
		if k == 1 {
			cache.Put(100, 100)
		}
	}))
	require.NoError(err)

	cache.Put(1, 1)
	cache.Put(2, 2)
	cache.Put(3, 3) // evicts 1, whose callback evicts 2

	require.Equal(2, cache.Len())
	require.Equal([]int{3, 100}, cache.Keys())
}

func TestOnEvictSeesNewEntry(t *testing.T) {
	require := require.New(t)

	var cache *Cache[string, int]
	var present bool
	cache, err := New[string, int](1, WithOnEvict(func(string, int) {
		present = cache.Contains("B")
	}))
	require.NoError(err)

	cache.Put("A", 1)
	cache.Put("B", 2)
	require.True(present)
}

func TestEvictAndFlush(t *testing.T) {
	require := require.New(t)

	var evicted []string
	cache, err := New[string, int](3, WithOnEvict(func(k string, _ int) {
		evicted = append(evicted, k)
	}))
	require.NoError(err)

	cache.Put("A", 1)
	cache.Put("B", 2)
	cache.Put("C", 3)

	cache.Evict("B")
	cache.Evict("missing")
	require.Equal(2, cache.Len())
	require.Equal([]string{"A", "C"}, cache.Keys())

	cache.Put("D", 4)
	require.Equal(3, cache.Len())
	require.Empty(evicted)

	require.Equal(1.0, cache.PortionFilled())
	cache.Flush()
	require.Zero(cache.Len())
	require.Equal(0.0, cache.PortionFilled())
	require.Empty(cache.Keys())
	require.Empty(evicted)

	cache.Put("E", 5)
	val, ok := cache.Get("E")
	require.True(ok)
	require.Equal(5, val)
	require.Equal(3, cache.Cap())
}

func TestArenaReusesSlots(t *testing.T) {
	require := require.New(t)

	const capacity = 8
	cache, err := New[int, int](capacity)
	require.NoError(err)

	for i := 0; i <= 1000; i++ {
		cache.Put(i, i)
		if i%3 == 0 {
			cache.Evict(i - 1)
		}
		require.LessOrEqual(len(cache.order.slots), capacity+1)
	}
	require.Equal(capacity, cache.Len())
}

// model is a deliberately naive LRU used as a reference.
type model struct {
	capacity int
	order    []int
	values   map[int]int
}

func (m *model) touch(key int) {
	i := slices.Index(m.order, key)
	m.order = append(slices.Delete(m.order, i, i+1), key)
}

func (m *model) put(key, value int) (evicted int, didEvict bool) {
	if _, ok := m.values[key]; ok {
		m.values[key] = value
		m.touch(key)
		return 0, false
	}
	if len(m.order) == m.capacity {
		evicted, didEvict = m.order[0], true
		m.order = m.order[1:]
		delete(m.values, evicted)
	}
	m.order = append(m.order, key)
	m.values[key] = value
	return evicted, didEvict
}

func (m *model) get(key int) (int, bool) {
	v, ok := m.values[key]
	if ok {
		m.touch(key)
	}
	return v, ok
}

func TestMatchesReferenceModel(t *testing.T) {
	for _, capacity := range []int{1, 2, 3, 7, 16} {
		rng := rand.New(rand.NewPCG(uint64(capacity), 42))

		var evicted []int
		cache, err := New[int, int](capacity, WithOnEvict(func(k, _ int) {
			evicted = append(evicted, k)
		}))
		require.NoError(t, err)
		ref := &model{capacity: capacity, order: []int{}, values: make(map[int]int)}
		var refEvicted []int

		for step := 0; step < 5000; step++ {
			key := rng.IntN(3 * capacity)
			if rng.IntN(2) == 0 {
				value := rng.Int()
				cache.Put(key, value)
				if k, ok := ref.put(key, value); ok {
					refEvicted = append(refEvicted, k)
				}
			} else {
				got, gotOK := cache.Get(key)
				want, wantOK := ref.get(key)
				require.Equal(t, wantOK, gotOK, "step %d key %d", step, key)
				require.Equal(t, want, got, "step %d key %d", step, key)
			}

			require.LessOrEqual(t, cache.Len(), capacity)
			require.Len(t, cache.elements, cache.Len())
			require.Equal(t, ref.order, cache.Keys(), "step %d", step)
		}
		require.Equal(t, refEvicted, evicted)
	}
}
