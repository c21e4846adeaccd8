package partition

import "fmt"

// membership records where an element sits when it is present in some set.
type membership struct {
	set     int
	pos     int
	present bool
}

// MultiSet tracks a partial, exclusive membership of elements into one of
// numSets buckets: unlike PartitionSet, an element may belong to no bucket
// at all. It is used for per-part frontier-node membership, where only nodes
// adjacent to a different part are tracked.
type MultiSet struct {
	sets  [][]int
	index []membership
}

// isqrtCapacityHint returns a starting capacity guess for each bucket,
// proportional to the expected fraction of elements that will ever become
// frontier members (a small minority for most planar adjacency graphs).
func isqrtCapacityHint(numElems int) int {
	n := numElems
	x := n
	for x*x > n {
		x = (x + n/max(x, 1)) / 2
	}
	if x < 1 {
		x = 1
	}
	return x
}

// NewMultiSet builds an empty MultiSet with numSets buckets over numElems
// elements; no element belongs to any bucket initially.
func NewMultiSet(numSets, numElems int) *MultiSet {
	if numSets <= 0 {
		panic("partition: NewMultiSet requires numSets > 0")
	}
	ms := &MultiSet{
		sets:  make([][]int, numSets),
		index: make([]membership, numElems),
	}
	hint := isqrtCapacityHint(numElems)
	for s := range ms.sets {
		ms.sets[s] = make([]int, 0, hint)
	}
	return ms
}

// NumSets returns the number of buckets.
func (ms *MultiSet) NumSets() int { return len(ms.sets) }

// NumElems returns the number of elements tracked.
func (ms *MultiSet) NumElems() int { return len(ms.index) }

// Clear empties every bucket without reallocating backing arrays.
func (ms *MultiSet) Clear() {
	for s := range ms.sets {
		ms.sets[s] = ms.sets[s][:0]
	}
	for e := range ms.index {
		ms.index[e] = membership{}
	}
}

// RebuildFrom replaces the entire membership from a sequence of (elem, set)
// pairs. Each element must appear at most once; RebuildFrom panics if an
// element is listed more than once.
func (ms *MultiSet) RebuildFrom(pairs [][2]int) {
	ms.Clear()
	for _, p := range pairs {
		elem, set := p[0], p[1]
		ms.checkElem("RebuildFrom", elem)
		ms.checkSet("RebuildFrom", set)
		if ms.index[elem].present {
			panic(fmt.Sprintf("partition: MultiSet.RebuildFrom: element %d listed more than once", elem))
		}
		ms.index[elem] = membership{set: set, pos: len(ms.sets[set]), present: true}
		ms.sets[set] = append(ms.sets[set], elem)
	}
}

// Find returns the set and position currently holding elem, and whether elem
// is present in any bucket.
func (ms *MultiSet) Find(elem int) (set, pos int, ok bool) {
	ms.checkElem("Find", elem)
	m := ms.index[elem]
	return m.set, m.pos, m.present
}

// Contains reports whether elem currently belongs to any bucket.
func (ms *MultiSet) Contains(elem int) bool {
	ms.checkElem("Contains", elem)
	return ms.index[elem].present
}

// Get returns the elements currently in set s.
func (ms *MultiSet) Get(s int) []int {
	ms.checkSet("Get", s)
	return ms.sets[s]
}

// IterAll calls fn for every (elem, set) pair currently present, across all
// buckets.
func (ms *MultiSet) IterAll(fn func(elem, set int)) {
	for s, bucket := range ms.sets {
		for _, e := range bucket {
			fn(e, s)
		}
	}
}

// Insert adds elem to set s, moving it out of any prior bucket first. It is
// a no-op if elem is already in s.
func (ms *MultiSet) Insert(elem, s int) {
	ms.checkElem("Insert", elem)
	ms.checkSet("Insert", s)

	m := ms.index[elem]
	if m.present {
		if m.set == s {
			return
		}
		ms.swapRemove(m.set, elem)
	}
	ms.index[elem] = membership{set: s, pos: len(ms.sets[s]), present: true}
	ms.sets[s] = append(ms.sets[s], elem)
}

// Remove removes elem from whatever bucket it occupies; a no-op if elem is
// not currently present in any bucket.
func (ms *MultiSet) Remove(elem int) {
	ms.checkElem("Remove", elem)
	m := ms.index[elem]
	if !m.present {
		return
	}
	ms.swapRemove(m.set, elem)
	ms.index[elem] = membership{}
}

func (ms *MultiSet) swapRemove(s, elem int) {
	bucket := ms.sets[s]
	pos := ms.index[elem].pos
	last := len(bucket) - 1
	if pos != last {
		moved := bucket[last]
		bucket[pos] = moved
		mm := ms.index[moved]
		mm.pos = pos
		ms.index[moved] = mm
	}
	ms.sets[s] = bucket[:last]
}

func (ms *MultiSet) checkSet(method string, s int) {
	if s < 0 || s >= len(ms.sets) {
		panic(fmt.Sprintf("partition: MultiSet.%s: set %d out of range [0,%d)", method, s, len(ms.sets)))
	}
}

func (ms *MultiSet) checkElem(method string, e int) {
	if e < 0 || e >= len(ms.index) {
		panic(fmt.Sprintf("partition: MultiSet.%s: element %d out of range [0,%d)", method, e, len(ms.index)))
	}
}
