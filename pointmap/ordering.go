package pointmap

import (
	"iter"
	"math"
)

// Entry is a key/value pair returned by the bulk distance query helpers.
type Entry[P, V any] struct {
	Key   P
	Value V
}

// NearToFar returns a lazy sequence of entries ordered by ascending distance
// of their keys from ref. The sequence is finite and restartable; each range
// over it walks the container again. Ties in distance are broken by the order
// the backing cursors produce entries, which is fixed for an unmodified
// container and therefore stable across calls.
//
// The traversal walks two cursors outward from ref's position in the sorted
// structure and merges them by Euclidean distance. An entry is only emitted
// once the primary-axis distance of both cursor heads (a lower bound on the
// Euclidean distance of anything they have yet to produce) rules out a closer
// candidate, so consumers that stop early never pay for a full scan.
//
// Errors if ref is non-finite. The container must not be mutated while the
// sequence is being consumed.
func (m *Map[P, V]) NearToFar(ref P) (iter.Seq2[P, V], error) {
	if !m.sp.isFinite(ref) {
		return nil, newNonFinitePointError(ref)
	}
	return func(yield func(P, V) bool) {
		up := newCursor(m.ascendFrom(ref))
		defer up.close()
		down := newCursor(m.descendBefore(ref))
		defer down.close()

		eps := m.prec.Epsilon()
		lowerBound := func(c *cursor[P, V]) float64 {
			if !c.ok {
				return math.Inf(1)
			}
			// later entries from this cursor may drift back by at most eps
			// along the sort axis
			return math.Max(0, m.sp.axisDist(c.head.key, ref)-eps)
		}

		h := newDistHeap[P, V](func(a, b distItem[P, V]) bool {
			if a.dist != b.dist {
				return a.dist < b.dist
			}
			return a.seq < b.seq
		})
		seq := 0

		for {
			upBound := lowerBound(up)
			downBound := lowerBound(down)
			bound := math.Min(upBound, downBound)

			if h.len() > 0 && h.peek().dist <= bound {
				item := h.pop()
				if !yield(item.key, item.value) {
					return
				}
				continue
			}
			if !up.ok && !down.ok {
				for h.len() > 0 {
					item := h.pop()
					if !yield(item.key, item.value) {
						return
					}
				}
				return
			}

			c := up
			if downBound < upBound {
				c = down
			}
			h.push(distItem[P, V]{
				dist:  m.sp.dist(c.head.key, ref),
				seq:   seq,
				key:   c.head.key,
				value: c.head.value,
			})
			seq++
			c.advance()
		}
	}, nil
}

// FarToNear returns a lazy sequence of entries ordered by descending distance
// of their keys from ref, with the same tie and mutation semantics as
// NearToFar.
//
// The cursors start at the two extremes of the sorted structure and walk
// inward toward ref. Since the sort axis alone gives no upper bound on the
// Euclidean distance of unseen entries, the bound additionally uses the
// componentwise interval of every key ever inserted: an unseen entry cannot
// be farther from ref than the farthest corner of that interval clipped to
// the axis range still ahead of the cursors.
func (m *Map[P, V]) FarToNear(ref P) (iter.Seq2[P, V], error) {
	if !m.sp.isFinite(ref) {
		return nil, newNonFinitePointError(ref)
	}
	return func(yield func(P, V) bool) {
		// descending cursor over keys at or above ref, ascending cursor over
		// keys below ref
		above := newCursor(m.descendToward(ref))
		defer above.close()
		below := newCursor(m.ascendToward(ref))
		defer below.close()

		var refBuf [maxDims]float64
		m.sp.coords(ref, &refBuf)
		eps := m.prec.Epsilon()

		// distance from ref to the farthest corner of the interval formed by
		// the given primary-axis range and the recorded bounds elsewhere
		cornerDist := func(axisLo, axisHi float64) float64 {
			d0 := math.Max(math.Abs(refBuf[0]-axisLo), math.Abs(refBuf[0]-axisHi))
			sum := d0 * d0
			for i := 1; i < m.sp.dims; i++ {
				di := math.Max(math.Abs(refBuf[i]-m.lo[i]), math.Abs(refBuf[i]-m.hi[i]))
				sum += di * di
			}
			return math.Sqrt(sum)
		}

		upperBound := func(c *cursor[P, V], isAbove bool) float64 {
			if !c.ok {
				return math.Inf(-1)
			}
			var headBuf [maxDims]float64
			m.sp.coords(c.head.key, &headBuf)
			if isAbove {
				// unseen entries lie between ref and the head on the axis
				return cornerDist(math.Max(m.lo[0], refBuf[0]-eps), math.Min(m.hi[0], headBuf[0]+eps))
			}
			return cornerDist(math.Max(m.lo[0], headBuf[0]-eps), math.Min(m.hi[0], refBuf[0]+eps))
		}

		h := newDistHeap[P, V](func(a, b distItem[P, V]) bool {
			if a.dist != b.dist {
				return a.dist > b.dist
			}
			return a.seq < b.seq
		})
		seq := 0

		for {
			aboveBound := upperBound(above, true)
			belowBound := upperBound(below, false)
			bound := math.Max(aboveBound, belowBound)

			if h.len() > 0 && h.peek().dist >= bound {
				item := h.pop()
				if !yield(item.key, item.value) {
					return
				}
				continue
			}
			if !above.ok && !below.ok {
				for h.len() > 0 {
					item := h.pop()
					if !yield(item.key, item.value) {
						return
					}
				}
				return
			}

			c := above
			if belowBound > aboveBound {
				c = below
			}
			h.push(distItem[P, V]{
				dist:  m.sp.dist(c.head.key, ref),
				seq:   seq,
				key:   c.head.key,
				value: c.head.value,
			})
			seq++
			c.advance()
		}
	}, nil
}

// Nearest returns the entry whose key is closest to ref. The second result
// value is false if the container is empty or ref is non-finite.
func (m *Map[P, V]) Nearest(ref P) (P, V, bool) {
	var zeroP P
	var zeroV V
	seq, err := m.NearToFar(ref)
	if err != nil {
		return zeroP, zeroV, false
	}
	for k, v := range seq {
		return k, v, true
	}
	return zeroP, zeroV, false
}

// NearestK returns up to k entries closest to ref in ascending distance
// order. Errors on negative k or a non-finite ref.
func (m *Map[P, V]) NearestK(ref P, k int) ([]Entry[P, V], error) {
	if k < 0 {
		return nil, newNegativeCountError(k)
	}
	seq, err := m.NearToFar(ref)
	if err != nil {
		return nil, err
	}
	return collectK(seq, k), nil
}

// FarthestK returns up to k entries farthest from ref in descending distance
// order. Errors on negative k or a non-finite ref.
func (m *Map[P, V]) FarthestK(ref P, k int) ([]Entry[P, V], error) {
	if k < 0 {
		return nil, newNegativeCountError(k)
	}
	seq, err := m.FarToNear(ref)
	if err != nil {
		return nil, err
	}
	return collectK(seq, k), nil
}

// NearestWithin returns all entries whose keys are within radius of ref, in
// ascending distance order. The boundary is compared with the container's
// precision context.
func (m *Map[P, V]) NearestWithin(ref P, radius float64) ([]Entry[P, V], error) {
	if math.IsNaN(radius) || radius < 0 {
		return nil, newNegativeRadiusError(radius)
	}
	seq, err := m.NearToFar(ref)
	if err != nil {
		return nil, err
	}
	var out []Entry[P, V]
	for k, v := range seq {
		if m.prec.Gt(m.sp.dist(k, ref), radius) {
			break
		}
		out = append(out, Entry[P, V]{Key: k, Value: v})
	}
	return out, nil
}

func collectK[P, V any](seq iter.Seq2[P, V], k int) []Entry[P, V] {
	if k == 0 {
		return nil
	}
	out := make([]Entry[P, V], 0, k)
	for key, v := range seq {
		out = append(out, Entry[P, V]{Key: key, Value: v})
		if len(out) == k {
			break
		}
	}
	return out
}

// ascendFrom walks entries at or after ref in ascending key order, including
// a stored key equivalent to ref.
func (m *Map[P, V]) ascendFrom(ref P) iter.Seq[entry[P, V]] {
	return func(yield func(entry[P, V]) bool) {
		m.tree.AscendGreaterOrEqual(entry[P, V]{key: ref}, func(item entry[P, V]) bool {
			return yield(item)
		})
	}
}

// descendBefore walks entries strictly before ref in descending key order,
// skipping any stored key equivalent to ref.
func (m *Map[P, V]) descendBefore(ref P) iter.Seq[entry[P, V]] {
	return func(yield func(entry[P, V]) bool) {
		m.tree.DescendLessOrEqual(entry[P, V]{key: ref}, func(item entry[P, V]) bool {
			if m.sp.compare(m.prec, item.key, ref) == 0 {
				return true
			}
			return yield(item)
		})
	}
}

// descendToward walks entries at or after ref, starting from the largest key
// and moving down toward ref.
func (m *Map[P, V]) descendToward(ref P) iter.Seq[entry[P, V]] {
	return func(yield func(entry[P, V]) bool) {
		m.tree.Descend(func(item entry[P, V]) bool {
			if m.sp.compare(m.prec, item.key, ref) < 0 {
				return false
			}
			return yield(item)
		})
	}
}

// ascendToward walks entries strictly before ref, starting from the smallest
// key and moving up toward ref.
func (m *Map[P, V]) ascendToward(ref P) iter.Seq[entry[P, V]] {
	return func(yield func(entry[P, V]) bool) {
		m.tree.Ascend(func(item entry[P, V]) bool {
			if m.sp.compare(m.prec, item.key, ref) >= 0 {
				return false
			}
			return yield(item)
		})
	}
}

// cursor wraps a pull-style iterator with a one-entry lookahead so merge
// logic can inspect the next entry without consuming it.
type cursor[P, V any] struct {
	next func() (entry[P, V], bool)
	stop func()
	head entry[P, V]
	ok   bool
}

func newCursor[P, V any](seq iter.Seq[entry[P, V]]) *cursor[P, V] {
	next, stop := iter.Pull(seq)
	c := &cursor[P, V]{next: next, stop: stop}
	c.advance()
	return c
}

func (c *cursor[P, V]) advance() {
	c.head, c.ok = c.next()
}

func (c *cursor[P, V]) close() {
	c.stop()
}

type distItem[P, V any] struct {
	dist  float64
	seq   int
	key   P
	value V
}

// distHeap is a binary heap over distItem values with a caller-supplied
// priority. container/heap is not used because its interface would force the
// generic items through an extra indirection.
type distHeap[P, V any] struct {
	items  []distItem[P, V]
	before func(a, b distItem[P, V]) bool
}

func newDistHeap[P, V any](before func(a, b distItem[P, V]) bool) *distHeap[P, V] {
	return &distHeap[P, V]{before: before}
}

func (h *distHeap[P, V]) len() int {
	return len(h.items)
}

func (h *distHeap[P, V]) peek() distItem[P, V] {
	return h.items[0]
}

func (h *distHeap[P, V]) push(item distItem[P, V]) {
	h.items = append(h.items, item)
	i := len(h.items) - 1
	for i > 0 {
		parent := (i - 1) / 2
		if !h.before(h.items[i], h.items[parent]) {
			break
		}
		h.items[i], h.items[parent] = h.items[parent], h.items[i]
		i = parent
	}
}

func (h *distHeap[P, V]) pop() distItem[P, V] {
	top := h.items[0]
	last := len(h.items) - 1
	h.items[0] = h.items[last]
	h.items = h.items[:last]

	i := 0
	for {
		left, right := 2*i+1, 2*i+2
		smallest := i
		if left < len(h.items) && h.before(h.items[left], h.items[smallest]) {
			smallest = left
		}
		if right < len(h.items) && h.before(h.items[right], h.items[smallest]) {
			smallest = right
		}
		if smallest == i {
			break
		}
		h.items[i], h.items[smallest] = h.items[smallest], h.items[i]
		i = smallest
	}
	return top
}
