package recommend

// IDIndex is an explicit bidirectional mapping between external entity ids and
// matrix row/column positions. Every fitted engine owns one per axis so that
// positions are never inferred from iteration order; the mapping is frozen for
// the lifetime of one fitted model instance.
type IDIndex struct {
	ids []int64
	pos map[int64]int
}

// NewIDIndex builds an index over ids in the given order. Duplicate ids keep
// their first position.
func NewIDIndex(ids []int64) *IDIndex {
	idx := &IDIndex{
		ids: make([]int64, 0, len(ids)),
		pos: make(map[int64]int, len(ids)),
	}
	for _, id := range ids {
		if _, ok := idx.pos[id]; ok {
			continue
		}
		idx.pos[id] = len(idx.ids)
		idx.ids = append(idx.ids, id)
	}
	return idx
}

// Len returns the number of ids in the index.
func (x *IDIndex) Len() int { return len(x.ids) }

// At returns the id stored at position i.
func (x *IDIndex) At(i int) int64 { return x.ids[i] }

// Lookup returns the position of id and whether it is present.
func (x *IDIndex) Lookup(id int64) (int, bool) {
	i, ok := x.pos[id]
	return i, ok
}

// Contains reports whether id is present.
func (x *IDIndex) Contains(id int64) bool {
	_, ok := x.pos[id]
	return ok
}

// IDs returns a copy of the ids in position order.
func (x *IDIndex) IDs() []int64 {
	out := make([]int64, len(x.ids))
	copy(out, x.ids)
	return out
}
