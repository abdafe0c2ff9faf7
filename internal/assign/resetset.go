package assign

// ResetSet is a set of small integers (variable or atom ids) that can be
// cleared in O(1) regardless of how many elements it holds. It backs the
// "seen" marker sets used by conflict analysis (§4.5) and the unfounded
// checker's sweep (§4.7).
type ResetSet struct {
	stamp   []uint32
	current uint32
}

// Contains reports whether v is in the set.
func (rs *ResetSet) Contains(v int) bool {
	return rs.stamp[v] == rs.current
}

// Add inserts v into the set.
func (rs *ResetSet) Add(v int) {
	rs.stamp[v] = rs.current
}

// Remove deletes v from the set.
func (rs *ResetSet) Remove(v int) {
	rs.stamp[v] = rs.current - 1
}

// Clear empties the set in constant time.
func (rs *ResetSet) Clear() {
	rs.current++
	if rs.current == 0 { // wrapped around
		rs.current = 1
		for i := range rs.stamp {
			rs.stamp[i] = 0
		}
	}
}

// Grow extends the set's domain by one element (initially absent).
func (rs *ResetSet) Grow() {
	if rs.current == 0 { // zero value: stamp 0 must mean absent
		rs.current = 1
	}
	rs.stamp = append(rs.stamp, 0)
}
