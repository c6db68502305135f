package selection

// Unknown marks a pivot cache slot that no call has filled yet.
const Unknown = -1

// MaxCacheLevels bounds the depth of a pivot cache.
const MaxCacheLevels = 20

// NewPivotCache returns a cache able to remember the pivots of the first
// levels partition levels, laid out as a binary heap: the children of slot n
// are 2n+1 and 2n+2. Every slot starts Unknown.
func NewPivotCache(levels int) []int {
	levels = max(0, min(levels, MaxCacheLevels))
	pivots := make([]int, 1<<levels-1)
	ResetPivotCache(pivots)
	return pivots
}

// ResetPivotCache forgets every recorded pivot.
func ResetPivotCache(pivots []int) {
	for i := range pivots {
		pivots[i] = Unknown
	}
}

// CachedPivots reports how many slots of pivots hold a recorded pivot.
func CachedPivots(pivots []int) int {
	n := 0
	for _, p := range pivots {
		if p != Unknown {
			n++
		}
	}
	return n
}
