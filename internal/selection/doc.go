// Package selection finds order statistics in a float64 slice by quickselect.
//
// The search window is narrowed by partitioning around pivots chosen by an
// interchangeable PivotStrategy. Once the window holds MinSelectSize elements
// or fewer it is sorted and indexed directly.
//
// A pivot cache can be passed to Select to remember, level by level, where
// earlier calls placed their pivots. Later queries against the same slice
// skip those partitions. The cache is only valid while the slice is modified
// by Select alone; reset it with ResetPivotCache after any other change.
//
// Neither the slice nor the cache is synchronized. Concurrent queries must use
// their own copies, as the orchestration layer does.
package selection
