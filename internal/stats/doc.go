// Package stats computes percentiles with the quickselect of package
// selection, following the nine sample quantile definitions of Hyndman and
// Fan (1996) plus the legacy definition p(n+1).
//
// A Percentile keeps a NaN-free copy of its data set and a pivot cache, so a
// series of quantiles over the same data reuses earlier partitions.
package stats
