// Package dd implements the extended precision ("double-double") arithmetic
// used to generate the interpolation tables of the transcendental functions.
//
// A value is carried as a Pair whose Hi part holds the significant bits and
// whose Lo part holds the rounding remainder, so that the represented number is
// Hi + Lo. After a Resplit, Hi has its low 30 mantissa bits cleared, which lets
// products of two Hi parts be computed exactly in float64.
//
// Every function in this package is a pure function over values; nothing is
// allocated and the only package state is a pair of immutable lookup tables.
//
// Products that feed an addition are wrapped in an explicit float64 conversion.
// Without it the compiler is allowed to fuse the multiply and add (arm64,
// ppc64le, s390x), which changes the rounding sequence the tables depend on.
package dd
