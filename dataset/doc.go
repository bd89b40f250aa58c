// Package dataset holds the points being clustered.
//
// A Dataset is a structure-of-arrays: one flat, dimension-strided value
// slice, plus a cluster label per point. Feature values are immutable once
// appended; labels are the only state the clustering engine mutates.
package dataset
