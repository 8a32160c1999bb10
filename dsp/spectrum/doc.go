// Package spectrum provides helpers for reading full complex DFT outputs:
// bin magnitudes, peak search, and the signed frequency of a bin.
//
// The package does not compute transforms itself; callers hand it the bins
// produced by an FFT plan.
package spectrum
