// Package signal generates deterministic test and demonstration inputs for
// the filter-bank and F-statistic packages: leading-order inspiral chirp
// envelopes, complex tones, seeded complex noise, and short Fourier
// transforms of segmented time series.
package signal
