// Package fstat computes the F-statistic over a grid of trial frequencies
// from a set of short Fourier transforms (SFTs).
//
// For each trial frequency the phase model (encoded per segment in
// [SkyConstants] together with the spin-down values) locates the signal in
// every SFT. A window of 2*Dterms bins around that location is summed with
// truncated Dirichlet-kernel weights, phase corrected, and accumulated into
// two antenna-pattern weighted sums Fa and Fb. The statistic combines them
// with the antenna-pattern matrix of [AMCoeffs]:
//
//	F = 4/(M*D) * (B|Fa|^2 + A|Fb|^2 - 2C*Re(Fa*conj(Fb)))
//
// Kernel weights use the [lut] table. Fractional offsets below
// [SmallOffset] switch to the analytic small-argument limit of the kernel.
//
// Trial frequencies are independent, so [Compute] can spread them over
// goroutines with [WithWorkers].
package fstat
