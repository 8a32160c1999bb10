// Package iir builds and evaluates banks of first-order IIR filters that
// approximate a time-reversed inspiral waveform.
//
// A [Set] is a list of delayed one-pole filters, each with one feedback
// coefficient a1 and one feedforward coefficient b0:
//
//	y[n] = a1*y[n-1] + b0*x[n-delay]
//
// The sum of their impulse responses approximates the waveform played
// backwards, so running data through the bank correlates it with the
// template. [Synthesize] derives a set from the amplitude and unwrapped phase
// of the template, choosing the spacing between filters from the local phase
// curvature so that the phase error stays within a budget epsilon (cycles).
//
// Evaluation:
//
//   - [Set.Response] and [Set.ImpulseResponse] rebuild the time-domain
//     impulse response, truncating each filter once it decays below 1e-13.
//   - [FourierTransform] evaluates one filter's transform at one bin in
//     closed form.
//   - [InnerProduct] sums the transforms of a whole set against a one-sided
//     noise power spectral density to give a normalization figure.
//   - [Set.Spectrum] transforms the impulse response numerically with an FFT
//     plan, for cross-checking the closed form.
//
// Basic usage:
//
//	set, err := iir.Synthesize(amp, phase, iir.Params{Epsilon: 0.02, Alpha: 0.99, Beta: 0.25})
//	if err != nil {
//	    return err
//	}
//	norm, err := iir.InnerProduct(set, psd, iir.WithWorkers(4))
package iir
