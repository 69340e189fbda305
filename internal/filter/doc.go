// Package filter designs digital lowpass IIR filters from the classic analog
// prototypes.
//
// Every design follows the same path:
//
//  1. analog prototype poles/zeros/gain normalized to 1 rad/s
//     (Butterworth, Chebyshev Type I, Chebyshev Type II),
//  2. lowpass-to-lowpass scaling to the pre-warped cutoff,
//  3. bilinear transform to the z-plane,
//  4. expansion to transfer-function polynomials or grouping into
//     second-order sections.
//
// Cutoff frequencies are normalized so that 1 corresponds to Nyquist.
// For Butterworth and Chebyshev I the cutoff is the passband edge
// (-3 dB and -ripple dB respectively); for Chebyshev II it is the stopband
// edge where the response first reaches -attenuation dB.
//
// Parameter validation lives here. Callers get a wrapped
// [ErrInvalidParameters] for anything that cannot be designed.
package filter
