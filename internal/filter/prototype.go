package filter

import (
	"math"
	"math/cmplx"
)

// zpk is a transfer function in zero/pole/gain form. It is used for both
// s-plane prototypes and z-plane designs.
type zpk struct {
	zeros []complex128
	poles []complex128
	gain  float64
}

// prototypeAngles returns pi*m/(2n) for m = -n+1, -n+3, ..., n-1.
func prototypeAngles(n int) []float64 {
	out := make([]float64, 0, n)
	for m := -n + 1; m < n; m += 2 {
		out = append(out, math.Pi*float64(m)/float64(2*n))
	}
	return out
}

// chebyshev1Prototype returns the Type I prototype with rippleDB of
// passband ripple. For even n the gain is lowered so the passband peaks
// reach 0 dB and DC sits at -rippleDB.
func chebyshev1Prototype(n int, rippleDB float64) zpk {
	if n == 0 {
		return zpk{gain: math.Pow(10, -rippleDB/20)}
	}

	eps := math.Sqrt(math.Pow(10, 0.1*rippleDB) - 1)
	mu := math.Asinh(1/eps) / float64(n)

	p := make([]complex128, 0, n)
	for _, theta := range prototypeAngles(n) {
		p = append(p, -cmplx.Sinh(complex(mu, theta)))
	}

	k := real(prodNeg(p))
	if n%2 == 0 {
		k /= math.Sqrt(1 + eps*eps)
	}
	return zpk{poles: p, gain: k}
}

// chebyshev2Prototype returns the Type II (inverse Chebyshev) prototype with
// stopband edge at 1 rad/s and attenuationDB of minimum stopband
// suppression.
func chebyshev2Prototype(n int, attenuationDB float64) zpk {
	if n == 0 {
		return zpk{gain: 1}
	}

	de := 1 / math.Sqrt(math.Pow(10, 0.1*attenuationDB)-1)
	mu := math.Asinh(1/de) / float64(n)

	// Zeros sit on the imaginary axis at 1/sin(theta). The m == 0 term of an
	// odd order is an infinite zero and is skipped.
	z := make([]complex128, 0, n)
	for m := -n + 1; m < n; m += 2 {
		if m == 0 {
			continue
		}
		z = append(z, complex(0, 1/math.Sin(math.Pi*float64(m)/float64(2*n))))
	}

	p := make([]complex128, 0, n)
	for _, theta := range prototypeAngles(n) {
		b := -cmplx.Exp(complex(0, theta))
		warped := complex(math.Sinh(mu)*real(b), math.Cosh(mu)*imag(b))
		p = append(p, 1/warped)
	}

	k := real(prodNeg(p) / prodNeg(z))
	return zpk{zeros: z, poles: p, gain: k}
}

// prodNeg returns the product of -r over all roots, 1 for none.
func prodNeg(roots []complex128) complex128 {
	out := complex(1, 0)
	for _, r := range roots {
		out *= -r
	}
	return out
}
