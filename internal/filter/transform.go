package filter

import (
	"math"
)

// bilinearRate is the sampling rate the designs are carried out at. With
// fs = 2 a normalized cutoff maps directly onto the bilinear pre-warp.
const bilinearRate = 2.0

// prewarp maps a normalized digital cutoff (1 = Nyquist) to the analog
// frequency that lands on it after the bilinear transform.
func prewarp(cutoff float64) float64 {
	return 2 * bilinearRate * math.Tan(math.Pi*cutoff/bilinearRate)
}

// lowpassToLowpass scales a unit-cutoff prototype to cutoff wo (rad/s).
func lowpassToLowpass(a zpk, wo float64) zpk {
	degree := len(a.poles) - len(a.zeros)
	w := complex(wo, 0)

	out := zpk{
		zeros: make([]complex128, len(a.zeros)),
		poles: make([]complex128, len(a.poles)),
		gain:  a.gain * math.Pow(wo, float64(degree)),
	}
	for i, z := range a.zeros {
		out.zeros[i] = w * z
	}
	for i, p := range a.poles {
		out.poles[i] = w * p
	}
	return out
}

// bilinear maps an analog zpk onto the z-plane with s = 2fs(z-1)/(z+1).
// Zeros at infinity land on z = -1.
func bilinear(a zpk) zpk {
	fs2 := complex(2*bilinearRate, 0)
	degree := len(a.poles) - len(a.zeros)

	out := zpk{
		zeros: make([]complex128, 0, len(a.poles)),
		poles: make([]complex128, len(a.poles)),
	}
	num := complex(1, 0)
	for _, z := range a.zeros {
		out.zeros = append(out.zeros, (fs2+z)/(fs2-z))
		num *= fs2 - z
	}
	for range degree {
		out.zeros = append(out.zeros, -1)
	}

	den := complex(1, 0)
	for i, p := range a.poles {
		out.poles[i] = (fs2 + p) / (fs2 - p)
		den *= fs2 - p
	}

	out.gain = a.gain * real(num/den)
	return out
}

// poly expands prod(x - r) into coefficients ordered from the highest
// power down. The result always has len(roots)+1 entries with a leading 1.
func poly(roots []complex128) []complex128 {
	c := make([]complex128, 1, len(roots)+1)
	c[0] = 1
	for _, r := range roots {
		c = append(c, 0)
		for j := len(c) - 1; j > 0; j-- {
			c[j] -= r * c[j-1]
		}
	}
	return c
}

// realPoly expands roots that come in conjugate pairs; imaginary residue is
// rounding noise and dropped.
func realPoly(roots []complex128) []float64 {
	c := poly(roots)
	out := make([]float64, len(c))
	for i, v := range c {
		out[i] = real(v)
	}
	return out
}
