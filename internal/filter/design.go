package filter

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"

	"github.com/cwbudde/algo-dsp/dsp/filter/biquad"
	"github.com/cwbudde/algo-dsp/dsp/filter/design/pass"
)

// MaxOrder bounds the orders this package will design. Higher orders are
// numerically fragile in transfer-function form.
const MaxOrder = 24

// conjugateTol is the imaginary magnitude below which a root is treated as
// real when grouping sections.
const conjugateTol = 1e-10

// Design is a digital lowpass filter in zero/pole/gain form.
type Design struct {
	Zeros []complex128
	Poles []complex128
	Gain  float64
}

// TransferFunction is H(z) = B(z^-1) / A(z^-1) with A[0] == 1.
type TransferFunction struct {
	B []float64
	A []float64
}

// Butterworth designs an order-n Butterworth lowpass with -3 dB at cutoff.
// The cascade comes from the RBJ sections of pass.ButterworthLP, run at a
// unit sample rate so the cutoff in Hz is half the normalized cutoff.
func Butterworth(order int, cutoff float64) (*Design, error) {
	if err := validate(order, cutoff); err != nil {
		return nil, err
	}
	if order == 0 {
		return &Design{Gain: 1}, nil
	}
	return fromSections(pass.ButterworthLP(cutoff/2, order, 1)), nil
}

// ChebyshevI designs an order-n Chebyshev Type I lowpass with rippleDB of
// equiripple in the passband. The response is -rippleDB at cutoff.
func ChebyshevI(order int, rippleDB, cutoff float64) (*Design, error) {
	if err := validate(order, cutoff); err != nil {
		return nil, err
	}
	if !positiveFinite(rippleDB) {
		return nil, fmt.Errorf("%w (got %g)", ErrInvalidRipple, rippleDB)
	}
	return digitize(chebyshev1Prototype(order, rippleDB), cutoff), nil
}

// ChebyshevII designs an order-n Chebyshev Type II lowpass whose stopband
// starts at cutoff and stays at least attenuationDB down.
func ChebyshevII(order int, attenuationDB, cutoff float64) (*Design, error) {
	if err := validate(order, cutoff); err != nil {
		return nil, err
	}
	if !positiveFinite(attenuationDB) {
		return nil, fmt.Errorf("%w (got %g)", ErrInvalidAttenuation, attenuationDB)
	}
	return digitize(chebyshev2Prototype(order, attenuationDB), cutoff), nil
}

func validate(order int, cutoff float64) error {
	if order < 0 || order > MaxOrder {
		return fmt.Errorf("%w (got %d)", ErrInvalidOrder, order)
	}
	if math.IsNaN(cutoff) || cutoff <= 0 || cutoff >= 1 {
		return fmt.Errorf("%w (got %g)", ErrInvalidCutoff, cutoff)
	}
	return nil
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

func digitize(proto zpk, cutoff float64) *Design {
	d := bilinear(lowpassToLowpass(proto, prewarp(cutoff)))
	return &Design{Zeros: d.zeros, Poles: d.poles, Gain: d.gain}
}

// fromSections collects the roots of a biquad cascade into one design. A
// section with B2 = A2 = 0 is first-order and contributes a single root to
// each side.
func fromSections(sections []biquad.Coefficients) *Design {
	d := &Design{Gain: 1}
	for i := range sections {
		c := &sections[i]
		d.Gain *= c.B0
		if c.B2 == 0 && c.A2 == 0 {
			d.Zeros = append(d.Zeros, complex(-c.B1/c.B0, 0))
			d.Poles = append(d.Poles, complex(-c.A1, 0))
			continue
		}
		pz := c.PoleZeroPair()
		d.Zeros = append(d.Zeros, pz.Zeros[:]...)
		d.Poles = append(d.Poles, pz.Poles[:]...)
	}
	return d
}

// Order is the number of poles.
func (d *Design) Order() int {
	return len(d.Poles)
}

// TransferFunction expands the design into numerator and denominator
// polynomials in z^-1.
func (d *Design) TransferFunction() TransferFunction {
	b := realPoly(d.Zeros)
	for i := range b {
		b[i] *= d.Gain
	}
	return TransferFunction{B: b, A: realPoly(d.Poles)}
}

// Sections groups the design into second-order sections. Conjugate pairs
// share a section, leftover real roots are paired up, and for odd orders
// the last section is first-order (B2 = A2 = 0). Sections have unity leading
// numerator coefficient, the overall gain is returned separately.
func (d *Design) Sections() ([]biquad.Coefficients, float64) {
	num := quadraticFactors(d.Zeros)
	den := quadraticFactors(d.Poles)

	n := max(len(num), len(den))
	sections := make([]biquad.Coefficients, n)
	for i := range sections {
		b := [3]float64{1, 0, 0}
		a := [3]float64{1, 0, 0}
		if i < len(num) {
			b = num[i]
		}
		if i < len(den) {
			a = den[i]
		}
		sections[i] = biquad.Coefficients{B0: b[0], B1: b[1], B2: b[2], A1: a[1], A2: a[2]}
	}
	return sections, d.Gain
}

// Chain builds a biquad cascade that realizes the design.
func (d *Design) Chain() *biquad.Chain {
	sections, gain := d.Sections()
	return biquad.NewChain(sections, biquad.WithGain(gain))
}

// quadraticFactors turns roots into real polynomials in z^-1 with at most
// two roots each. Conjugate pairs come first, ordered by distance from the
// origin, then pairs of real roots; an odd real root always lands in the
// last factor so numerator and denominator first-order terms line up.
func quadraticFactors(roots []complex128) [][3]float64 {
	var pairs, reals []complex128
	for _, r := range roots {
		switch {
		case math.Abs(imag(r)) <= conjugateTol*math.Max(1, cmplx.Abs(r)):
			reals = append(reals, complex(real(r), 0))
		case imag(r) > 0:
			pairs = append(pairs, r)
		}
	}
	sort.Slice(pairs, func(i, j int) bool { return cmplx.Abs(pairs[i]) < cmplx.Abs(pairs[j]) })
	sort.Slice(reals, func(i, j int) bool { return math.Abs(real(reals[i])) < math.Abs(real(reals[j])) })

	out := make([][3]float64, 0, len(pairs)+(len(reals)+1)/2)
	for _, r := range pairs {
		m := cmplx.Abs(r)
		out = append(out, [3]float64{1, -2 * real(r), m * m})
	}
	for i := 0; i+1 < len(reals); i += 2 {
		r1, r2 := real(reals[i]), real(reals[i+1])
		out = append(out, [3]float64{1, -(r1 + r2), r1 * r2})
	}
	if len(reals)%2 != 0 {
		out = append(out, [3]float64{1, -real(reals[len(reals)-1]), 0})
	}
	return out
}
