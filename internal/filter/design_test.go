package filter

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-dsp/dsp/filter/biquad"
	"github.com/cwbudde/algo-dsp/dsp/filter/design/pass"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// evalTF evaluates H(e^jw) directly from the polynomials.
func evalTF(tf TransferFunction, w float64) complex128 {
	zinv := cmplx.Exp(complex(0, -w))
	horner := func(c []float64) complex128 {
		acc := complex(0, 0)
		for i := len(c) - 1; i >= 0; i-- {
			acc = acc*zinv + complex(c[i], 0)
		}
		return acc
	}
	return horner(tf.B) / horner(tf.A)
}

func gainDB(tf TransferFunction, w float64) float64 {
	return 20 * math.Log10(cmplx.Abs(evalTF(tf, w)))
}

func TestButterworth_KnownCoefficients(t *testing.T) {
	// Second-order half-band Butterworth:
	// b = [1 2 1] / (2 + sqrt2), a = [1 0 (2 - sqrt2)/(2 + sqrt2)].
	d, err := Butterworth(2, 0.5)
	require.NoError(t, err)

	tf := d.TransferFunction()
	require.Len(t, tf.B, 3)
	require.Len(t, tf.A, 3)

	b0 := 1 / (2 + math.Sqrt2)
	assert.InDelta(t, b0, tf.B[0], 1e-12)
	assert.InDelta(t, 2*b0, tf.B[1], 1e-12)
	assert.InDelta(t, b0, tf.B[2], 1e-12)
	assert.InDelta(t, 1.0, tf.A[0], 1e-15)
	assert.InDelta(t, 0.0, tf.A[1], 1e-12)
	assert.InDelta(t, (2-math.Sqrt2)/(2+math.Sqrt2), tf.A[2], 1e-12)
}

func TestButterworth_FirstOrderHalfBand(t *testing.T) {
	d, err := Butterworth(1, 0.5)
	require.NoError(t, err)

	tf := d.TransferFunction()
	assert.InDeltaSlice(t, []float64{0.5, 0.5}, tf.B, 1e-12)
	assert.InDeltaSlice(t, []float64{1, 0}, tf.A, 1e-12)
}

func TestButterworth_ThirdOrderHalfBand(t *testing.T) {
	// b = [1 3 3 1] / 6, a = [1 0 1/3 0].
	d, err := Butterworth(3, 0.5)
	require.NoError(t, err)

	tf := d.TransferFunction()
	assert.InDeltaSlice(t, []float64{1.0 / 6, 0.5, 0.5, 1.0 / 6}, tf.B, 1e-12)
	assert.InDeltaSlice(t, []float64{1, 0, 1.0 / 3, 0}, tf.A, 1e-12)
}

func TestButterworth_AgreesWithRBJCascade(t *testing.T) {
	for order := 1; order <= 6; order++ {
		for _, fc := range []float64{0.05, 0.3, 0.5, 0.9} {
			d, err := Butterworth(order, fc)
			require.NoError(t, err)

			ref := biquad.NewChain(pass.ButterworthLP(fc/2, order, 1))
			tf := d.TransferFunction()
			for _, w := range []float64{0, 0.4, 1.1, 2.2, 3.0} {
				want := ref.Response(w, 2*math.Pi)
				got := evalTF(tf, w)
				assert.InDelta(t, real(want), real(got), 1e-9, "order %d fc %g w %g", order, fc, w)
				assert.InDelta(t, imag(want), imag(got), 1e-9, "order %d fc %g w %g", order, fc, w)
			}
		}
	}
}

func TestFromSections_FirstOrderSection(t *testing.T) {
	d := fromSections([]biquad.Coefficients{{B0: 0.25, B1: 0.25, A1: -0.5}})

	assert.Equal(t, []complex128{-1}, d.Zeros)
	assert.Equal(t, []complex128{0.5}, d.Poles)
	assert.InDelta(t, 0.25, d.Gain, 1e-15)
}

func TestButterworth_Minus3dBAtCutoff(t *testing.T) {
	for order := 1; order <= 6; order++ {
		for _, fc := range []float64{0.1, 0.25, 0.5, 0.8} {
			d, err := Butterworth(order, fc)
			require.NoError(t, err)
			tf := d.TransferFunction()

			assert.InDelta(t, 0.0, gainDB(tf, 0), 1e-9, "order %d fc %g DC", order, fc)
			assert.InDelta(t, -10*math.Log10(2), gainDB(tf, math.Pi*fc), 1e-6, "order %d fc %g", order, fc)
		}
	}
}

func TestChebyshevI_PassbandRipple(t *testing.T) {
	const ripple = 3.0
	for order := 1; order <= 6; order++ {
		d, err := ChebyshevI(order, ripple, 0.4)
		require.NoError(t, err)
		tf := d.TransferFunction()

		for w := 0.0; w <= 0.4*math.Pi; w += 0.001 {
			g := gainDB(tf, w)
			assert.LessOrEqual(t, g, 1e-9, "order %d w %g", order, w)
			assert.GreaterOrEqual(t, g, -ripple-1e-9, "order %d w %g", order, w)
		}
		assert.InDelta(t, -ripple, gainDB(tf, 0.4*math.Pi), 1e-6, "order %d edge", order)
	}
}

func TestChebyshevI_EvenOrderDCGain(t *testing.T) {
	d, err := ChebyshevI(4, 3, 0.4)
	require.NoError(t, err)
	assert.InDelta(t, -3.0, gainDB(d.TransferFunction(), 0), 1e-9)

	d, err = ChebyshevI(3, 3, 0.4)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, gainDB(d.TransferFunction(), 0), 1e-9)
}

func TestChebyshevII_StopbandAttenuation(t *testing.T) {
	const atten = 40.0
	for order := 1; order <= 6; order++ {
		d, err := ChebyshevII(order, atten, 0.4)
		require.NoError(t, err)
		tf := d.TransferFunction()

		assert.InDelta(t, 0.0, gainDB(tf, 0), 1e-9, "order %d DC", order)
		for w := 0.4*math.Pi + 1e-6; w < math.Pi; w += 0.001 {
			assert.LessOrEqual(t, gainDB(tf, w), -atten+1e-6, "order %d w %g", order, w)
		}
	}
}

func TestOrderZero(t *testing.T) {
	d, err := Butterworth(0, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 0, d.Order())
	tf := d.TransferFunction()
	assert.Equal(t, []float64{1}, tf.B)
	assert.Equal(t, []float64{1}, tf.A)

	d, err = ChebyshevI(0, 2, 0.5)
	require.NoError(t, err)
	assert.InDelta(t, math.Pow(10, -2.0/20), d.TransferFunction().B[0], 1e-12)

	d, err = ChebyshevII(0, 40, 0.5)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, d.TransferFunction().B[0], 1e-12)
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name string
		fn   func() (*Design, error)
		want error
	}{
		{"negative order", func() (*Design, error) { return Butterworth(-1, 0.5) }, ErrInvalidOrder},
		{"order too high", func() (*Design, error) { return Butterworth(MaxOrder+1, 0.5) }, ErrInvalidOrder},
		{"cutoff zero", func() (*Design, error) { return Butterworth(2, 0) }, ErrInvalidCutoff},
		{"cutoff one", func() (*Design, error) { return ChebyshevI(2, 1, 1) }, ErrInvalidCutoff},
		{"cutoff NaN", func() (*Design, error) { return ChebyshevII(2, 40, math.NaN()) }, ErrInvalidCutoff},
		{"zero ripple", func() (*Design, error) { return ChebyshevI(2, 0, 0.5) }, ErrInvalidRipple},
		{"infinite ripple", func() (*Design, error) { return ChebyshevI(2, math.Inf(1), 0.5) }, ErrInvalidRipple},
		{"negative attenuation", func() (*Design, error) { return ChebyshevII(2, -10, 0.5) }, ErrInvalidAttenuation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := tt.fn()
			assert.Nil(t, d)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, ErrInvalidParameters)
		})
	}
}

func TestPolesInsideUnitCircle(t *testing.T) {
	designs := map[string]func(order int) (*Design, error){
		"butterworth": func(n int) (*Design, error) { return Butterworth(n, 0.3) },
		"chebyshev1":  func(n int) (*Design, error) { return ChebyshevI(n, 1, 0.3) },
		"chebyshev2":  func(n int) (*Design, error) { return ChebyshevII(n, 60, 0.3) },
	}
	for name, fn := range designs {
		for order := 1; order <= 6; order++ {
			d, err := fn(order)
			require.NoError(t, err)
			assert.Equal(t, order, d.Order())
			for _, p := range d.Poles {
				assert.Less(t, cmplx.Abs(p), 1.0, "%s order %d pole %v", name, order, p)
			}
		}
	}
}

func TestSections_MatchTransferFunction(t *testing.T) {
	for order := 0; order <= 6; order++ {
		d, err := ChebyshevII(order, 50, 0.35)
		require.NoError(t, err)

		sections, _ := d.Sections()
		assert.Len(t, sections, (order+1)/2, "order %d", order)

		tf := d.TransferFunction()
		chain := d.Chain()
		for _, w := range []float64{0, 0.2, 0.9, 1.7, 2.5, 3.1} {
			want := evalTF(tf, w)
			got := chain.Response(w, 2*math.Pi)
			assert.InDelta(t, cmplx.Abs(want), cmplx.Abs(got), 1e-9, "order %d w %g", order, w)
		}
	}
}

func TestSections_OddOrderHasFirstOrderSection(t *testing.T) {
	d, err := Butterworth(3, 0.25)
	require.NoError(t, err)

	sections, gain := d.Sections()
	require.Len(t, sections, 2)
	assert.Greater(t, gain, 0.0)

	firstOrder := 0
	for _, s := range sections {
		if s.A2 == 0 && s.B2 == 0 {
			firstOrder++
		}
	}
	assert.Equal(t, 1, firstOrder)
}
