// Package response evaluates the frequency response of a digital filter on
// an evenly spaced grid over the upper half of the unit circle.
package response

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-dsp/dsp/filter/biquad"
	algofft "github.com/cwbudde/algo-fft"

	"github.com/RMahshie/filterscope/internal/filter"
	"github.com/RMahshie/filterscope/pkg/models"
)

// DefaultPoints is the number of response samples when none is configured.
const DefaultPoints = 512

// GainFloorDB replaces -Inf gains, which occur when a zero of the filter
// falls exactly on a grid point.
const GainFloorDB = -400.0

// ErrInvalidPoints is returned for a non-positive sample count.
var ErrInvalidPoints = errors.New("response: number of points must be positive")

// ErrNonFinite is returned when the response blows up at some grid
// frequency, typically because a pole rounded onto the unit circle.
var ErrNonFinite = fmt.Errorf("%w: frequency response is not finite", filter.ErrInvalidParameters)

// Grid returns w_k = pi*k/n for k = 0..n-1.
func Grid(n int) []float64 {
	w := make([]float64, n)
	for k := range w {
		w[k] = math.Pi * float64(k) / float64(n)
	}
	return w
}

// Compute evaluates tf at the n grid frequencies. Both polynomials are
// zero-padded to 2n and transformed, so bin k of the FFT lands on w_k.
func Compute(tf filter.TransferFunction, n int) (models.FrequencyResponse, error) {
	if n <= 0 {
		return nil, ErrInvalidPoints
	}
	if len(tf.A) == 0 || len(tf.B) == 0 {
		return nil, fmt.Errorf("response: empty transfer function")
	}

	size := 2 * n
	if len(tf.B) > size || len(tf.A) > size {
		return direct(tf, n)
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("response: fft plan: %w", err)
	}

	num, err := spectrum(plan, tf.B, size)
	if err != nil {
		return nil, err
	}
	den, err := spectrum(plan, tf.A, size)
	if err != nil {
		return nil, err
	}

	w := Grid(n)
	out := make(models.FrequencyResponse, n)
	for k := range out {
		if out[k], err = sample(w[k], num[k]/den[k]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func spectrum(plan *algofft.Plan[complex128], coeffs []float64, size int) ([]complex128, error) {
	src := make([]complex128, size)
	for i, c := range coeffs {
		src[i] = complex(c, 0)
	}
	dst := make([]complex128, size)
	if err := plan.Forward(dst, src); err != nil {
		return nil, fmt.Errorf("response: fft: %w", err)
	}
	return dst, nil
}

// direct evaluates the polynomials with Horner's rule. Only used when a
// polynomial is longer than the FFT would be.
func direct(tf filter.TransferFunction, n int) (models.FrequencyResponse, error) {
	w := Grid(n)
	out := make(models.FrequencyResponse, n)
	for k := range out {
		zinv := cmplx.Exp(complex(0, -w[k]))
		var err error
		if out[k], err = sample(w[k], horner(tf.B, zinv)/horner(tf.A, zinv)); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func horner(c []float64, zinv complex128) complex128 {
	acc := complex(0, 0)
	for i := len(c) - 1; i >= 0; i-- {
		acc = acc*zinv + complex(c[i], 0)
	}
	return acc
}

// FromChain evaluates a biquad cascade on the same grid as Compute.
func FromChain(chain *biquad.Chain, n int) (models.FrequencyResponse, error) {
	if n <= 0 {
		return nil, ErrInvalidPoints
	}
	w := Grid(n)
	out := make(models.FrequencyResponse, n)
	for k := range out {
		// With a sample rate of 2*pi the "Hz" argument is the angular
		// frequency in rad/sample.
		var err error
		if out[k], err = sample(w[k], chain.Response(w[k], 2*math.Pi)); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func sample(w float64, h complex128) (models.FrequencySample, error) {
	if cmplx.IsInf(h) || cmplx.IsNaN(h) {
		return models.FrequencySample{}, fmt.Errorf("%w (w=%g)", ErrNonFinite, w)
	}
	gain := 20 * math.Log10(cmplx.Abs(h))
	if math.IsInf(gain, -1) || gain < GainFloorDB {
		gain = GainFloorDB
	}
	return models.FrequencySample{
		Frequency: w,
		Gain:      gain,
		Phase:     math.Atan2(imag(h), real(h)),
	}, nil
}
