package designer

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/RMahshie/filterscope/internal/filter"
	"github.com/RMahshie/filterscope/internal/response"
	"github.com/RMahshie/filterscope/pkg/models"
)

// ErrUnknownFamily is returned for a family outside models.Families
var ErrUnknownFamily = fmt.Errorf("%w: unknown filter family", filter.ErrInvalidParameters)

// ErrOutOfRange is returned when a parameter the family reads lies outside
// the range of its control
var ErrOutOfRange = fmt.Errorf("%w: parameter out of range", filter.ErrInvalidParameters)

// ErrSectionMismatch means the second-order sections handed out with a
// design do not reproduce its transfer function
var ErrSectionMismatch = errors.New("second-order sections diverge from the transfer function")

// The cascade and the expanded polynomials must agree within
// sectionToleranceDB wherever both are above sectionFloorDB. Below the floor
// both are dominated by rounding.
const (
	sectionToleranceDB = 0.01
	sectionFloorDB     = -100.0
)

// Result is everything the page needs after one parameter change
type Result struct {
	Spec         models.FilterSpec
	Cutoff       float64
	Visibility   models.Visibility
	Response     models.FrequencyResponse
	Coefficients models.Coefficients
}

// Service turns page parameters into a designed filter and its response
type Service interface {
	Design(ctx context.Context, spec models.FilterSpec, cutoffs models.CutoffInputs, trigger models.TriggerSource) (*Result, error)
}

type service struct {
	points int
	logger zerolog.Logger
}

// Option configures a designer service
type Option func(*service)

// WithLogger sets the logger design events are written to. The global
// zerolog logger is used otherwise.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *service) {
		s.logger = logger
	}
}

// NewService creates a designer that samples responses at the given number
// of points. A non-positive count selects response.DefaultPoints.
func NewService(points int, opts ...Option) Service {
	if points <= 0 {
		points = response.DefaultPoints
	}
	s := &service{points: points, logger: log.Logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ReconcileCutoff picks the single cutoff value both widgets should show.
// The slider wins only when it triggered the update, otherwise the numeric
// box does. The result is written back to both widgets without counting as
// a new edit, so the two never chase each other.
func ReconcileCutoff(cutoffs models.CutoffInputs, trigger models.TriggerSource) float64 {
	if trigger == models.TriggerCutoffSlider {
		return cutoffs.Slider
	}
	return cutoffs.Box
}

// VisibilityFor derives which auxiliary controls apply to a family
func VisibilityFor(family models.Family) models.Visibility {
	return models.Visibility{
		ShowRipple:      family == models.FamilyChebyshevI,
		ShowAttenuation: family == models.FamilyChebyshevII,
	}
}

// Design reconciles the cutoff, runs the family's design procedure and
// samples the frequency response. spec.Cutoff is ignored in favor of the
// reconciled value. The response of the section cascade is checked against
// the transfer function before anything is returned.
func (s *service) Design(ctx context.Context, spec models.FilterSpec, cutoffs models.CutoffInputs, trigger models.TriggerSource) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	spec.Cutoff = ReconcileCutoff(cutoffs, trigger)

	s.logger.Debug().
		Str("family", string(spec.Family)).
		Int("order", spec.Order).
		Float64("cutoff", spec.Cutoff).
		Str("trigger", string(trigger)).
		Msg("Designing filter")

	d, err := design(spec)
	if err != nil {
		s.logger.Warn().Err(err).Str("family", string(spec.Family)).Int("order", spec.Order).Float64("cutoff", spec.Cutoff).Msg("Filter design rejected")
		return nil, fmt.Errorf("design %s filter: %w", spec.Family, err)
	}

	tf := d.TransferFunction()
	resp, err := response.Compute(tf, s.points)
	if err != nil {
		return nil, fmt.Errorf("compute frequency response: %w", err)
	}

	cascade, err := response.FromChain(d.Chain(), s.points)
	if err != nil {
		return nil, fmt.Errorf("compute section response: %w", err)
	}
	if err := checkSections(resp, cascade); err != nil {
		s.logger.Error().Err(err).Str("family", string(spec.Family)).Int("order", spec.Order).Float64("cutoff", spec.Cutoff).Msg("Section cascade rejected")
		return nil, fmt.Errorf("design %s filter: %w", spec.Family, err)
	}

	return &Result{
		Spec:         spec,
		Cutoff:       spec.Cutoff,
		Visibility:   VisibilityFor(spec.Family),
		Response:     resp,
		Coefficients: coefficients(d, tf),
	}, nil
}

func design(spec models.FilterSpec) (*filter.Design, error) {
	if err := checkRanges(spec); err != nil {
		return nil, err
	}

	switch spec.Family {
	case models.FamilyButterworth:
		return filter.Butterworth(spec.Order, spec.Cutoff)
	case models.FamilyChebyshevI:
		return filter.ChebyshevI(spec.Order, spec.Ripple, spec.Cutoff)
	case models.FamilyChebyshevII:
		return filter.ChebyshevII(spec.Order, spec.Attenuation, spec.Cutoff)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFamily, spec.Family)
	}
}

// checkRanges holds the order, and whichever of ripple and attenuation the
// family reads, to the ranges of the page controls.
func checkRanges(spec models.FilterSpec) error {
	if !within(float64(spec.Order), models.OrderRange) {
		return fmt.Errorf("%w: order %d not in [%g, %g]", ErrOutOfRange, spec.Order, models.OrderRange.Min, models.OrderRange.Max)
	}
	switch spec.Family {
	case models.FamilyChebyshevI:
		if !within(spec.Ripple, models.RippleRange) {
			return fmt.Errorf("%w: ripple %g dB not in [%g, %g]", ErrOutOfRange, spec.Ripple, models.RippleRange.Min, models.RippleRange.Max)
		}
	case models.FamilyChebyshevII:
		if !within(spec.Attenuation, models.AttenuationRange) {
			return fmt.Errorf("%w: attenuation %g dB not in [%g, %g]", ErrOutOfRange, spec.Attenuation, models.AttenuationRange.Min, models.AttenuationRange.Max)
		}
	}
	return nil
}

func within(v float64, r models.ParameterRange) bool {
	return v >= r.Min && v <= r.Max
}

// checkSections compares the gain of the transfer function with the gain
// of the section cascade, bin by bin.
func checkSections(tf, cascade models.FrequencyResponse) error {
	if len(tf) != len(cascade) {
		return fmt.Errorf("%w: %d samples against %d", ErrSectionMismatch, len(cascade), len(tf))
	}
	for k := range tf {
		if tf[k].Gain < sectionFloorDB || cascade[k].Gain < sectionFloorDB {
			continue
		}
		if math.Abs(tf[k].Gain-cascade[k].Gain) > sectionToleranceDB {
			return fmt.Errorf("%w: %.4f dB against %.4f dB at w=%.4f",
				ErrSectionMismatch, cascade[k].Gain, tf[k].Gain, tf[k].Frequency)
		}
	}
	return nil
}

func coefficients(d *filter.Design, tf filter.TransferFunction) models.Coefficients {
	sections, gain := d.Sections()
	out := models.Coefficients{
		B:        tf.B,
		A:        tf.A,
		Sections: make([]models.Section, len(sections)),
		Gain:     gain,
	}
	for i, c := range sections {
		out.Sections[i] = models.Section{B0: c.B0, B1: c.B1, B2: c.B2, A1: c.A1, A2: c.A2}
	}
	return out
}
