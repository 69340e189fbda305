package models

// Family identifies a filter design procedure
type Family string

const (
	FamilyButterworth Family = "butterworth"
	FamilyChebyshevI  Family = "chebyshev1"
	FamilyChebyshevII Family = "chebyshev2"
)

// Families lists every supported family in display order
var Families = []Family{FamilyButterworth, FamilyChebyshevI, FamilyChebyshevII}

// Label returns the human-readable family name
func (f Family) Label() string {
	switch f {
	case FamilyButterworth:
		return "Butterworth"
	case FamilyChebyshevI:
		return "Chebyshev - I"
	case FamilyChebyshevII:
		return "Chebyshev - II"
	default:
		return string(f)
	}
}

// Valid reports whether f is a known family
func (f Family) Valid() bool {
	switch f {
	case FamilyButterworth, FamilyChebyshevI, FamilyChebyshevII:
		return true
	}
	return false
}

// TriggerSource names the control the user edited last
type TriggerSource string

const (
	TriggerInitial      TriggerSource = "initial"
	TriggerFamily       TriggerSource = "family"
	TriggerOrder        TriggerSource = "order"
	TriggerCutoffSlider TriggerSource = "cutoff-slider"
	TriggerCutoffInput  TriggerSource = "cutoff-input"
	TriggerRipple       TriggerSource = "ripple"
	TriggerAttenuation  TriggerSource = "attenuation"
)

// FilterSpec holds the tunable design parameters. Ripple is only read for
// Chebyshev I and Attenuation only for Chebyshev II.
type FilterSpec struct {
	Family      Family  `json:"family"`
	Order       int     `json:"order"`
	Cutoff      float64 `json:"cutoff"`
	Ripple      float64 `json:"ripple"`
	Attenuation float64 `json:"attenuation"`
}

// CutoffInputs carries both cutoff widgets, which display the same value
type CutoffInputs struct {
	Slider float64 `json:"slider"`
	Box    float64 `json:"box"`
}

// Visibility says which auxiliary parameter controls should be shown
type Visibility struct {
	ShowRipple      bool `json:"show_ripple" doc:"Whether the ripple control is visible"`
	ShowAttenuation bool `json:"show_attenuation" doc:"Whether the attenuation control is visible"`
}

// Section is one second-order stage of the filter cascade
type Section struct {
	B0 float64 `json:"b0"`
	B1 float64 `json:"b1"`
	B2 float64 `json:"b2"`
	A1 float64 `json:"a1"`
	A2 float64 `json:"a2"`
}

// Coefficients describes the designed filter both as a transfer function
// and as a cascade of sections
type Coefficients struct {
	B        []float64 `json:"b" doc:"Numerator polynomial in z^-1"`
	A        []float64 `json:"a" doc:"Denominator polynomial in z^-1, a[0] is 1"`
	Sections []Section `json:"sections" doc:"Second-order sections, leading numerator coefficient 1"`
	Gain     float64   `json:"gain" doc:"Overall gain applied ahead of the sections"`
}

// ParameterRange describes the bounds and default of a numeric control
type ParameterRange struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Step    float64 `json:"step,omitempty"`
	Default float64 `json:"default"`
}

// Widget ranges and defaults of the design page
var (
	OrderRange       = ParameterRange{Min: 0, Max: 6, Step: 1, Default: 2}
	CutoffRange      = ParameterRange{Min: 0, Max: 1, Default: 0.5}
	RippleRange      = ParameterRange{Min: 1, Max: 5, Default: 1}
	AttenuationRange = ParameterRange{Min: 10, Max: 90, Default: 10}
)
