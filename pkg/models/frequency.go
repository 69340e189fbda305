package models

// FrequencySample represents a single point of a filter's frequency response
type FrequencySample struct {
	Frequency float64 `json:"frequency" doc:"Normalized angular frequency in rad/sample"`
	Gain      float64 `json:"gain" doc:"Magnitude in dB"`
	Phase     float64 `json:"phase" doc:"Phase in radians"`
}

// FrequencyResponse is an ordered run of samples from 0 towards pi
type FrequencyResponse []FrequencySample

// Frequencies returns the frequency column
func (r FrequencyResponse) Frequencies() []float64 {
	out := make([]float64, len(r))
	for i, s := range r {
		out[i] = s.Frequency
	}
	return out
}

// Gains returns the gain column
func (r FrequencyResponse) Gains() []float64 {
	out := make([]float64, len(r))
	for i, s := range r {
		out[i] = s.Gain
	}
	return out
}

// Phases returns the phase column
func (r FrequencyResponse) Phases() []float64 {
	out := make([]float64, len(r))
	for i, s := range r {
		out[i] = s.Phase
	}
	return out
}
