package models

import (
	"time"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Body struct {
		Status  string    `json:"status" example:"healthy" doc:"Service health status"`
		Version string    `json:"version" example:"1.0.0" doc:"API version"`
		Time    time.Time `json:"time" doc:"Current server time"`
	}
}

// DesignRequestBody carries every control on the design page plus the
// control that changed
type DesignRequestBody struct {
	Family       Family        `json:"family" enum:"butterworth,chebyshev1,chebyshev2" doc:"Filter family"`
	Order        int           `json:"order" minimum:"0" maximum:"6" doc:"Filter order"`
	CutoffSlider float64       `json:"cutoff_slider" minimum:"0" maximum:"1" doc:"Cutoff slider value, 1 is Nyquist"`
	CutoffInput  float64       `json:"cutoff_input" minimum:"0" maximum:"1" doc:"Cutoff numeric box value, 1 is Nyquist"`
	Ripple       float64       `json:"ripple" minimum:"1" maximum:"5" doc:"Passband ripple in dB (Chebyshev I)"`
	Attenuation  float64       `json:"attenuation" minimum:"10" maximum:"90" doc:"Stopband attenuation in dB (Chebyshev II)"`
	Trigger      TriggerSource `json:"trigger" enum:"initial,family,order,cutoff-slider,cutoff-input,ripple,attenuation" doc:"Control the user edited last"`
}

// DesignRequest represents a request to design a filter
type DesignRequest struct {
	Body DesignRequestBody
}

// DesignResponseBody is the body of the design response
type DesignResponseBody struct {
	Spec         FilterSpec        `json:"spec" doc:"Parameters the filter was designed with"`
	Cutoff       float64           `json:"cutoff" doc:"Reconciled cutoff to show on both cutoff controls"`
	Visibility   Visibility        `json:"visibility" doc:"Which auxiliary controls to show"`
	Response     FrequencyResponse `json:"response" doc:"Frequency response samples"`
	Coefficients Coefficients      `json:"coefficients" doc:"Designed filter coefficients"`
}

// DesignResponse represents the result of designing a filter
type DesignResponse struct {
	Body DesignResponseBody
}

// RenderRequestBody carries a stored design result back for drawing
type RenderRequestBody struct {
	Response FrequencyResponse `json:"response" minItems:"2" doc:"Frequency response samples to plot"`
}

// RenderRequest represents a request to chart a frequency response
type RenderRequest struct {
	Body RenderRequestBody
}

// RenderResponseBody is the body of the render response
type RenderResponseBody struct {
	GainSVG  string `json:"gain_svg" doc:"Gain panel as an SVG document"`
	PhaseSVG string `json:"phase_svg" doc:"Phase panel as an SVG document"`
}

// RenderResponse represents a rendered two-panel chart
type RenderResponse struct {
	Body RenderResponseBody
}

// FamilyInfo describes one selectable family
type FamilyInfo struct {
	ID         Family     `json:"id" doc:"Family identifier"`
	Label      string     `json:"label" doc:"Display name"`
	Visibility Visibility `json:"visibility" doc:"Controls shown for this family"`
}

// FamiliesResponseBody is the body of the families response
type FamiliesResponseBody struct {
	Families    []FamilyInfo   `json:"families"`
	Order       ParameterRange `json:"order"`
	Cutoff      ParameterRange `json:"cutoff"`
	Ripple      ParameterRange `json:"ripple"`
	Attenuation ParameterRange `json:"attenuation"`
}

// FamiliesResponse lists the families and widget ranges
type FamiliesResponse struct {
	Body FamiliesResponseBody
}
