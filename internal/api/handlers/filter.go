package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/RMahshie/filterscope/internal/designer"
	"github.com/RMahshie/filterscope/internal/filter"
	"github.com/RMahshie/filterscope/internal/render"
	"github.com/RMahshie/filterscope/pkg/models"
)

// ChartRenderer lays out a frequency response as a two-panel chart
type ChartRenderer interface {
	Render(resp models.FrequencyResponse) (*render.Chart, error)
}

// FilterHandler handles filter design and chart requests
type FilterHandler struct {
	designer designer.Service
	renderer ChartRenderer
}

// NewFilterHandler creates a new filter handler
func NewFilterHandler(designerSvc designer.Service, renderer ChartRenderer) *FilterHandler {
	return &FilterHandler{
		designer: designerSvc,
		renderer: renderer,
	}
}

// ListFamilies returns the selectable families and the widget ranges
func (h *FilterHandler) ListFamilies(ctx context.Context, _ *struct{}) (*models.FamiliesResponse, error) {
	families := make([]models.FamilyInfo, len(models.Families))
	for i, f := range models.Families {
		families[i] = models.FamilyInfo{
			ID:         f,
			Label:      f.Label(),
			Visibility: designer.VisibilityFor(f),
		}
	}

	return &models.FamiliesResponse{
		Body: models.FamiliesResponseBody{
			Families:    families,
			Order:       models.OrderRange,
			Cutoff:      models.CutoffRange,
			Ripple:      models.RippleRange,
			Attenuation: models.AttenuationRange,
		},
	}, nil
}

// Design runs the filter designer for the current page state
func (h *FilterHandler) Design(ctx context.Context, req *models.DesignRequest) (*models.DesignResponse, error) {
	b := req.Body
	spec := models.FilterSpec{
		Family:      b.Family,
		Order:       b.Order,
		Ripple:      b.Ripple,
		Attenuation: b.Attenuation,
	}
	cutoffs := models.CutoffInputs{Slider: b.CutoffSlider, Box: b.CutoffInput}

	res, err := h.designer.Design(ctx, spec, cutoffs, b.Trigger)
	if err != nil {
		return nil, designError(err)
	}

	return &models.DesignResponse{
		Body: models.DesignResponseBody{
			Spec:         res.Spec,
			Cutoff:       res.Cutoff,
			Visibility:   res.Visibility,
			Response:     res.Response,
			Coefficients: res.Coefficients,
		},
	}, nil
}

// Render draws a previously designed response as gain and phase SVG panels
func (h *FilterHandler) Render(ctx context.Context, req *models.RenderRequest) (*models.RenderResponse, error) {
	ch, err := h.renderer.Render(req.Body.Response)
	if err != nil {
		if errors.Is(err, render.ErrTooFewSamples) || errors.Is(err, render.ErrNonFiniteSample) {
			return nil, huma.Error422UnprocessableEntity(err.Error())
		}
		return nil, huma.Error500InternalServerError("Failed to render chart", err)
	}

	gain, phase, err := ch.SVG()
	if err != nil {
		log.Error().Err(err).Int("samples", len(req.Body.Response)).Msg("SVG rendering failed")
		return nil, huma.Error500InternalServerError("Failed to render chart", err)
	}

	return &models.RenderResponse{
		Body: models.RenderResponseBody{
			GainSVG:  gain,
			PhaseSVG: phase,
		},
	}, nil
}

// ChartPNG serves the stacked chart for a filter given as query parameters.
// Missing parameters take the page defaults.
func (h *FilterHandler) ChartPNG(w http.ResponseWriter, r *http.Request) {
	spec, cutoff, err := chartQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := h.designer.Design(r.Context(), spec, models.CutoffInputs{Slider: cutoff, Box: cutoff}, models.TriggerInitial)
	if err != nil {
		if errors.Is(err, filter.ErrInvalidParameters) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		http.Error(w, "Failed to design filter", http.StatusInternalServerError)
		return
	}

	ch, err := h.renderer.Render(res.Response)
	if err != nil {
		if errors.Is(err, render.ErrNonFiniteSample) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		http.Error(w, "Failed to render chart", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := ch.PNG(&buf); err != nil {
		log.Error().Err(err).Str("request_id", middleware.GetReqID(r.Context())).Msg("PNG rendering failed")
		http.Error(w, "Failed to render chart", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = w.Write(buf.Bytes())
}

// designError maps designer failures onto API errors
func designError(err error) error {
	switch {
	case errors.Is(err, filter.ErrInvalidParameters):
		return huma.Error422UnprocessableEntity(err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return huma.Error503ServiceUnavailable("Request canceled", err)
	default:
		return huma.Error500InternalServerError("Failed to design filter", err)
	}
}

func chartQuery(r *http.Request) (models.FilterSpec, float64, error) {
	q := r.URL.Query()

	spec := models.FilterSpec{Family: models.FamilyButterworth}
	if f := q.Get("family"); f != "" {
		spec.Family = models.Family(f)
	}

	var err error
	if spec.Order, err = intParam(q.Get("order"), int(models.OrderRange.Default)); err != nil {
		return spec, 0, err
	}
	cutoff, err := floatParam(q.Get("cutoff"), models.CutoffRange.Default)
	if err != nil {
		return spec, 0, err
	}
	if spec.Ripple, err = floatParam(q.Get("ripple"), models.RippleRange.Default); err != nil {
		return spec, 0, err
	}
	if spec.Attenuation, err = floatParam(q.Get("attenuation"), models.AttenuationRange.Default); err != nil {
		return spec, 0, err
	}
	return spec, cutoff, nil
}

func intParam(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q", raw)
	}
	return v, nil
}

func floatParam(raw string, def float64) (float64, error) {
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", raw)
	}
	return v, nil
}
