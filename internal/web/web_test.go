package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandler(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		wantCode    int
		wantType    string
		wantContent []string
	}{
		{
			name:     "page",
			path:     "/",
			wantCode: http.StatusOK,
			wantType: "text/html; charset=utf-8",
			wantContent: []string{
				`id="family"`, `id="order"`, `id="cutoff-slider"`, `id="cutoff-input"`,
				`id="ripple"`, `id="attenuation"`, `id="chart"`,
				"Chebyshev - I", "Chebyshev - II",
			},
		},
		{
			name:        "script",
			path:        "/static/app.js",
			wantCode:    http.StatusOK,
			wantContent: []string{
				"/api/design", "/api/render", "show_ripple",
				// Queued edits carry the widget values from when they were made.
				"update(request(trigger))",
				"apply(design, body)",
				"pending.cutoff_slider = design.cutoff",
			},
		},
		{
			name:     "missing asset",
			path:     "/static/nope.js",
			wantCode: http.StatusNotFound,
		},
		{
			name:     "unknown page",
			path:     "/elsewhere",
			wantCode: http.StatusNotFound,
		},
	}

	h := Handler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantType != "" {
				assert.Equal(t, tt.wantType, rec.Header().Get("Content-Type"))
			}
			for _, s := range tt.wantContent {
				assert.Contains(t, rec.Body.String(), s)
			}
		})
	}
}
