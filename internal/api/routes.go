package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/RMahshie/filterscope/internal/api/handlers"
	"github.com/RMahshie/filterscope/internal/designer"
	"github.com/RMahshie/filterscope/internal/web"
	"github.com/RMahshie/filterscope/pkg/models"
)

// Version is reported by the health endpoint and the OpenAPI document
const Version = "1.0.0"

// NewRouter builds the chi router with middleware, the huma API, and the
// page routes.
func NewRouter(allowedOrigins []string, designerSvc designer.Service, renderer handlers.ChartRenderer) (*chi.Mux, huma.API) {
	router := chi.NewRouter()

	// Middleware
	router.Use(requestID)
	router.Use(middleware.RealIP)
	router.Use(zerologLogger())
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         300,
	}))

	config := huma.DefaultConfig("Filterscope API", Version)
	config.DocsPath = "/api/docs"
	api := humachi.New(router, config)

	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Returns the health status of the service",
	}, func(ctx context.Context, input *struct{}) (*models.HealthResponse, error) {
		resp := &models.HealthResponse{}
		resp.Body.Status = "healthy"
		resp.Body.Version = Version
		resp.Body.Time = time.Now()
		return resp, nil
	})

	RegisterRoutes(router, api, designerSvc, renderer)

	return router, api
}

// RegisterRoutes sets up all filter routes
func RegisterRoutes(router chi.Router, api huma.API, designerSvc designer.Service, renderer handlers.ChartRenderer) {
	filterHandler := handlers.NewFilterHandler(designerSvc, renderer)

	huma.Register(api, huma.Operation{
		OperationID: "listFamilies",
		Method:      http.MethodGet,
		Path:        "/api/families",
		Summary:     "List filter families",
		Description: "Returns the selectable filter families and the ranges of every control",
		Tags:        []string{"Filter"},
	}, filterHandler.ListFamilies)

	huma.Register(api, huma.Operation{
		OperationID: "designFilter",
		Method:      http.MethodPost,
		Path:        "/api/design",
		Summary:     "Design a filter",
		Description: "Reconciles the cutoff controls, designs the filter and returns its frequency response",
		Tags:        []string{"Filter"},
	}, filterHandler.Design)

	huma.Register(api, huma.Operation{
		OperationID: "renderResponse",
		Method:      http.MethodPost,
		Path:        "/api/render",
		Summary:     "Render a frequency response",
		Description: "Draws a stored frequency response as gain and phase SVG panels",
		Tags:        []string{"Filter"},
	}, filterHandler.Render)

	router.Get("/chart.png", filterHandler.ChartPNG)

	page := web.Handler()
	router.Get("/", page.ServeHTTP)
	router.Handle("/static/*", page)
}
