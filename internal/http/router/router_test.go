package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/straye-as/concrete-calc/internal/auth"
	"github.com/straye-as/concrete-calc/internal/calc"
	"github.com/straye-as/concrete-calc/internal/config"
	"github.com/straye-as/concrete-calc/internal/content"
	"github.com/straye-as/concrete-calc/internal/domain"
	"github.com/straye-as/concrete-calc/internal/http/handler"
	"github.com/straye-as/concrete-calc/internal/http/middleware"
	"github.com/straye-as/concrete-calc/internal/http/router"
	"github.com/straye-as/concrete-calc/internal/repository"
	"github.com/straye-as/concrete-calc/internal/service"
	"github.com/straye-as/concrete-calc/internal/storage"
	"github.com/straye-as/concrete-calc/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testAPIKey = "test-admin-key"

type testServer struct {
	handler http.Handler
	cfg     *config.Config
}

func setupServer(t *testing.T, mutate func(*config.Config)) *testServer {
	t.Helper()

	cfg, err := config.Load()
	require.NoError(t, err)
	cfg.Site = config.SiteConfig{Name: "Concrete Calc", BaseURL: "https://calc.example.com"}
	cfg.Auth.APIKey = testAPIKey
	cfg.Auth.JWTSecret = "router-test-signing-key-0123456789"
	cfg.RateLimit.Enabled = false
	if mutate != nil {
		mutate(cfg)
	}

	logger := zap.NewNop()
	db := testutil.SetupTestDB(t)
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	pages, err := content.New()
	require.NoError(t, err)

	calculatorService := service.NewCalculatorService(pages, cfg.Site, logger)
	contentService := service.NewContentService(pages, cfg.Site, logger)
	estimateService := service.NewEstimateService(
		repository.NewEstimateRepository(db),
		calculatorService,
		store,
		cfg.Estimates,
		cfg.Site,
		logger,
	)

	tokens, err := auth.NewTokenIssuer(&cfg.Auth)
	if err != nil {
		require.ErrorIs(t, err, auth.ErrTokensDisabled)
		tokens = nil
	}

	rt := router.NewRouter(
		cfg,
		logger,
		auth.NewMiddleware(cfg.Auth.APIKey, tokens, logger),
		middleware.NewRateLimiter(&cfg.RateLimit, logger),
		handler.NewHealthHandler(db, store, logger),
		handler.NewCalculatorHandler(calculatorService, logger),
		handler.NewEstimateHandler(estimateService, logger),
		handler.NewContentHandler(contentService, logger),
		handler.NewAdminHandler(estimateService, tokens, logger),
	)
	return &testServer{handler: rt.Setup(), cfg: cfg}
}

func (s *testServer) do(t *testing.T, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func slabBody() map[string]any {
	return map[string]any{
		"unit": "ft",
		"dimensions": map[string]any{
			"length":    map[string]any{"value": 10},
			"width":     map[string]any{"value": 10},
			"thickness": map[string]any{"value": 4, "unit": "in"},
		},
		"displayUnit": "yd3",
	}
}

func TestHealth(t *testing.T) {
	s := setupServer(t, nil)

	rec := s.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))

	rec = s.do(t, http.MethodGet, "/health/db", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	db := decode[map[string]any](t, rec)
	assert.Equal(t, "healthy", db["status"])
	assert.Contains(t, db, "stats")

	rec = s.do(t, http.MethodGet, "/health/ready", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	ready := decode[map[string]any](t, rec)
	assert.Equal(t, "healthy", ready["status"])
	assert.Contains(t, ready["checks"], "storage")
}

func TestSecurityHeaders(t *testing.T) {
	s := setupServer(t, nil)

	rec := s.do(t, http.MethodGet, "/api/v1/units", nil)
	assert.Equal(t, s.cfg.Security.ContentSecurityPolicy, rec.Header().Get("Content-Security-Policy"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestReferenceData(t *testing.T) {
	s := setupServer(t, nil)

	rec := s.do(t, http.MethodGet, "/api/v1/units", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	units := decode[domain.UnitsDTO](t, rec)
	assert.NotEmpty(t, units.Length)
	assert.NotEmpty(t, units.Volume)

	rec = s.do(t, http.MethodGet, "/api/v1/mixes", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"M15"`)
	assert.Contains(t, rec.Body.String(), "1:2:4")
}

func TestCalculators(t *testing.T) {
	s := setupServer(t, nil)

	t.Run("list", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/v1/calculators", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		list := decode[domain.ListResponse[domain.CalculatorSummaryDTO]](t, rec)
		assert.Equal(t, len(calc.Calculators()), list.Total)
		assert.Equal(t, "slab", list.Data[0].Slug)
	})

	t.Run("detail", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/v1/calculators/slab", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		detail := decode[domain.CalculatorDetailDTO](t, rec)
		assert.Equal(t, "Concrete Slab", detail.Name)
		require.NotNil(t, detail.Definition)
		assert.Equal(t, "thickness", detail.Definition.Shapes[0].Fields[2].Name)
		assert.NotEmpty(t, detail.FAQs)
		assert.NotEmpty(t, detail.JSONLD)
	})

	t.Run("unknown", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/v1/calculators/bridge", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, domain.ErrorTypeNotFound, decode[domain.APIError](t, rec).Type)
	})
}

func TestCalculate(t *testing.T) {
	s := setupServer(t, nil)

	t.Run("slab in feet", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/v1/calculators/slab/calculate", slabBody())
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		res := decode[calc.Result](t, rec)
		assert.Equal(t, "rectangular", res.Shape)
		assert.Equal(t, 33.33, res.GrossVolume.CubicFeet)
		assert.Equal(t, 1.23, res.GrossVolume.Display)
		assert.Equal(t, calc.CubicYard, res.GrossVolume.DisplayUnit)
		assert.Nil(t, res.Materials)
	})

	t.Run("unknown calculator", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/v1/calculators/bridge/calculate", slabBody())
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("missing dimension", func(t *testing.T) {
		body := slabBody()
		delete(body["dimensions"].(map[string]any), "thickness")
		rec := s.do(t, http.MethodPost, "/api/v1/calculators/slab/calculate", body)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		apiErr := decode[domain.APIError](t, rec)
		assert.Equal(t, domain.ErrorTypeBadRequest, apiErr.Type)
		assert.Contains(t, apiErr.Detail, "thickness")
	})

	t.Run("validation errors use json names", func(t *testing.T) {
		body := slabBody()
		body["wastePercent"] = 150
		body["quantity"] = -1
		rec := s.do(t, http.MethodPost, "/api/v1/calculators/slab/calculate", body)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		apiErr := decode[domain.APIError](t, rec)
		assert.Equal(t, domain.ErrorTypeValidation, apiErr.Type)
		assert.Equal(t, "Must be less than or equal to 100", apiErr.Errors["wastePercent"])
		assert.Contains(t, apiErr.Errors, "quantity")
	})

	t.Run("oversized inputs are bad requests", func(t *testing.T) {
		stairs := map[string]any{"dimensions": map[string]any{
			"steps": map[string]any{"value": 1e15},
			"rise":  map[string]any{"value": 0.15},
			"run":   map[string]any{"value": 0.3},
			"width": map[string]any{"value": 1},
		}}
		rec := s.do(t, http.MethodPost, "/api/v1/calculators/stairs/calculate", stairs)
		assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

		huge := map[string]any{"dimensions": map[string]any{
			"length":    map[string]any{"value": 1e200},
			"width":     map[string]any{"value": 1e200},
			"thickness": map[string]any{"value": 1},
		}}
		rec = s.do(t, http.MethodPost, "/api/v1/calculators/slab/calculate", huge)
		assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/v1/calculators/slab/calculate", "{not json")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid request body", decode[domain.APIError](t, rec).Detail)
	})
}

func TestCalculate_BodyTooLarge(t *testing.T) {
	s := setupServer(t, func(cfg *config.Config) {
		cfg.Server.MaxBodyBytes = 64
	})

	rec := s.do(t, http.MethodPost, "/api/v1/calculators/slab/calculate", slabBody())
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestCalculate_RateLimited(t *testing.T) {
	s := setupServer(t, func(cfg *config.Config) {
		cfg.RateLimit.Enabled = true
		cfg.RateLimit.RequestsPerMinute = 100
		cfg.RateLimit.CalculationsPerMinute = 2
	})

	for i := 0; i < 2; i++ {
		rec := s.do(t, http.MethodPost, "/api/v1/calculators/slab/calculate", slabBody())
		require.Equal(t, http.StatusOK, rec.Code)
	}
	rec := s.do(t, http.MethodPost, "/api/v1/calculators/slab/calculate", slabBody())
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))

	// reads are only subject to the general limit
	rec = s.do(t, http.MethodGet, "/api/v1/calculators/slab", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func createEstimate(t *testing.T, s *testServer, title string) domain.EstimateDTO {
	t.Helper()
	body := slabBody()
	body["calculator"] = "slab"
	body["title"] = title
	body["mix"] = "M15"
	body["pricePerUnit"] = 150

	rec := s.do(t, http.MethodPost, "/api/v1/estimates", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	est := decode[domain.EstimateDTO](t, rec)
	assert.Equal(t, "/api/v1/estimates/"+est.ID.String(), rec.Header().Get("Location"))
	return est
}

func TestEstimates(t *testing.T) {
	s := setupServer(t, nil)
	created := createEstimate(t, s, "Shed base")

	assert.Equal(t, "Shed base", created.Title)
	assert.Equal(t, "https://calc.example.com/api/v1/estimates/"+created.ID.String()+"/print", created.PrintURL)
	require.NotNil(t, created.Result.Materials)
	require.NotNil(t, created.Result.Cost)

	t.Run("get", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/v1/estimates/"+created.ID.String(), nil)
		require.Equal(t, http.StatusOK, rec.Code)
		got := decode[domain.EstimateDTO](t, rec)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, created.Result.GrossVolume, got.Result.GrossVolume)
	})

	t.Run("print", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/v1/estimates/"+created.ID.String()+"/print", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Equal(t, s.cfg.Security.PrintContentSecurityPolicy, rec.Header().Get("Content-Security-Policy"))
		assert.Equal(t, "private, max-age=300", rec.Header().Get("Cache-Control"))
		assert.Contains(t, rec.Body.String(), "Shed base")
	})

	t.Run("bad id", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/v1/estimates/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid estimate ID format", decode[domain.APIError](t, rec).Detail)
	})

	t.Run("missing", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/v1/estimates/00000000-0000-0000-0000-000000000001/print", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("unknown calculator is a bad request", func(t *testing.T) {
		body := slabBody()
		body["calculator"] = "bridge"
		rec := s.do(t, http.MethodPost, "/api/v1/estimates", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Unknown calculator: bridge", decode[domain.APIError](t, rec).Detail)
	})

	t.Run("calculator is required", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/v1/estimates", slabBody())
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "calculator is required", decode[domain.APIError](t, rec).Errors["calculator"])
	})
}

func TestContent(t *testing.T) {
	s := setupServer(t, nil)

	rec := s.do(t, http.MethodGet, "/api/v1/articles", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	all := decode[domain.ListResponse[domain.ArticleSummaryDTO]](t, rec)
	assert.Equal(t, 3, all.Total)

	rec = s.do(t, http.MethodGet, "/api/v1/articles?tag=materials", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, decode[domain.ListResponse[domain.ArticleSummaryDTO]](t, rec).Total)

	rec = s.do(t, http.MethodGet, "/api/v1/articles/concrete-mix-ratios", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	article := decode[domain.ArticleDTO](t, rec)
	assert.Equal(t, "Concrete Mix Ratios Explained", article.Title)
	assert.Contains(t, article.HTML, "<strong>nominal mix</strong>")

	rec = s.do(t, http.MethodGet, "/api/v1/articles/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodGet, "/sitemap.xml", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/xml; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "<loc>https://calc.example.com/calculators/slab</loc>")
	assert.Contains(t, rec.Body.String(), "<loc>https://calc.example.com/articles/concrete-mix-ratios</loc>")

	rec = s.do(t, http.MethodGet, "/robots.txt", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sitemap: https://calc.example.com/sitemap.xml")
}

func TestAdmin(t *testing.T) {
	s := setupServer(t, nil)
	createEstimate(t, s, "first")
	createEstimate(t, s, "second")

	t.Run("requires credentials", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/v1/admin/estimates", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, domain.ErrorTypeUnauthorized, decode[domain.APIError](t, rec).Type)

		rec = s.do(t, http.MethodGet, "/api/v1/admin/estimates", nil, auth.APIKeyHeader, "wrong")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("api key", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/v1/admin/estimates?limit=1", nil, auth.APIKeyHeader, testAPIKey)
		require.Equal(t, http.StatusOK, rec.Code)
		list := decode[domain.ListResponse[domain.EstimateSummaryDTO]](t, rec)
		assert.Equal(t, 2, list.Total)
		assert.Len(t, list.Data, 1)
	})

	t.Run("bearer token", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/v1/admin/token", map[string]string{"subject": "ops"},
			auth.APIKeyHeader, testAPIKey)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		token := decode[domain.TokenDTO](t, rec)
		assert.Equal(t, "Bearer", token.TokenType)
		require.NotEmpty(t, token.AccessToken)

		rec = s.do(t, http.MethodDelete, "/api/v1/admin/estimates/expired", nil,
			"Authorization", "Bearer "+token.AccessToken)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, int64(0), decode[domain.PurgeResultDTO](t, rec).Deleted)

		// a token cannot mint another token
		rec = s.do(t, http.MethodPost, "/api/v1/admin/token", nil,
			"Authorization", "Bearer "+token.AccessToken)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token without body", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/v1/admin/token", nil, auth.APIKeyHeader, testAPIKey)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestAdmin_TokensDisabled(t *testing.T) {
	s := setupServer(t, func(cfg *config.Config) {
		cfg.Auth.JWTSecret = ""
	})

	rec := s.do(t, http.MethodPost, "/api/v1/admin/token", nil, auth.APIKeyHeader, testAPIKey)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/admin/estimates", nil, "Authorization", "Bearer abc")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/admin/estimates", nil, auth.APIKeyHeader, testAPIKey)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSwagger(t *testing.T) {
	s := setupServer(t, func(cfg *config.Config) {
		cfg.Server.EnableSwagger = true
	})
	rec := s.do(t, http.MethodGet, "/swagger/doc.json", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/calculators/{slug}/calculate")

	s = setupServer(t, func(cfg *config.Config) {
		cfg.Server.EnableSwagger = false
	})
	rec = s.do(t, http.MethodGet, "/swagger/doc.json", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
