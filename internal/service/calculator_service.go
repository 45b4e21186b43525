package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/straye-as/concrete-calc/internal/calc"
	"github.com/straye-as/concrete-calc/internal/config"
	"github.com/straye-as/concrete-calc/internal/content"
	"github.com/straye-as/concrete-calc/internal/domain"
	"github.com/straye-as/concrete-calc/internal/mapper"
	"go.uber.org/zap"
)

// CalculatorService exposes the calculator registry together with its page
// metadata and runs calculations.
type CalculatorService struct {
	content *content.Store
	site    config.SiteConfig
	logger  *zap.Logger
}

// NewCalculatorService creates a new CalculatorService instance
func NewCalculatorService(store *content.Store, site config.SiteConfig, logger *zap.Logger) *CalculatorService {
	return &CalculatorService{
		content: store,
		site:    site,
		logger:  logger,
	}
}

func (s *CalculatorService) Units() domain.UnitsDTO {
	return mapper.ToUnitsDTO()
}

func (s *CalculatorService) Mixes() domain.MixesDTO {
	return mapper.ToMixesDTO()
}

// List returns the catalog in registry order
func (s *CalculatorService) List() []domain.CalculatorSummaryDTO {
	pages := s.content.Catalog()
	out := make([]domain.CalculatorSummaryDTO, 0, len(pages))
	for i := range pages {
		c, err := calc.Lookup(pages[i].Slug)
		if err != nil {
			continue
		}
		out = append(out, mapper.ToCalculatorSummaryDTO(c, &pages[i]))
	}
	return out
}

// Get returns a calculator with its input definition, FAQs, breadcrumbs and
// JSON-LD blocks.
func (s *CalculatorService) Get(slug string) (*domain.CalculatorDetailDTO, error) {
	c, err := calc.Lookup(slug)
	if err != nil {
		return nil, ErrCalculatorNotFound
	}
	page, err := s.content.Calculator(slug)
	if err != nil {
		return nil, ErrCalculatorNotFound
	}

	crumbs := content.CalculatorBreadcrumbs(s.site.BaseURL, page)
	jsonLD := []map[string]any{
		content.WebApplicationLD(s.site.BaseURL, s.site.Name, page),
		content.BreadcrumbListLD(crumbs),
	}
	if faq := content.FAQPageLD(page.FAQs); faq != nil {
		jsonLD = append(jsonLD, faq)
	}

	return &domain.CalculatorDetailDTO{
		CalculatorSummaryDTO: mapper.ToCalculatorSummaryDTO(c, page),
		Definition:           c,
		FAQs:                 mapper.ToFAQDTOs(page.FAQs),
		Related:              page.Related,
		Breadcrumbs:          mapper.ToBreadcrumbDTOs(crumbs),
		JSONLD:               jsonLD,
	}, nil
}

// Calculate runs calculator slug on req. Bad input is reported as
// ErrInvalidInput joined with the calc error.
func (s *CalculatorService) Calculate(ctx context.Context, slug string, req *domain.CalculateRequest) (*calc.Result, error) {
	_, result, err := s.evaluate(slug, req)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("calculation completed",
		zap.String("calculator", result.Calculator),
		zap.String("shape", result.Shape),
		zap.Float64("grossM3", result.GrossVolume.CubicMeters),
	)
	return result, nil
}

// evaluate returns the normalised request alongside its result
func (s *CalculatorService) evaluate(slug string, req *domain.CalculateRequest) (calc.Request, *calc.Result, error) {
	if _, err := calc.Lookup(slug); err != nil {
		return calc.Request{}, nil, ErrCalculatorNotFound
	}
	in, err := mapper.ToCalcRequest(slug, req)
	if err != nil {
		return calc.Request{}, nil, classify(err)
	}
	result, err := calc.Calculate(in)
	if err != nil {
		return calc.Request{}, nil, classify(err)
	}
	return in, result, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, calc.ErrUnknownCalculator):
		return ErrCalculatorNotFound
	case calc.IsInputError(err):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	default:
		return fmt.Errorf("calculation failed: %w", err)
	}
}
