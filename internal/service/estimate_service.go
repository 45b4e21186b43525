package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/straye-as/concrete-calc/internal/config"
	"github.com/straye-as/concrete-calc/internal/domain"
	"github.com/straye-as/concrete-calc/internal/logger"
	"github.com/straye-as/concrete-calc/internal/mapper"
	"github.com/straye-as/concrete-calc/internal/repository"
	"github.com/straye-as/concrete-calc/internal/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const printContentType = "text/html; charset=utf-8"

// EstimateService stores shareable calculation results and renders their
// printable summaries.
type EstimateService struct {
	estimateRepo *repository.EstimateRepository
	calculators  *CalculatorService
	store        storage.Storage
	cfg          config.EstimatesConfig
	site         config.SiteConfig
	logger       *zap.Logger
	now          func() time.Time
}

// NewEstimateService creates a new EstimateService instance
func NewEstimateService(
	estimateRepo *repository.EstimateRepository,
	calculators *CalculatorService,
	store storage.Storage,
	cfg config.EstimatesConfig,
	site config.SiteConfig,
	logger *zap.Logger,
) *EstimateService {
	return &EstimateService{
		estimateRepo: estimateRepo,
		calculators:  calculators,
		store:        store,
		cfg:          cfg,
		site:         site,
		logger:       logger,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// SetClock replaces the time source; tests use it to control expiry
func (s *EstimateService) SetClock(now func() time.Time) {
	s.now = now
}

// Create calculates and persists an estimate
func (s *EstimateService) Create(ctx context.Context, req *domain.CreateEstimateRequest) (*domain.EstimateDTO, error) {
	slug := strings.TrimSpace(req.Calculator)
	in, result, err := s.calculators.evaluate(slug, &req.CalculateRequest)
	if err != nil {
		return nil, err
	}

	now := s.now()
	estimate := &domain.Estimate{
		Calculator:    result.Calculator,
		Shape:         result.Shape,
		Title:         strings.TrimSpace(req.Title),
		Notes:         strings.TrimSpace(req.Notes),
		Input:         in,
		Result:        *result,
		GrossVolumeM3: result.GrossVolume.CubicMeters,
		CreatedAt:     now,
		ExpiresAt:     now.Add(s.cfg.RetentionDuration()),
	}

	if err := s.estimateRepo.Create(ctx, estimate); err != nil {
		return nil, fmt.Errorf("failed to create estimate: %w", err)
	}

	logger.WithEstimate(s.logger, estimate.ID.String(), estimate.Calculator).Info("estimate created",
		zap.Float64("grossM3", estimate.GrossVolumeM3),
		zap.Time("expiresAt", estimate.ExpiresAt),
	)

	dto := mapper.ToEstimateDTO(estimate, s.PrintURL(estimate.ID))
	return &dto, nil
}

// Get returns a live estimate; expired ones are reported as not found
func (s *EstimateService) Get(ctx context.Context, id uuid.UUID) (*domain.EstimateDTO, error) {
	estimate, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := mapper.ToEstimateDTO(estimate, s.PrintURL(estimate.ID))
	return &dto, nil
}

func (s *EstimateService) load(ctx context.Context, id uuid.UUID) (*domain.Estimate, error) {
	estimate, err := s.estimateRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEstimateNotFound
		}
		return nil, fmt.Errorf("failed to get estimate: %w", err)
	}
	if estimate.IsExpired(s.now()) {
		return nil, ErrEstimateNotFound
	}
	return estimate, nil
}

// Print returns the printable HTML summary. The first call renders and
// caches it in storage; later calls stream the cached copy. A cache write
// failure is logged and the freshly rendered copy is still returned.
func (s *EstimateService) Print(ctx context.Context, id uuid.UUID) (io.ReadCloser, error) {
	estimate, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	log := logger.WithEstimate(s.logger, estimate.ID.String(), estimate.Calculator)
	key := estimate.PrintKey()

	cached, err := s.store.Get(ctx, key)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		log.Warn("failed to read cached print, rendering", zap.Error(err))
	}

	body, err := renderPrint(estimate, s.site.Name, s.ShareURL(estimate.ID))
	if err != nil {
		return nil, err
	}

	if _, err := s.store.Put(ctx, key, printContentType, bytes.NewReader(body)); err != nil {
		log.Warn("failed to cache print", zap.Error(err))
	} else {
		log.Debug("print cached", zap.String("key", key))
	}

	return io.NopCloser(bytes.NewReader(body)), nil
}

// PurgeExpired deletes every estimate expired at now together with its
// cached print, returning the number of estimates removed.
func (s *EstimateService) PurgeExpired(ctx context.Context) (int64, error) {
	now := s.now()
	ids, err := s.estimateRepo.ListExpiredIDs(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("failed to list expired estimates: %w", err)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	for _, id := range ids {
		if err := s.store.Delete(ctx, domain.PrintKey(id)); err != nil {
			s.logger.Warn("failed to delete cached print",
				zap.String("estimate_id", id.String()),
				zap.Error(err),
			)
		}
	}

	deleted, err := s.estimateRepo.DeleteByIDs(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired estimates: %w", err)
	}

	s.logger.Info("expired estimates purged",
		zap.Int64("deleted", deleted),
		zap.Time("cutoff", now),
	)
	return deleted, nil
}

// Recent lists the newest live estimates. limit is clamped to
// [1, MaxListLimit].
func (s *EstimateService) Recent(ctx context.Context, limit int) (domain.ListResponse[domain.EstimateSummaryDTO], error) {
	maxLimit := s.cfg.MaxListLimit
	if maxLimit <= 0 {
		maxLimit = 100
	}
	if limit <= 0 || limit > maxLimit {
		limit = maxLimit
	}

	now := s.now()
	estimates, err := s.estimateRepo.ListRecent(ctx, now, limit)
	if err != nil {
		return domain.ListResponse[domain.EstimateSummaryDTO]{}, fmt.Errorf("failed to list estimates: %w", err)
	}
	total, err := s.estimateRepo.CountActive(ctx, now)
	if err != nil {
		return domain.ListResponse[domain.EstimateSummaryDTO]{}, fmt.Errorf("failed to count estimates: %w", err)
	}

	data := make([]domain.EstimateSummaryDTO, 0, len(estimates))
	for i := range estimates {
		data = append(data, mapper.ToEstimateSummaryDTO(&estimates[i]))
	}
	return domain.ListResponse[domain.EstimateSummaryDTO]{Data: data, Total: int(total)}, nil
}

// ShareURL is the public page for an estimate
func (s *EstimateService) ShareURL(id uuid.UUID) string {
	return strings.TrimRight(s.site.BaseURL, "/") + "/estimates/" + id.String()
}

// PrintURL is the API link to the printable summary
func (s *EstimateService) PrintURL(id uuid.UUID) string {
	return strings.TrimRight(s.site.BaseURL, "/") + "/api/v1/estimates/" + id.String() + "/print"
}
