package service

import (
	"fmt"

	"github.com/straye-as/concrete-calc/internal/config"
	"github.com/straye-as/concrete-calc/internal/content"
	"github.com/straye-as/concrete-calc/internal/domain"
	"github.com/straye-as/concrete-calc/internal/mapper"
	"go.uber.org/zap"
)

// ContentService serves articles and the crawler files
type ContentService struct {
	content *content.Store
	site    config.SiteConfig
	logger  *zap.Logger
}

// NewContentService creates a new ContentService instance
func NewContentService(store *content.Store, site config.SiteConfig, logger *zap.Logger) *ContentService {
	return &ContentService{
		content: store,
		site:    site,
		logger:  logger,
	}
}

// Articles lists articles newest first, filtered by tag when set
func (s *ContentService) Articles(tag string) []domain.ArticleSummaryDTO {
	articles := s.content.Articles(tag)
	out := make([]domain.ArticleSummaryDTO, 0, len(articles))
	for i := range articles {
		out = append(out, mapper.ToArticleSummaryDTO(&articles[i]))
	}
	return out
}

// Article returns one article with rendered body and page metadata
func (s *ContentService) Article(slug string) (*domain.ArticleDTO, error) {
	a, err := s.content.Article(slug)
	if err != nil {
		return nil, ErrArticleNotFound
	}

	crumbs := content.ArticleBreadcrumbs(s.site.BaseURL, a)
	return &domain.ArticleDTO{
		ArticleSummaryDTO: mapper.ToArticleSummaryDTO(a),
		Calculators:       a.Calculators,
		HTML:              a.HTML,
		Breadcrumbs:       mapper.ToBreadcrumbDTOs(crumbs),
		JSONLD: []map[string]any{
			content.ArticleLD(s.site.BaseURL, s.site.Name, a),
			content.BreadcrumbListLD(crumbs),
		},
	}, nil
}

func (s *ContentService) Sitemap() ([]byte, error) {
	out, err := s.content.Sitemap(s.site.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to render sitemap: %w", err)
	}
	return out, nil
}

func (s *ContentService) RobotsTxt() string {
	return content.RobotsTxt(s.site.BaseURL)
}
