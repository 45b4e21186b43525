package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/straye-as/concrete-calc/internal/domain"
	"github.com/straye-as/concrete-calc/internal/service"
	"go.uber.org/zap"
)

// ContentHandler serves articles and the crawler files
type ContentHandler struct {
	contentService *service.ContentService
	logger         *zap.Logger
}

// NewContentHandler creates a new content handler instance
func NewContentHandler(contentService *service.ContentService, logger *zap.Logger) *ContentHandler {
	return &ContentHandler{
		contentService: contentService,
		logger:         logger,
	}
}

// ListArticles godoc
// @Summary List articles
// @Description Newest first, optionally filtered by tag
// @Tags Content
// @Produce json
// @Param tag query string false "Filter by tag"
// @Success 200 {object} domain.ListResponse[domain.ArticleSummaryDTO]
// @Router /articles [get]
func (h *ContentHandler) ListArticles(w http.ResponseWriter, r *http.Request) {
	items := h.contentService.Articles(strings.TrimSpace(r.URL.Query().Get("tag")))
	respondJSON(w, http.StatusOK, domain.ListResponse[domain.ArticleSummaryDTO]{
		Data:  items,
		Total: len(items),
	})
}

// GetArticle godoc
// @Summary Get article
// @Tags Content
// @Produce json
// @Param slug path string true "Article slug"
// @Success 200 {object} domain.ArticleDTO
// @Failure 404 {object} domain.APIError
// @Router /articles/{slug} [get]
func (h *ContentHandler) GetArticle(w http.ResponseWriter, r *http.Request) {
	article, err := h.contentService.Article(chi.URLParam(r, "slug"))
	if err != nil {
		respondServiceError(w, h.logger, err, "get article")
		return
	}
	respondJSON(w, http.StatusOK, article)
}

// Sitemap serves /sitemap.xml
func (h *ContentHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	body, err := h.contentService.Sitemap()
	if err != nil {
		h.logger.Error("failed to build sitemap", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to build sitemap")
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// RobotsTxt serves /robots.txt
func (h *ContentHandler) RobotsTxt(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(h.contentService.RobotsTxt()))
}
