package service

import (
	"context"
	"fmt"
	"time"

	"github.com/content-platform-api/internal/filter"
	"github.com/content-platform-api/internal/idgen"
	"github.com/content-platform-api/internal/models"
	"github.com/content-platform-api/internal/repository"
	"github.com/content-platform-api/internal/validation"
	"github.com/rs/zerolog"
)

// articleService is the concrete implementation of ArticleService
type articleService struct {
	repo      repository.ArticleRepository
	cache     *pointCache[models.Article]
	ids       idgen.Generator
	validator *validation.Validator
	log       zerolog.Logger
}

// newArticleService creates a new ArticleService
func newArticleService(repo repository.ArticleRepository, deps Dependencies, ttl time.Duration, log zerolog.Logger) *articleService {
	log = log.With().Str("service", "article").Logger()
	return &articleService{
		repo: repo,
		cache: &pointCache[models.Article]{
			store:   deps.Cache,
			prefix:  models.ArticleCachePrefix,
			ttl:     ttl,
			metrics: deps.Metrics,
			log:     log,
		},
		ids:       deps.IDs,
		validator: deps.Validator,
		log:       log,
	}
}

// Save assigns a new ID and inserts the article. The cache is not populated.
func (s *articleService) Save(ctx context.Context, article *models.Article) error {
	if err := s.validator.ValidateArticle(article); err != nil {
		return err
	}

	now := time.Now()
	article.ID = s.ids.NextID()
	article.CreateTime = &now
	article.UpdateTime = &now

	if err := s.repo.Create(ctx, article); err != nil {
		return fmt.Errorf("failed to create article: %w", err)
	}

	s.log.Info().Str("article_id", article.ID).Msg("Article created")
	return nil
}

// Update overwrites the article, then drops its cache entry
func (s *articleService) Update(ctx context.Context, article *models.Article) error {
	if err := s.validator.ValidateArticle(article); err != nil {
		return err
	}

	now := time.Now()
	article.UpdateTime = &now

	if err := s.repo.Update(ctx, article); err != nil {
		return fmt.Errorf("failed to update article %s: %w", article.ID, err)
	}
	s.cache.invalidate(ctx, article.ID)
	return nil
}

// Delete removes the article, then drops its cache entry
func (s *articleService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete article %s: %w", id, err)
	}
	s.cache.invalidate(ctx, id)
	return nil
}

// FindAll lists every article
func (s *articleService) FindAll(ctx context.Context) ([]*models.Article, error) {
	return s.repo.FindAll(ctx)
}

// FindByID is a cache-aside point lookup
func (s *articleService) FindByID(ctx context.Context, id string) (*models.Article, error) {
	return s.cache.get(ctx, id, func(ctx context.Context) (*models.Article, error) {
		return s.repo.FindByID(ctx, id)
	})
}

// Search lists the articles matching every non-empty criterion
func (s *articleService) Search(ctx context.Context, criteria map[string]interface{}) ([]*models.Article, error) {
	return s.repo.Search(ctx, filter.Build(filter.ArticleFields, criteria))
}

// SearchPage returns one 1-based page of matching articles and the match total
func (s *articleService) SearchPage(ctx context.Context, criteria map[string]interface{}, page, size int) ([]*models.Article, int64, error) {
	offset, err := pageOffset(page, size)
	if err != nil {
		return nil, 0, err
	}
	return s.repo.SearchPage(ctx, filter.Build(filter.ArticleFields, criteria), offset, size)
}

// Examine marks an article as reviewed
func (s *articleService) Examine(ctx context.Context, id string) error {
	if err := s.repo.UpdateState(ctx, id, models.ArticleStateReviewed); err != nil {
		return fmt.Errorf("failed to examine article %s: %w", id, err)
	}
	s.cache.invalidate(ctx, id)
	return nil
}

// Thumbup adds one to the article's thumb-up counter
func (s *articleService) Thumbup(ctx context.Context, id string) error {
	return s.adjustThumbup(ctx, id, 1)
}

// CancelThumbup subtracts one from the article's thumb-up counter. The
// counter is not floored at zero.
func (s *articleService) CancelThumbup(ctx context.Context, id string) error {
	return s.adjustThumbup(ctx, id, -1)
}

func (s *articleService) adjustThumbup(ctx context.Context, id string, delta int) error {
	if err := s.repo.AdjustThumbup(ctx, id, delta); err != nil {
		return fmt.Errorf("failed to adjust thumbup of article %s: %w", id, err)
	}
	s.cache.invalidate(ctx, id)
	return nil
}

// Count returns the number of stored articles
func (s *articleService) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
