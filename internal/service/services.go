package service

import (
	"context"
	"math"

	"github.com/content-platform-api/internal/cache"
	"github.com/content-platform-api/internal/config"
	"github.com/content-platform-api/internal/idgen"
	"github.com/content-platform-api/internal/metrics"
	"github.com/content-platform-api/internal/models"
	"github.com/content-platform-api/internal/repository"
	"github.com/content-platform-api/internal/validation"
	"github.com/rs/zerolog"
)

// ArticleService defines the interface for article operations
type ArticleService interface {
	Save(ctx context.Context, article *models.Article) error
	Update(ctx context.Context, article *models.Article) error
	Delete(ctx context.Context, id string) error
	FindAll(ctx context.Context) ([]*models.Article, error)
	FindByID(ctx context.Context, id string) (*models.Article, error)
	Search(ctx context.Context, criteria map[string]interface{}) ([]*models.Article, error)
	SearchPage(ctx context.Context, criteria map[string]interface{}, page, size int) ([]*models.Article, int64, error)
	Examine(ctx context.Context, id string) error
	Thumbup(ctx context.Context, id string) error
	CancelThumbup(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// ProblemService defines the interface for Q&A operations
type ProblemService interface {
	Save(ctx context.Context, problem *models.Problem) error
	Update(ctx context.Context, problem *models.Problem) error
	Delete(ctx context.Context, id string) error
	FindAll(ctx context.Context) ([]*models.Problem, error)
	FindByID(ctx context.Context, id string) (*models.Problem, error)
	Search(ctx context.Context, criteria map[string]interface{}) ([]*models.Problem, error)
	SearchPage(ctx context.Context, criteria map[string]interface{}, page, size int) ([]*models.Problem, int64, error)
	NewList(ctx context.Context, labelID string, page, size int) ([]*models.Problem, int64, error)
	HotList(ctx context.Context, labelID string, page, size int) ([]*models.Problem, int64, error)
	WaitList(ctx context.Context, labelID string, page, size int) ([]*models.Problem, int64, error)
	Count(ctx context.Context) (int, error)
}

// Services holds all service interfaces. A service is nil when its
// repository was not provided.
type Services struct {
	Article ArticleService
	Problem ProblemService
}

// Dependencies are the collaborators shared by every service
type Dependencies struct {
	Cache     cache.Store
	IDs       idgen.Generator
	Validator *validation.Validator
	Metrics   metrics.Recorder
}

// NewServices creates the services whose repositories are present
func NewServices(repos *repository.Repositories, deps Dependencies, cfg *config.Config, log zerolog.Logger) *Services {
	if deps.Cache == nil {
		deps.Cache = cache.NewNopStore()
	}
	if deps.IDs == nil {
		deps.IDs = idgen.NewUUID()
	}
	if deps.Validator == nil {
		deps.Validator = validation.NewValidator()
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.Nop{}
	}

	services := &Services{}
	if repos.Article != nil {
		services.Article = newArticleService(repos.Article, deps, cfg.Cache.TTL, log)
	}
	if repos.Problem != nil {
		services.Problem = newProblemService(repos.Problem, deps, cfg.Cache.TTL, log)
	}
	return services
}

// pageOffset translates a 1-based page into a row offset. Pages whose
// offset would overflow int are rejected.
func pageOffset(page, size int) (int, error) {
	if page < 1 || size < 1 || page-1 > math.MaxInt/size {
		return 0, models.ErrInvalidPage
	}
	return models.Page{Page: page, Size: size}.Offset(), nil
}
