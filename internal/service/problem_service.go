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

// problemService is the concrete implementation of ProblemService
type problemService struct {
	repo      repository.ProblemRepository
	cache     *pointCache[models.Problem]
	ids       idgen.Generator
	validator *validation.Validator
	log       zerolog.Logger
}

// newProblemService creates a new ProblemService
func newProblemService(repo repository.ProblemRepository, deps Dependencies, ttl time.Duration, log zerolog.Logger) *problemService {
	log = log.With().Str("service", "problem").Logger()
	return &problemService{
		repo: repo,
		cache: &pointCache[models.Problem]{
			store:   deps.Cache,
			prefix:  models.ProblemCachePrefix,
			ttl:     ttl,
			metrics: deps.Metrics,
			log:     log,
		},
		ids:       deps.IDs,
		validator: deps.Validator,
		log:       log,
	}
}

func (s *problemService) Save(ctx context.Context, problem *models.Problem) error {
	if err := s.validator.ValidateProblem(problem); err != nil {
		return err
	}

	now := time.Now()
	problem.ID = s.ids.NextID()
	problem.CreateTime = &now
	problem.UpdateTime = &now

	if err := s.repo.Create(ctx, problem); err != nil {
		return fmt.Errorf("failed to create problem: %w", err)
	}

	s.log.Info().Str("problem_id", problem.ID).Strs("labels", problem.LabelIDs).Msg("Problem created")
	return nil
}

func (s *problemService) Update(ctx context.Context, problem *models.Problem) error {
	if err := s.validator.ValidateProblem(problem); err != nil {
		return err
	}

	now := time.Now()
	problem.UpdateTime = &now

	if err := s.repo.Update(ctx, problem); err != nil {
		return fmt.Errorf("failed to update problem %s: %w", problem.ID, err)
	}
	s.cache.invalidate(ctx, problem.ID)
	return nil
}

func (s *problemService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete problem %s: %w", id, err)
	}
	s.cache.invalidate(ctx, id)
	return nil
}

func (s *problemService) FindAll(ctx context.Context) ([]*models.Problem, error) {
	return s.repo.FindAll(ctx)
}

func (s *problemService) FindByID(ctx context.Context, id string) (*models.Problem, error) {
	return s.cache.get(ctx, id, func(ctx context.Context) (*models.Problem, error) {
		return s.repo.FindByID(ctx, id)
	})
}

func (s *problemService) Search(ctx context.Context, criteria map[string]interface{}) ([]*models.Problem, error) {
	return s.repo.Search(ctx, filter.Build(filter.ProblemFields, criteria))
}

func (s *problemService) SearchPage(ctx context.Context, criteria map[string]interface{}, page, size int) ([]*models.Problem, int64, error) {
	offset, err := pageOffset(page, size)
	if err != nil {
		return nil, 0, err
	}
	return s.repo.SearchPage(ctx, filter.Build(filter.ProblemFields, criteria), offset, size)
}

// NewList pages a label's problems, most recently replied first
func (s *problemService) NewList(ctx context.Context, labelID string, page, size int) ([]*models.Problem, int64, error) {
	offset, err := pageOffset(page, size)
	if err != nil {
		return nil, 0, err
	}
	return s.repo.NewestByLabel(ctx, labelID, offset, size)
}

// HotList pages a label's problems, most replies first
func (s *problemService) HotList(ctx context.Context, labelID string, page, size int) ([]*models.Problem, int64, error) {
	offset, err := pageOffset(page, size)
	if err != nil {
		return nil, 0, err
	}
	return s.repo.HottestByLabel(ctx, labelID, offset, size)
}

// WaitList pages a label's problems that have no reply yet
func (s *problemService) WaitList(ctx context.Context, labelID string, page, size int) ([]*models.Problem, int64, error) {
	offset, err := pageOffset(page, size)
	if err != nil {
		return nil, 0, err
	}
	return s.repo.UnansweredByLabel(ctx, labelID, offset, size)
}

func (s *problemService) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
