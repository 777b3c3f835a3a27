package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/content-platform-api/internal/filter"
	"github.com/content-platform-api/internal/models"
	"github.com/content-platform-api/internal/repository"
)

// MockArticleRepository is an in-memory implementation of ArticleRepository
type MockArticleRepository struct {
	mu          sync.Mutex
	Articles    map[string]*models.Article
	InsertError error
	FindError   error
	FindCalls   int
}

// Verify interface compliance
var _ repository.ArticleRepository = (*MockArticleRepository)(nil)

func NewMockArticleRepository() *MockArticleRepository {
	return &MockArticleRepository{
		Articles: make(map[string]*models.Article),
	}
}

func (m *MockArticleRepository) Create(ctx context.Context, article *models.Article) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.InsertError != nil {
		return m.InsertError
	}
	stored := *article
	m.Articles[article.ID] = &stored
	return nil
}

func (m *MockArticleRepository) Update(ctx context.Context, article *models.Article) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.Articles[article.ID]
	if !ok {
		return models.ErrNotFound
	}
	stored := *article
	stored.CreateTime = existing.CreateTime
	m.Articles[article.ID] = &stored
	return nil
}

func (m *MockArticleRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Articles[id]; !ok {
		return models.ErrNotFound
	}
	delete(m.Articles, id)
	return nil
}

func (m *MockArticleRepository) FindAll(ctx context.Context) ([]*models.Article, error) {
	return m.Search(ctx, filter.Predicate{})
}

func (m *MockArticleRepository) FindByID(ctx context.Context, id string) (*models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FindCalls++
	if m.FindError != nil {
		return nil, m.FindError
	}
	article, ok := m.Articles[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	found := *article
	return &found, nil
}

func (m *MockArticleRepository) Search(ctx context.Context, pred filter.Predicate) ([]*models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	articles := make([]*models.Article, 0)
	for _, article := range m.Articles {
		if pred.Match(article.Fields()) {
			found := *article
			articles = append(articles, &found)
		}
	}
	sort.Slice(articles, func(i, j int) bool { return articles[i].ID < articles[j].ID })
	return articles, nil
}

func (m *MockArticleRepository) SearchPage(ctx context.Context, pred filter.Predicate, offset, limit int) ([]*models.Article, int64, error) {
	all, _ := m.Search(ctx, pred)
	return pageOf(all, offset, limit), int64(len(all)), nil
}

func (m *MockArticleRepository) UpdateState(ctx context.Context, id, state string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	article, ok := m.Articles[id]
	if !ok {
		return models.ErrNotFound
	}
	article.State = state
	return nil
}

func (m *MockArticleRepository) AdjustThumbup(ctx context.Context, id string, delta int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	article, ok := m.Articles[id]
	if !ok {
		return models.ErrNotFound
	}
	article.Thumbup += delta
	return nil
}

func (m *MockArticleRepository) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Articles), nil
}

// MockProblemRepository is an in-memory implementation of ProblemRepository
type MockProblemRepository struct {
	mu        sync.Mutex
	Problems  map[string]*models.Problem
	FindCalls int
}

// Verify interface compliance
var _ repository.ProblemRepository = (*MockProblemRepository)(nil)

func NewMockProblemRepository() *MockProblemRepository {
	return &MockProblemRepository{
		Problems: make(map[string]*models.Problem),
	}
}

func (m *MockProblemRepository) Create(ctx context.Context, problem *models.Problem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *problem
	m.Problems[problem.ID] = &stored
	return nil
}

func (m *MockProblemRepository) Update(ctx context.Context, problem *models.Problem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.Problems[problem.ID]
	if !ok {
		return models.ErrNotFound
	}
	stored := *problem
	stored.CreateTime = existing.CreateTime
	if stored.LabelIDs == nil {
		stored.LabelIDs = existing.LabelIDs
	}
	m.Problems[problem.ID] = &stored
	return nil
}

func (m *MockProblemRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Problems[id]; !ok {
		return models.ErrNotFound
	}
	delete(m.Problems, id)
	return nil
}

func (m *MockProblemRepository) FindAll(ctx context.Context) ([]*models.Problem, error) {
	return m.Search(ctx, filter.Predicate{})
}

func (m *MockProblemRepository) FindByID(ctx context.Context, id string) (*models.Problem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FindCalls++
	problem, ok := m.Problems[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	found := *problem
	return &found, nil
}

func (m *MockProblemRepository) Search(ctx context.Context, pred filter.Predicate) ([]*models.Problem, error) {
	return m.selectSorted(func(p *models.Problem) bool { return pred.Match(p.Fields()) },
		func(a, b *models.Problem) bool { return a.ID < b.ID })
}

func (m *MockProblemRepository) SearchPage(ctx context.Context, pred filter.Predicate, offset, limit int) ([]*models.Problem, int64, error) {
	all, _ := m.Search(ctx, pred)
	return pageOf(all, offset, limit), int64(len(all)), nil
}

func (m *MockProblemRepository) NewestByLabel(ctx context.Context, labelID string, offset, limit int) ([]*models.Problem, int64, error) {
	all, _ := m.selectSorted(hasLabel(labelID), func(a, b *models.Problem) bool {
		return laterThan(a.ReplyTime, b.ReplyTime)
	})
	return pageOf(all, offset, limit), int64(len(all)), nil
}

func (m *MockProblemRepository) HottestByLabel(ctx context.Context, labelID string, offset, limit int) ([]*models.Problem, int64, error) {
	all, _ := m.selectSorted(hasLabel(labelID), func(a, b *models.Problem) bool {
		return a.Reply > b.Reply
	})
	return pageOf(all, offset, limit), int64(len(all)), nil
}

func (m *MockProblemRepository) UnansweredByLabel(ctx context.Context, labelID string, offset, limit int) ([]*models.Problem, int64, error) {
	labelled := hasLabel(labelID)
	all, _ := m.selectSorted(func(p *models.Problem) bool { return labelled(p) && p.Reply == 0 },
		func(a, b *models.Problem) bool { return laterThan(a.CreateTime, b.CreateTime) })
	return pageOf(all, offset, limit), int64(len(all)), nil
}

func (m *MockProblemRepository) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Problems), nil
}

func (m *MockProblemRepository) selectSorted(keep func(*models.Problem) bool, less func(a, b *models.Problem) bool) ([]*models.Problem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	problems := make([]*models.Problem, 0)
	for _, p := range m.Problems {
		if keep(p) {
			found := *p
			problems = append(problems, &found)
		}
	}
	sort.SliceStable(problems, func(i, j int) bool { return problems[i].ID < problems[j].ID })
	sort.SliceStable(problems, func(i, j int) bool { return less(problems[i], problems[j]) })
	return problems, nil
}

func hasLabel(labelID string) func(*models.Problem) bool {
	return func(p *models.Problem) bool {
		for _, l := range p.LabelIDs {
			if l == labelID {
				return true
			}
		}
		return false
	}
}

func pageOf[T any](all []T, offset, limit int) []T {
	if offset < 0 || offset >= len(all) {
		return []T{}
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}

// laterThan orders non-nil times newest first, nil last
func laterThan(a, b *time.Time) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	return a.After(*b)
}
