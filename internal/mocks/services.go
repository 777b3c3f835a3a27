package mocks

import (
	"context"
	"sync"

	"github.com/content-platform-api/internal/models"
	"github.com/content-platform-api/internal/service"
)

// MockArticleService is a mock implementation of ArticleService. Each
// method defers to its Func field when set; otherwise it succeeds with a
// zero result.
type MockArticleService struct {
	SaveFunc       func(ctx context.Context, article *models.Article) error
	UpdateFunc     func(ctx context.Context, article *models.Article) error
	DeleteFunc     func(ctx context.Context, id string) error
	FindAllFunc    func(ctx context.Context) ([]*models.Article, error)
	FindByIDFunc   func(ctx context.Context, id string) (*models.Article, error)
	SearchFunc     func(ctx context.Context, criteria map[string]interface{}) ([]*models.Article, error)
	SearchPageFunc func(ctx context.Context, criteria map[string]interface{}, page, size int) ([]*models.Article, int64, error)
	ExamineFunc    func(ctx context.Context, id string) error
	ThumbupFunc    func(ctx context.Context, id string, delta int) error

	mu    sync.Mutex
	Calls []string
}

// Verify interface compliance
var _ service.ArticleService = (*MockArticleService)(nil)

func NewMockArticleService() *MockArticleService {
	return &MockArticleService{Calls: make([]string, 0)}
}

func (m *MockArticleService) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, call)
}

func (m *MockArticleService) Save(ctx context.Context, article *models.Article) error {
	m.record("Save")
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, article)
	}
	article.ID = "test-article-id"
	return nil
}

func (m *MockArticleService) Update(ctx context.Context, article *models.Article) error {
	m.record("Update")
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, article)
	}
	return nil
}

func (m *MockArticleService) Delete(ctx context.Context, id string) error {
	m.record("Delete")
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockArticleService) FindAll(ctx context.Context) ([]*models.Article, error) {
	m.record("FindAll")
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return []*models.Article{}, nil
}

func (m *MockArticleService) FindByID(ctx context.Context, id string) (*models.Article, error) {
	m.record("FindByID")
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return &models.Article{ID: id}, nil
}

func (m *MockArticleService) Search(ctx context.Context, criteria map[string]interface{}) ([]*models.Article, error) {
	m.record("Search")
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, criteria)
	}
	return []*models.Article{}, nil
}

func (m *MockArticleService) SearchPage(ctx context.Context, criteria map[string]interface{}, page, size int) ([]*models.Article, int64, error) {
	m.record("SearchPage")
	if m.SearchPageFunc != nil {
		return m.SearchPageFunc(ctx, criteria, page, size)
	}
	return []*models.Article{}, 0, nil
}

func (m *MockArticleService) Examine(ctx context.Context, id string) error {
	m.record("Examine")
	if m.ExamineFunc != nil {
		return m.ExamineFunc(ctx, id)
	}
	return nil
}

func (m *MockArticleService) Thumbup(ctx context.Context, id string) error {
	m.record("Thumbup")
	if m.ThumbupFunc != nil {
		return m.ThumbupFunc(ctx, id, 1)
	}
	return nil
}

func (m *MockArticleService) CancelThumbup(ctx context.Context, id string) error {
	m.record("CancelThumbup")
	if m.ThumbupFunc != nil {
		return m.ThumbupFunc(ctx, id, -1)
	}
	return nil
}

func (m *MockArticleService) Count(ctx context.Context) (int, error) {
	m.record("Count")
	return 0, nil
}

// MockProblemService is a mock implementation of ProblemService
type MockProblemService struct {
	SaveFunc     func(ctx context.Context, problem *models.Problem) error
	FindByIDFunc func(ctx context.Context, id string) (*models.Problem, error)
	ListFunc     func(ctx context.Context, list, labelID string, page, size int) ([]*models.Problem, int64, error)

	mu    sync.Mutex
	Calls []string
}

// Verify interface compliance
var _ service.ProblemService = (*MockProblemService)(nil)

func NewMockProblemService() *MockProblemService {
	return &MockProblemService{Calls: make([]string, 0)}
}

func (m *MockProblemService) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, call)
}

func (m *MockProblemService) Save(ctx context.Context, problem *models.Problem) error {
	m.record("Save")
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, problem)
	}
	problem.ID = "test-problem-id"
	return nil
}

func (m *MockProblemService) Update(ctx context.Context, problem *models.Problem) error {
	m.record("Update")
	return nil
}

func (m *MockProblemService) Delete(ctx context.Context, id string) error {
	m.record("Delete")
	return nil
}

func (m *MockProblemService) FindAll(ctx context.Context) ([]*models.Problem, error) {
	m.record("FindAll")
	return []*models.Problem{}, nil
}

func (m *MockProblemService) FindByID(ctx context.Context, id string) (*models.Problem, error) {
	m.record("FindByID")
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return &models.Problem{ID: id}, nil
}

func (m *MockProblemService) Search(ctx context.Context, criteria map[string]interface{}) ([]*models.Problem, error) {
	m.record("Search")
	return []*models.Problem{}, nil
}

func (m *MockProblemService) SearchPage(ctx context.Context, criteria map[string]interface{}, page, size int) ([]*models.Problem, int64, error) {
	m.record("SearchPage")
	return m.list(ctx, "search", "", page, size)
}

func (m *MockProblemService) NewList(ctx context.Context, labelID string, page, size int) ([]*models.Problem, int64, error) {
	m.record("NewList")
	return m.list(ctx, "new", labelID, page, size)
}

func (m *MockProblemService) HotList(ctx context.Context, labelID string, page, size int) ([]*models.Problem, int64, error) {
	m.record("HotList")
	return m.list(ctx, "hot", labelID, page, size)
}

func (m *MockProblemService) WaitList(ctx context.Context, labelID string, page, size int) ([]*models.Problem, int64, error) {
	m.record("WaitList")
	return m.list(ctx, "wait", labelID, page, size)
}

func (m *MockProblemService) Count(ctx context.Context) (int, error) {
	m.record("Count")
	return 0, nil
}

func (m *MockProblemService) list(ctx context.Context, list, labelID string, page, size int) ([]*models.Problem, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, list, labelID, page, size)
	}
	return []*models.Problem{}, 0, nil
}
