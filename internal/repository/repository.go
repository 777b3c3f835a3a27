package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/content-platform-api/internal/database"
	"github.com/content-platform-api/internal/filter"
	"github.com/content-platform-api/internal/models"
)

// ArticleRepository defines the interface for article data operations
type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) error
	Update(ctx context.Context, article *models.Article) error
	Delete(ctx context.Context, id string) error
	FindAll(ctx context.Context) ([]*models.Article, error)
	FindByID(ctx context.Context, id string) (*models.Article, error)
	Search(ctx context.Context, pred filter.Predicate) ([]*models.Article, error)
	SearchPage(ctx context.Context, pred filter.Predicate, offset, limit int) ([]*models.Article, int64, error)
	UpdateState(ctx context.Context, id, state string) error
	AdjustThumbup(ctx context.Context, id string, delta int) error
	Count(ctx context.Context) (int, error)
}

// ProblemRepository defines the interface for problem data operations
type ProblemRepository interface {
	Create(ctx context.Context, problem *models.Problem) error
	Update(ctx context.Context, problem *models.Problem) error
	Delete(ctx context.Context, id string) error
	FindAll(ctx context.Context) ([]*models.Problem, error)
	FindByID(ctx context.Context, id string) (*models.Problem, error)
	Search(ctx context.Context, pred filter.Predicate) ([]*models.Problem, error)
	SearchPage(ctx context.Context, pred filter.Predicate, offset, limit int) ([]*models.Problem, int64, error)
	NewestByLabel(ctx context.Context, labelID string, offset, limit int) ([]*models.Problem, int64, error)
	HottestByLabel(ctx context.Context, labelID string, offset, limit int) ([]*models.Problem, int64, error)
	UnansweredByLabel(ctx context.Context, labelID string, offset, limit int) ([]*models.Problem, int64, error)
	Count(ctx context.Context) (int, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Article ArticleRepository
	Problem ProblemRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Article: NewArticleRepo(db),
		Problem: NewProblemRepo(db),
	}
}

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// expectOneRow maps an UPDATE/DELETE that touched nothing to ErrNotFound
func expectOneRow(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrNotFound
	}
	return nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
