package repository

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/content-platform-api/internal/models"
)

var (
	_ ArticleRepository = (*articleRepo)(nil)
	_ ProblemRepository = (*problemRepo)(nil)
)

type fakeResult struct {
	rows int64
	err  error
}

func (f fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (f fakeResult) RowsAffected() (int64, error) { return f.rows, f.err }

func TestExpectOneRow(t *testing.T) {
	if err := expectOneRow(fakeResult{rows: 1}); err != nil {
		t.Errorf("Expected nil for one affected row, got %v", err)
	}
	if err := expectOneRow(fakeResult{rows: 0}); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for zero rows, got %v", err)
	}
	boom := errors.New("boom")
	if err := expectOneRow(fakeResult{err: boom}); !errors.Is(err, boom) {
		t.Errorf("Expected driver error to pass through, got %v", err)
	}
}

func TestNullTimeRoundTrip(t *testing.T) {
	if nullTime(nil).Valid {
		t.Error("nil time should map to NULL")
	}
	if timePtr(sql.NullTime{}) != nil {
		t.Error("NULL should map to nil time")
	}

	now := time.Now()
	got := timePtr(nullTime(&now))
	if got == nil || !got.Equal(now) {
		t.Errorf("Expected %v, got %v", now, got)
	}
}

func TestNew_WiresAllRepositories(t *testing.T) {
	repos := New(nil)
	if repos.Article == nil || repos.Problem == nil {
		t.Fatal("expected every repository to be initialised")
	}
}
