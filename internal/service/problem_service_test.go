package service_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/content-platform-api/internal/cache"
	"github.com/content-platform-api/internal/config"
	"github.com/content-platform-api/internal/idgen"
	"github.com/content-platform-api/internal/mocks"
	"github.com/content-platform-api/internal/models"
	"github.com/content-platform-api/internal/repository"
	"github.com/content-platform-api/internal/service"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// spyRecorder counts cache outcomes per entity
type spyRecorder struct {
	mu     sync.Mutex
	hits   map[string]int
	misses map[string]int
	errs   map[string]int
}

func newSpyRecorder() *spyRecorder {
	return &spyRecorder{hits: map[string]int{}, misses: map[string]int{}, errs: map[string]int{}}
}

func (r *spyRecorder) RecordCacheHit(entity string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hits[entity]++
}

func (r *spyRecorder) RecordCacheMiss(entity string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.misses[entity]++
}

func (r *spyRecorder) RecordCacheError(entity, op string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs[entity+"/"+op]++
}

func (r *spyRecorder) RecordRequest(string, string, int, time.Duration) {}

// failingStore errors on every operation
type failingStore struct{}

func (failingStore) Get(context.Context, string, interface{}) (bool, error) {
	return false, errors.New("cache down")
}
func (failingStore) Set(context.Context, string, interface{}, time.Duration) error {
	return errors.New("cache down")
}
func (failingStore) Delete(context.Context, string) error { return errors.New("cache down") }
func (failingStore) Ping(context.Context) error           { return errors.New("cache down") }
func (failingStore) Close() error                         { return nil }

func newProblemService(t *testing.T, store cache.Store, rec *spyRecorder) (service.ProblemService, *mocks.MockProblemRepository) {
	t.Helper()

	var mu sync.Mutex
	next := 0
	ids := idgen.GeneratorFunc(func() string {
		mu.Lock()
		defer mu.Unlock()
		next++
		return fmt.Sprintf("p%03d", next)
	})

	repo := mocks.NewMockProblemRepository()
	cfg := &config.Config{Cache: config.CacheConfig{TTL: time.Minute}}
	services := service.NewServices(
		&repository.Repositories{Problem: repo},
		service.Dependencies{Cache: store, IDs: ids, Metrics: rec},
		cfg,
		zerolog.Nop(),
	)
	require.Nil(t, services.Article)
	return services.Problem, repo
}

func newMemoryStore(t *testing.T) cache.Store {
	t.Helper()
	store, err := cache.NewMemoryStore(100, time.Minute)
	require.NoError(t, err)
	return store
}

func TestProblemService_SaveAssignsSequentialIDs(t *testing.T) {
	svc, repo := newProblemService(t, newMemoryStore(t), newSpyRecorder())
	ctx := context.Background()

	first := &models.Problem{Title: "one", LabelIDs: []string{"go"}}
	second := &models.Problem{Title: "two"}
	require.NoError(t, svc.Save(ctx, first))
	require.NoError(t, svc.Save(ctx, second))

	assert.Equal(t, "p001", first.ID)
	assert.Equal(t, "p002", second.ID)
	assert.NotNil(t, first.CreateTime)
	assert.Len(t, repo.Problems, 2)
	assert.Equal(t, []string{"go"}, repo.Problems["p001"].LabelIDs)
}

func TestProblemService_FindByID_CacheAside(t *testing.T) {
	rec := newSpyRecorder()
	svc, repo := newProblemService(t, newMemoryStore(t), rec)
	ctx := context.Background()

	problem := &models.Problem{Title: "why", LabelIDs: []string{"go", "db"}}
	require.NoError(t, svc.Save(ctx, problem))

	for i := 0; i < 3; i++ {
		found, err := svc.FindByID(ctx, problem.ID)
		require.NoError(t, err)
		assert.Equal(t, "why", found.Title)
		assert.Equal(t, []string{"go", "db"}, found.LabelIDs)
	}

	assert.Equal(t, 1, repo.FindCalls)
	assert.Equal(t, 1, rec.misses["problem"])
	assert.Equal(t, 2, rec.hits["problem"])
}

func TestProblemService_UpdateKeepsLabelsAndInvalidates(t *testing.T) {
	svc, _ := newProblemService(t, newMemoryStore(t), newSpyRecorder())
	ctx := context.Background()

	problem := &models.Problem{Title: "old", LabelIDs: []string{"go"}}
	require.NoError(t, svc.Save(ctx, problem))
	_, err := svc.FindByID(ctx, problem.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Update(ctx, &models.Problem{ID: problem.ID, Title: "new"}))

	found, err := svc.FindByID(ctx, problem.ID)
	require.NoError(t, err)
	assert.Equal(t, "new", found.Title)
	assert.Equal(t, []string{"go"}, found.LabelIDs)
}

func TestProblemService_DeleteThenFindByID(t *testing.T) {
	svc, _ := newProblemService(t, newMemoryStore(t), newSpyRecorder())
	ctx := context.Background()

	problem := &models.Problem{Title: "gone"}
	require.NoError(t, svc.Save(ctx, problem))
	_, err := svc.FindByID(ctx, problem.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, problem.ID))
	_, err = svc.FindByID(ctx, problem.ID)
	assert.True(t, errors.Is(err, models.ErrNotFound))

	err = svc.Delete(ctx, problem.ID)
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestProblemService_CacheFailureDegrades(t *testing.T) {
	rec := newSpyRecorder()
	svc, repo := newProblemService(t, failingStore{}, rec)
	ctx := context.Background()

	problem := &models.Problem{Title: "resilient"}
	require.NoError(t, svc.Save(ctx, problem))

	found, err := svc.FindByID(ctx, problem.ID)
	require.NoError(t, err)
	assert.Equal(t, "resilient", found.Title)
	_, err = svc.FindByID(ctx, problem.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Update(ctx, &models.Problem{ID: problem.ID, Title: "still"}))

	assert.Equal(t, 2, repo.FindCalls)
	assert.Equal(t, 2, rec.errs["problem/get"])
	assert.Equal(t, 2, rec.errs["problem/set"])
	assert.Equal(t, 1, rec.errs["problem/delete"])
}

func TestProblemService_SearchAndPage(t *testing.T) {
	svc, _ := newProblemService(t, cache.NewNopStore(), newSpyRecorder())
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		solve := "0"
		if i%3 == 0 {
			solve = "1"
		}
		require.NoError(t, svc.Save(ctx, &models.Problem{Title: fmt.Sprintf("q%d", i), Solve: solve}))
	}

	solved, err := svc.Search(ctx, map[string]interface{}{"solve": "1"})
	require.NoError(t, err)
	assert.Len(t, solved, 4)

	// unknown keys are ignored
	all, err := svc.Search(ctx, map[string]interface{}{"unknown": "x"})
	require.NoError(t, err)
	assert.Len(t, all, 12)

	rows, total, err := svc.SearchPage(ctx, map[string]interface{}{"solve": "0"}, 2, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(8), total)
	assert.Len(t, rows, 3)
}

func TestProblemService_LabelLists(t *testing.T) {
	svc, repo := newProblemService(t, cache.NewNopStore(), newSpyRecorder())
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	at := func(h int) *time.Time {
		ts := base.Add(time.Duration(h) * time.Hour)
		return &ts
	}

	repo.Problems["a"] = &models.Problem{ID: "a", LabelIDs: []string{"go"}, Reply: 3, ReplyTime: at(1), CreateTime: at(0)}
	repo.Problems["b"] = &models.Problem{ID: "b", LabelIDs: []string{"go"}, Reply: 9, ReplyTime: at(5), CreateTime: at(1)}
	repo.Problems["c"] = &models.Problem{ID: "c", LabelIDs: []string{"go", "db"}, Reply: 0, CreateTime: at(2)}
	repo.Problems["d"] = &models.Problem{ID: "d", LabelIDs: []string{"go"}, Reply: 0, CreateTime: at(4)}
	repo.Problems["e"] = &models.Problem{ID: "e", LabelIDs: []string{"db"}, Reply: 20, ReplyTime: at(9)}

	ids := func(ps []*models.Problem) []string {
		out := make([]string, len(ps))
		for i, p := range ps {
			out[i] = p.ID
		}
		return out
	}

	newest, total, err := svc.NewList(ctx, "go", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Equal(t, []string{"b", "a", "c", "d"}, ids(newest))

	hottest, _, err := svc.HotList(ctx, "go", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, ids(hottest))

	waiting, total, err := svc.WaitList(ctx, "go", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, []string{"d", "c"}, ids(waiting))

	_, _, err = svc.WaitList(ctx, "go", 0, 10)
	assert.True(t, errors.Is(err, models.ErrInvalidPage))

	count, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestProblemService_SaveRejectsInvalidLabels(t *testing.T) {
	svc, repo := newProblemService(t, cache.NewNopStore(), newSpyRecorder())

	err := svc.Save(context.Background(), &models.Problem{Title: "x", LabelIDs: []string{""}})
	require.Error(t, err)
	assert.Empty(t, repo.Problems)
}

func TestProblemService_UpdateKeepsCreateTime(t *testing.T) {
	svc, _ := newProblemService(t, newMemoryStore(t), newSpyRecorder())
	ctx := context.Background()

	problem := &models.Problem{Title: "asked"}
	require.NoError(t, svc.Save(ctx, problem))
	created := *problem.CreateTime

	require.NoError(t, svc.Update(ctx, &models.Problem{ID: problem.ID, Title: "reworded"}))

	found, err := svc.FindByID(ctx, problem.ID)
	require.NoError(t, err)
	require.NotNil(t, found.CreateTime)
	assert.True(t, created.Equal(*found.CreateTime))
}
