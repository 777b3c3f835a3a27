package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/content-platform-api/internal/database"
	"github.com/content-platform-api/internal/filter"
	"github.com/content-platform-api/internal/models"
)

const articleColumns = `id, columnid, userid, title, content, image, createtime, updatetime,
	ispublic, istop, visits, thumbup, comment, state, channelid, url, type`

const articleUpdateQuery = `UPDATE articles SET columnid = $1, userid = $2, title = $3, content = $4, image = $5, ` +
	`updatetime = $6, ispublic = $7, istop = $8, visits = $9, thumbup = $10, ` +
	`comment = $11, state = $12, channelid = $13, url = $14, type = $15 WHERE id = $16`

// articleRepo is the concrete implementation of ArticleRepository
type articleRepo struct {
	db *database.DB
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(db *database.DB) ArticleRepository {
	return &articleRepo{db: db}
}

// Create inserts a new article
func (r *articleRepo) Create(ctx context.Context, a *models.Article) error {
	query := `
		INSERT INTO articles (` + articleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`
	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.ColumnID, a.UserID, a.Title, a.Content, a.Image,
		nullTime(a.CreateTime), nullTime(a.UpdateTime),
		a.IsPublic, a.IsTop, a.Visits, a.Thumbup, a.Comment, a.State,
		a.ChannelID, a.URL, a.Type,
	)
	return err
}

// Update overwrites an existing article. createtime is set once on insert
// and never rewritten.
func (r *articleRepo) Update(ctx context.Context, a *models.Article) error {
	result, err := r.db.ExecContext(ctx, articleUpdateQuery,
		a.ColumnID, a.UserID, a.Title, a.Content, a.Image,
		nullTime(a.UpdateTime), a.IsPublic, a.IsTop, a.Visits, a.Thumbup,
		a.Comment, a.State, a.ChannelID, a.URL, a.Type,
		a.ID,
	)
	if err != nil {
		return err
	}
	return expectOneRow(result)
}

// Delete removes an article by ID
func (r *articleRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM articles WHERE id = $1", id)
	if err != nil {
		return err
	}
	return expectOneRow(result)
}

// FindAll retrieves every article
func (r *articleRepo) FindAll(ctx context.Context) ([]*models.Article, error) {
	return r.query(ctx, "SELECT "+articleColumns+" FROM articles")
}

// FindByID retrieves an article by ID
func (r *articleRepo) FindByID(ctx context.Context, id string) (*models.Article, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+articleColumns+" FROM articles WHERE id = $1", id)
	article, err := scanArticle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return article, nil
}

// Search retrieves every article matching the predicate
func (r *articleRepo) Search(ctx context.Context, pred filter.Predicate) ([]*models.Article, error) {
	where, args := pred.SQL(0)
	return r.query(ctx, "SELECT "+articleColumns+" FROM articles WHERE "+where, args...)
}

// SearchPage retrieves one page of articles matching the predicate along
// with the total number of matches
func (r *articleRepo) SearchPage(ctx context.Context, pred filter.Predicate, offset, limit int) ([]*models.Article, int64, error) {
	where, args := pred.SQL(0)

	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM articles WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf("SELECT %s FROM articles WHERE %s ORDER BY id LIMIT $%d OFFSET $%d",
		articleColumns, where, len(args)+1, len(args)+2)
	articles, err := r.query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	return articles, total, nil
}

// UpdateState sets the review state of an article
func (r *articleRepo) UpdateState(ctx context.Context, id, state string) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, "UPDATE articles SET state = $1 WHERE id = $2", state, id)
		if err != nil {
			return err
		}
		return expectOneRow(result)
	})
}

// AdjustThumbup adds delta to the thumb-up counter in a single statement
func (r *articleRepo) AdjustThumbup(ctx context.Context, id string, delta int) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, "UPDATE articles SET thumbup = thumbup + $1 WHERE id = $2", delta, id)
		if err != nil {
			return err
		}
		return expectOneRow(result)
	})
}

// Count returns the total number of articles
func (r *articleRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM articles").Scan(&count)
	return count, err
}

func (r *articleRepo) query(ctx context.Context, query string, args ...interface{}) ([]*models.Article, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	articles := make([]*models.Article, 0)
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}
	return articles, rows.Err()
}

func scanArticle(s rowScanner) (*models.Article, error) {
	var a models.Article
	var createTime, updateTime sql.NullTime

	err := s.Scan(
		&a.ID, &a.ColumnID, &a.UserID, &a.Title, &a.Content, &a.Image,
		&createTime, &updateTime,
		&a.IsPublic, &a.IsTop, &a.Visits, &a.Thumbup, &a.Comment, &a.State,
		&a.ChannelID, &a.URL, &a.Type,
	)
	if err != nil {
		return nil, err
	}

	a.CreateTime = timePtr(createTime)
	a.UpdateTime = timePtr(updateTime)
	return &a, nil
}
