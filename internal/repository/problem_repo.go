package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/content-platform-api/internal/database"
	"github.com/content-platform-api/internal/filter"
	"github.com/content-platform-api/internal/models"
	"github.com/lib/pq"
)

const problemColumns = `p.id, p.title, p.content, p.createtime, p.updatetime, p.userid, p.nickname,
	p.visits, p.thumbup, p.reply, p.solve, p.replyname, p.replytime`

const (
	problemInsertQuery = `INSERT INTO problems (id, title, content, createtime, updatetime, userid, nickname, ` +
		`visits, thumbup, reply, solve, replyname, replytime) ` +
		`VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	problemUpdateQuery = `UPDATE problems SET title = $1, content = $2, updatetime = $3, userid = $4, ` +
		`nickname = $5, visits = $6, thumbup = $7, reply = $8, solve = $9, ` +
		`replyname = $10, replytime = $11 WHERE id = $12`

	labelInsertQuery = `INSERT INTO problem_labels (problemid, labelid) ` +
		`SELECT $1, l FROM unnest($2::text[]) AS l ON CONFLICT DO NOTHING`

	labelDeleteQuery = `DELETE FROM problem_labels WHERE problemid = $1`

	labelSelectQuery = `SELECT problemid, labelid FROM problem_labels ` +
		`WHERE problemid = ANY($1) ORDER BY problemid, labelid`

	labelJoin = "problems p JOIN problem_labels pl ON pl.problemid = p.id WHERE pl.labelid = $1"
)

// problemRepo is the concrete implementation of ProblemRepository
type problemRepo struct {
	db *database.DB
}

// NewProblemRepo creates a new problem repository
func NewProblemRepo(db *database.DB) ProblemRepository {
	return &problemRepo{db: db}
}

// Create inserts a new problem and its label links
func (r *problemRepo) Create(ctx context.Context, p *models.Problem) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, problemInsertQuery,
			p.ID, p.Title, p.Content, nullTime(p.CreateTime), nullTime(p.UpdateTime),
			p.UserID, p.NickName, p.Visits, p.Thumbup, p.Reply, p.Solve, p.ReplyName,
			nullTime(p.ReplyTime),
		)
		if err != nil {
			return err
		}
		return insertLabels(ctx, tx, p.ID, p.LabelIDs)
	})
}

// Update overwrites an existing problem except its createtime. Label
// links are replaced only when LabelIDs is non-nil.
func (r *problemRepo) Update(ctx context.Context, p *models.Problem) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, problemUpdateQuery,
			p.Title, p.Content, nullTime(p.UpdateTime), p.UserID,
			p.NickName, p.Visits, p.Thumbup, p.Reply, p.Solve,
			p.ReplyName, nullTime(p.ReplyTime),
			p.ID,
		)
		if err != nil {
			return err
		}
		if err := expectOneRow(result); err != nil {
			return err
		}

		if p.LabelIDs == nil {
			return nil
		}
		if _, err := tx.ExecContext(ctx, labelDeleteQuery, p.ID); err != nil {
			return err
		}
		return insertLabels(ctx, tx, p.ID, p.LabelIDs)
	})
}

// Delete removes a problem by ID; label links cascade
func (r *problemRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM problems WHERE id = $1", id)
	if err != nil {
		return err
	}
	return expectOneRow(result)
}

// FindAll retrieves every problem
func (r *problemRepo) FindAll(ctx context.Context) ([]*models.Problem, error) {
	return r.query(ctx, "SELECT "+problemColumns+" FROM problems p")
}

// FindByID retrieves a problem and its label IDs
func (r *problemRepo) FindByID(ctx context.Context, id string) (*models.Problem, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+problemColumns+" FROM problems p WHERE p.id = $1", id)
	problem, err := scanProblem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := r.attachLabels(ctx, []*models.Problem{problem}); err != nil {
		return nil, err
	}
	return problem, nil
}

// Search retrieves every problem matching the predicate
func (r *problemRepo) Search(ctx context.Context, pred filter.Predicate) ([]*models.Problem, error) {
	where, args := pred.SQL(0)
	return r.query(ctx, "SELECT "+problemColumns+" FROM problems p WHERE "+where, args...)
}

// SearchPage retrieves one page of problems matching the predicate along
// with the total number of matches
func (r *problemRepo) SearchPage(ctx context.Context, pred filter.Predicate, offset, limit int) ([]*models.Problem, int64, error) {
	where, args := pred.SQL(0)
	return r.page(ctx, "problems p WHERE "+where, "p.id", args, offset, limit)
}

// NewestByLabel pages a label's problems by most recent reply first
func (r *problemRepo) NewestByLabel(ctx context.Context, labelID string, offset, limit int) ([]*models.Problem, int64, error) {
	return r.page(ctx, labelJoin, "p.replytime DESC NULLS LAST, p.id", []interface{}{labelID}, offset, limit)
}

// HottestByLabel pages a label's problems by reply count, highest first
func (r *problemRepo) HottestByLabel(ctx context.Context, labelID string, offset, limit int) ([]*models.Problem, int64, error) {
	return r.page(ctx, labelJoin, "p.reply DESC, p.id", []interface{}{labelID}, offset, limit)
}

// UnansweredByLabel pages a label's problems that have no reply, newest first
func (r *problemRepo) UnansweredByLabel(ctx context.Context, labelID string, offset, limit int) ([]*models.Problem, int64, error) {
	return r.page(ctx, labelJoin+" AND p.reply = 0", "p.createtime DESC NULLS LAST, p.id", []interface{}{labelID}, offset, limit)
}

// Count returns the total number of problems
func (r *problemRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM problems").Scan(&count)
	return count, err
}

// page runs a COUNT and a LIMIT/OFFSET select over the same FROM/WHERE body
func (r *problemRepo) page(ctx context.Context, from, orderBy string, args []interface{}, offset, limit int) ([]*models.Problem, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+from, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY %s LIMIT $%d OFFSET $%d",
		problemColumns, from, orderBy, len(args)+1, len(args)+2)
	problems, err := r.query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	return problems, total, nil
}

// query scans the matching problems, then loads their labels
func (r *problemRepo) query(ctx context.Context, query string, args ...interface{}) ([]*models.Problem, error) {
	problems, err := r.scanAll(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if err := r.attachLabels(ctx, problems); err != nil {
		return nil, err
	}
	return problems, nil
}

func (r *problemRepo) scanAll(ctx context.Context, query string, args ...interface{}) ([]*models.Problem, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	problems := make([]*models.Problem, 0)
	for rows.Next() {
		problem, err := scanProblem(rows)
		if err != nil {
			return nil, err
		}
		problems = append(problems, problem)
	}
	return problems, rows.Err()
}

// attachLabels fills LabelIDs of every problem with one query. Problems
// without labels keep a nil slice.
func (r *problemRepo) attachLabels(ctx context.Context, problems []*models.Problem) error {
	if len(problems) == 0 {
		return nil
	}

	byID := make(map[string]*models.Problem, len(problems))
	ids := make([]string, 0, len(problems))
	for _, p := range problems {
		byID[p.ID] = p
		ids = append(ids, p.ID)
	}

	rows, err := r.db.QueryContext(ctx, labelSelectQuery, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to load labels: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var problemID, labelID string
		if err := rows.Scan(&problemID, &labelID); err != nil {
			return err
		}
		if p, ok := byID[problemID]; ok {
			p.LabelIDs = append(p.LabelIDs, labelID)
		}
	}
	return rows.Err()
}

func insertLabels(ctx context.Context, tx *sql.Tx, problemID string, labelIDs []string) error {
	if len(labelIDs) == 0 {
		return nil
	}
	_, err := tx.ExecContext(ctx, labelInsertQuery, problemID, pq.Array(labelIDs))
	return err
}

func scanProblem(s rowScanner) (*models.Problem, error) {
	var p models.Problem
	var createTime, updateTime, replyTime sql.NullTime

	err := s.Scan(
		&p.ID, &p.Title, &p.Content, &createTime, &updateTime, &p.UserID, &p.NickName,
		&p.Visits, &p.Thumbup, &p.Reply, &p.Solve, &p.ReplyName, &replyTime,
	)
	if err != nil {
		return nil, err
	}

	p.CreateTime = timePtr(createTime)
	p.UpdateTime = timePtr(updateTime)
	p.ReplyTime = timePtr(replyTime)
	return &p, nil
}
