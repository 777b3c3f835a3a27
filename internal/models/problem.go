package models

import (
	"time"
)

// Problem represents a question in the Q&A service
type Problem struct {
	ID         string     `json:"id" db:"id"`
	Title      string     `json:"title" db:"title" validate:"max=100"`
	Content    string     `json:"content" db:"content"`
	CreateTime *time.Time `json:"createtime,omitempty" db:"createtime"`
	UpdateTime *time.Time `json:"updatetime,omitempty" db:"updatetime"`
	UserID     string     `json:"userid" db:"userid" validate:"max=20"`
	NickName   string     `json:"nickname" db:"nickname" validate:"max=100"`
	Visits     int        `json:"visits" db:"visits" validate:"min=0"`
	Thumbup    int        `json:"thumbup" db:"thumbup"`
	Reply      int        `json:"reply" db:"reply" validate:"min=0"`
	Solve      string     `json:"solve" db:"solve" validate:"omitempty,oneof=0 1"`
	ReplyName  string     `json:"replyname" db:"replyname" validate:"max=100"`
	ReplyTime  *time.Time `json:"replytime,omitempty" db:"replytime"`
	LabelIDs   []string   `json:"labelids,omitempty" db:"-" validate:"dive,required,max=20"`
}

// ProblemCachePrefix is the cache key prefix for single problems
const ProblemCachePrefix = "problem"

// Fields returns the problem's columns as text, keyed by the names
// accepted in search criteria.
func (p *Problem) Fields() map[string]string {
	return map[string]string{
		"id":        p.ID,
		"title":     p.Title,
		"content":   p.Content,
		"userid":    p.UserID,
		"nickname":  p.NickName,
		"solve":     p.Solve,
		"replyname": p.ReplyName,
	}
}
