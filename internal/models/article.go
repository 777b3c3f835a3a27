package models

import (
	"time"
)

// Article represents an article in the system
type Article struct {
	ID         string     `json:"id" db:"id"`
	ColumnID   string     `json:"columnid" db:"columnid" validate:"max=20"`
	UserID     string     `json:"userid" db:"userid" validate:"max=20"`
	Title      string     `json:"title" db:"title" validate:"max=100"`
	Content    string     `json:"content" db:"content"`
	Image      string     `json:"image" db:"image" validate:"max=100"`
	CreateTime *time.Time `json:"createtime,omitempty" db:"createtime"`
	UpdateTime *time.Time `json:"updatetime,omitempty" db:"updatetime"`
	IsPublic   string     `json:"ispublic" db:"ispublic" validate:"omitempty,oneof=0 1"`
	IsTop      string     `json:"istop" db:"istop" validate:"omitempty,oneof=0 1"`
	Visits     int        `json:"visits" db:"visits" validate:"min=0"`
	Thumbup    int        `json:"thumbup" db:"thumbup"`
	Comment    int        `json:"comment" db:"comment" validate:"min=0"`
	State      string     `json:"state" db:"state" validate:"omitempty,oneof=0 1"`
	ChannelID  string     `json:"channelid" db:"channelid" validate:"max=20"`
	URL        string     `json:"url" db:"url" validate:"max=100"`
	Type       string     `json:"type" db:"type" validate:"max=1"`
}

// Article review states
const (
	ArticleStateDraft    = "0"
	ArticleStateReviewed = "1"
)

// ArticleCachePrefix is the cache key prefix for single articles
const ArticleCachePrefix = "article"

// Fields returns the article's columns as text, keyed by the names
// accepted in search criteria.
func (a *Article) Fields() map[string]string {
	return map[string]string{
		"id":        a.ID,
		"columnid":  a.ColumnID,
		"userid":    a.UserID,
		"title":     a.Title,
		"content":   a.Content,
		"image":     a.Image,
		"ispublic":  a.IsPublic,
		"istop":     a.IsTop,
		"state":     a.State,
		"channelid": a.ChannelID,
		"url":       a.URL,
		"type":      a.Type,
	}
}
