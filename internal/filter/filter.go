// Package filter turns a search criteria mapping into a conjunction of
// substring conditions over an allow-listed set of columns.
package filter

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Fields maps a criteria key to the column it filters
type Fields map[string]string

// ArticleFields are the search keys accepted by the article service
var ArticleFields = Fields{
	"id":        "id",
	"columnid":  "columnid",
	"userid":    "userid",
	"title":     "title",
	"content":   "content",
	"image":     "image",
	"ispublic":  "ispublic",
	"istop":     "istop",
	"state":     "state",
	"channelid": "channelid",
	"url":       "url",
	"type":      "type",
}

// ProblemFields are the search keys accepted by the qa service
var ProblemFields = Fields{
	"id":        "id",
	"title":     "title",
	"content":   "content",
	"userid":    "userid",
	"nickname":  "nickname",
	"solve":     "solve",
	"replyname": "replyname",
}

// Condition is a single "column contains value" test
type Condition struct {
	Key    string
	Column string
	Value  string
}

// Predicate is the AND of its conditions. An empty predicate matches every row.
type Predicate struct {
	Conditions []Condition
}

// Build collects one condition per allow-listed key whose value is
// non-nil and not empty once stringified. Unknown keys are ignored.
func Build(fields Fields, criteria map[string]interface{}) Predicate {
	keys := make([]string, 0, len(criteria))
	for key := range criteria {
		keys = append(keys, key)
	}
	// stable argument order keeps generated SQL deterministic
	sort.Strings(keys)

	var p Predicate
	for _, key := range keys {
		column, ok := fields[key]
		if !ok {
			continue
		}
		value := criteria[key]
		if value == nil {
			continue
		}
		text := stringify(value)
		if text == "" {
			continue
		}
		p.Conditions = append(p.Conditions, Condition{Key: key, Column: column, Value: text})
	}
	return p
}

// Empty reports whether the predicate matches all rows
func (p Predicate) Empty() bool {
	return len(p.Conditions) == 0
}

// SQL renders the predicate as a WHERE clause body. Placeholders are
// numbered from argOffset+1 so the clause can be embedded in a larger
// statement.
func (p Predicate) SQL(argOffset int) (string, []interface{}) {
	if p.Empty() {
		return "TRUE", nil
	}

	parts := make([]string, 0, len(p.Conditions))
	args := make([]interface{}, 0, len(p.Conditions))
	for i, c := range p.Conditions {
		parts = append(parts, fmt.Sprintf(`CAST(%s AS TEXT) LIKE $%d ESCAPE '\'`, c.Column, argOffset+i+1))
		args = append(args, "%"+escapeLike(c.Value)+"%")
	}
	return strings.Join(parts, " AND "), args
}

// Match evaluates the predicate against a row given as key -> text.
func (p Predicate) Match(row map[string]string) bool {
	for _, c := range p.Conditions {
		if !strings.Contains(row[c.Key], c.Value) {
			return false
		}
	}
	return true
}

func stringify(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		// JSON numbers decode as float64; 7 must compare as "7", not "7e+00"
		if t == math.Trunc(t) && math.Abs(t) < 1e15 {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprint(t)
	default:
		return fmt.Sprint(t)
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
