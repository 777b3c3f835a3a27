package models

import "errors"

var (
	// ErrNotFound is returned when a lookup by ID matches no row
	ErrNotFound = errors.New("record not found")
	// ErrInvalidPage is returned for page numbers or sizes below 1, or
	// pages whose row offset does not fit in an int
	ErrInvalidPage = errors.New("page or size out of range")
)

// Application status codes carried in the response envelope. The login,
// access, remote and repeat codes (20002-20005) belong to the table shared
// with the platform's auth and gateway services; the content services
// never emit them but keep the numbering so clients decode one table.
const (
	StatusOK          = 20000
	StatusError       = 20001
	StatusLoginError  = 20002
	StatusAccessError = 20003
	StatusRemoteError = 20004
	StatusRepError    = 20005
	StatusNotFound    = 20006
)

// Result is the uniform envelope returned by every endpoint
type Result struct {
	Success bool        `json:"success"`
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// PageResult is the payload of paged queries
type PageResult struct {
	Total int64       `json:"total"`
	Rows  interface{} `json:"rows"`
}

// Page holds a 1-based page request
type Page struct {
	Page int `uri:"page" binding:"required,min=1"`
	Size int `uri:"size" binding:"required,min=1,max=100"`
}

// Offset returns the 0-based row offset of the page
func (p Page) Offset() int {
	return (p.Page - 1) * p.Size
}
