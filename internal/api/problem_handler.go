package api

import (
	"context"

	"github.com/content-platform-api/internal/models"
	"github.com/content-platform-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ProblemHandler handles Q&A endpoints
type ProblemHandler struct {
	svc service.ProblemService
	log zerolog.Logger
}

// NewProblemHandler creates a new ProblemHandler
func NewProblemHandler(svc service.ProblemService, log zerolog.Logger) *ProblemHandler {
	return &ProblemHandler{
		svc: svc,
		log: log.With().Str("handler", "problem").Logger(),
	}
}

// labelPage is the URI of the label-scoped lists
type labelPage struct {
	LabelID string `uri:"labelid" binding:"required,max=20"`
	Page    int    `uri:"page" binding:"required,min=1"`
	Size    int    `uri:"size" binding:"required,min=1,max=100"`
}

type labelLister func(ctx context.Context, labelID string, page, size int) ([]*models.Problem, int64, error)

// Save handles POST /problem
func (h *ProblemHandler) Save(c *gin.Context) {
	var problem models.Problem
	if err := c.ShouldBindJSON(&problem); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.svc.Save(c.Request.Context(), &problem); err != nil {
		fail(c, h.log, err, "failed to save problem")
		return
	}
	ok(c, "problem saved", problem)
}

// Update handles PUT /problem/:id
func (h *ProblemHandler) Update(c *gin.Context) {
	var problem models.Problem
	if err := c.ShouldBindJSON(&problem); err != nil {
		badRequest(c, err)
		return
	}
	problem.ID = c.Param("id")

	if err := h.svc.Update(c.Request.Context(), &problem); err != nil {
		fail(c, h.log, err, "failed to update problem")
		return
	}
	ok(c, "problem updated", nil)
}

// Delete handles DELETE /problem/:id
func (h *ProblemHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, h.log, err, "failed to delete problem")
		return
	}
	ok(c, "problem deleted", nil)
}

// FindAll handles GET /problem
func (h *ProblemHandler) FindAll(c *gin.Context) {
	problems, err := h.svc.FindAll(c.Request.Context())
	if err != nil {
		fail(c, h.log, err, "failed to list problems")
		return
	}
	ok(c, "query succeeded", problems)
}

// FindByID handles GET /problem/:id
func (h *ProblemHandler) FindByID(c *gin.Context) {
	problem, err := h.svc.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.log, err, "failed to load problem")
		return
	}
	ok(c, "query succeeded", problem)
}

// Search handles POST /problem/search
func (h *ProblemHandler) Search(c *gin.Context) {
	criteria, err := bindCriteria(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	problems, err := h.svc.Search(c.Request.Context(), criteria)
	if err != nil {
		fail(c, h.log, err, "failed to search problems")
		return
	}
	ok(c, "query succeeded", problems)
}

// SearchPage handles POST /problem/search/:page/:size
func (h *ProblemHandler) SearchPage(c *gin.Context) {
	var page models.Page
	if err := c.ShouldBindUri(&page); err != nil {
		badRequest(c, err)
		return
	}
	criteria, err := bindCriteria(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	problems, total, err := h.svc.SearchPage(c.Request.Context(), criteria, page.Page, page.Size)
	if err != nil {
		fail(c, h.log, err, "failed to search problems")
		return
	}
	okPage(c, total, problems)
}

// NewList handles GET /problem/newlist/:labelid/:page/:size
func (h *ProblemHandler) NewList(c *gin.Context) {
	h.labelList(c, h.svc.NewList)
}

// HotList handles GET /problem/hotlist/:labelid/:page/:size
func (h *ProblemHandler) HotList(c *gin.Context) {
	h.labelList(c, h.svc.HotList)
}

// WaitList handles GET /problem/waitlist/:labelid/:page/:size
func (h *ProblemHandler) WaitList(c *gin.Context) {
	h.labelList(c, h.svc.WaitList)
}

func (h *ProblemHandler) labelList(c *gin.Context, list labelLister) {
	var req labelPage
	if err := c.ShouldBindUri(&req); err != nil {
		badRequest(c, err)
		return
	}

	problems, total, err := list(c.Request.Context(), req.LabelID, req.Page, req.Size)
	if err != nil {
		fail(c, h.log, err, "failed to list problems")
		return
	}
	okPage(c, total, problems)
}
