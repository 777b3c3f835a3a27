package api

import (
	"errors"
	"io"

	"github.com/content-platform-api/internal/models"
	"github.com/content-platform-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ArticleHandler handles article endpoints
type ArticleHandler struct {
	svc service.ArticleService
	log zerolog.Logger
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(svc service.ArticleService, log zerolog.Logger) *ArticleHandler {
	return &ArticleHandler{
		svc: svc,
		log: log.With().Str("handler", "article").Logger(),
	}
}

// Save handles POST /article
func (h *ArticleHandler) Save(c *gin.Context) {
	var article models.Article
	if err := c.ShouldBindJSON(&article); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.svc.Save(c.Request.Context(), &article); err != nil {
		fail(c, h.log, err, "failed to save article")
		return
	}
	ok(c, "article saved", article)
}

// Update handles PUT /article/:id. The path ID overrides any ID in the body.
func (h *ArticleHandler) Update(c *gin.Context) {
	var article models.Article
	if err := c.ShouldBindJSON(&article); err != nil {
		badRequest(c, err)
		return
	}
	article.ID = c.Param("id")

	if err := h.svc.Update(c.Request.Context(), &article); err != nil {
		fail(c, h.log, err, "failed to update article")
		return
	}
	ok(c, "article updated", nil)
}

// Delete handles DELETE /article/:id
func (h *ArticleHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, h.log, err, "failed to delete article")
		return
	}
	ok(c, "article deleted", nil)
}

// FindAll handles GET /article
func (h *ArticleHandler) FindAll(c *gin.Context) {
	articles, err := h.svc.FindAll(c.Request.Context())
	if err != nil {
		fail(c, h.log, err, "failed to list articles")
		return
	}
	ok(c, "query succeeded", articles)
}

// FindByID handles GET /article/:id
func (h *ArticleHandler) FindByID(c *gin.Context) {
	article, err := h.svc.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.log, err, "failed to load article")
		return
	}
	ok(c, "query succeeded", article)
}

// Search handles POST /article/search
func (h *ArticleHandler) Search(c *gin.Context) {
	criteria, err := bindCriteria(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	articles, err := h.svc.Search(c.Request.Context(), criteria)
	if err != nil {
		fail(c, h.log, err, "failed to search articles")
		return
	}
	ok(c, "query succeeded", articles)
}

// SearchPage handles POST /article/search/:page/:size
func (h *ArticleHandler) SearchPage(c *gin.Context) {
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

	articles, total, err := h.svc.SearchPage(c.Request.Context(), criteria, page.Page, page.Size)
	if err != nil {
		fail(c, h.log, err, "failed to search articles")
		return
	}
	okPage(c, total, articles)
}

// Examine handles PUT /article/examine/:id
func (h *ArticleHandler) Examine(c *gin.Context) {
	if err := h.svc.Examine(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, h.log, err, "failed to examine article")
		return
	}
	ok(c, "article reviewed", nil)
}

// Thumbup handles PUT /article/thumbup/:id
func (h *ArticleHandler) Thumbup(c *gin.Context) {
	if err := h.svc.Thumbup(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, h.log, err, "failed to thumb up article")
		return
	}
	ok(c, "thumbed up", nil)
}

// CancelThumbup handles DELETE /article/thumbup/:id
func (h *ArticleHandler) CancelThumbup(c *gin.Context) {
	if err := h.svc.CancelThumbup(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, h.log, err, "failed to cancel thumb up")
		return
	}
	ok(c, "thumb up cancelled", nil)
}

// bindCriteria reads a JSON object of search criteria. An empty body is
// an empty mapping.
func bindCriteria(c *gin.Context) (map[string]interface{}, error) {
	criteria := make(map[string]interface{})
	if err := c.ShouldBindJSON(&criteria); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return criteria, nil
}
