package api

import (
	"errors"
	"net/http"

	"github.com/content-platform-api/internal/models"
	"github.com/content-platform-api/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func ok(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, models.Result{
		Success: true,
		Code:    models.StatusOK,
		Message: message,
		Data:    data,
	})
}

func okPage(c *gin.Context, total int64, rows interface{}) {
	ok(c, "query succeeded", models.PageResult{Total: total, Rows: rows})
}

// badRequest rejects malformed input before it reaches a service
func badRequest(c *gin.Context, err error) {
	result := models.Result{
		Success: false,
		Code:    models.StatusError,
		Message: err.Error(),
	}
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		result.Message = "validation failed"
		result.Data = verrs
	}
	c.JSON(http.StatusBadRequest, result)
}

// fail maps a service error onto the envelope. Not-found and invalid
// input keep their own codes; anything else is logged and reported as a
// generic error without leaking the cause.
func fail(c *gin.Context, log zerolog.Logger, err error, msg string) {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs), errors.Is(err, models.ErrInvalidPage):
		badRequest(c, err)
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusOK, models.Result{
			Success: false,
			Code:    models.StatusNotFound,
			Message: "record not found",
		})
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg(msg)
		c.JSON(http.StatusOK, models.Result{
			Success: false,
			Code:    models.StatusError,
			Message: msg,
		})
	}
}
