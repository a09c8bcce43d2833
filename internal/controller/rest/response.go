package rest

import (
	"errors"
	"net/http"

	"github.com/Freeeeeet/course_payments/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func respond(c *gin.Context, status int, body gin.H) {
	body["success"] = true
	c.JSON(status, body)
}

func fail(c *gin.Context, status int, message, details string) {
	body := gin.H{"success": false, "error": message}
	if details != "" {
		body["details"] = details
	}
	c.AbortWithStatusJSON(status, body)
}

// handleError переводит ошибку сервиса в HTTP-ответ
func (h *Handler) handleError(c *gin.Context, err error, notFound string) {
	var verr *service.ValidationError

	switch {
	case errors.As(err, &verr):
		body := gin.H{"success": false, "error": verr.Message, "details": verr.Error()}
		switch {
		case len(verr.Fields) == 0:
		case verr.Missing:
			body["missingFields"] = verr.Fields
		default:
			body["invalidFields"] = verr.Fields
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, body)
	case errors.Is(err, service.ErrNotFound):
		fail(c, http.StatusNotFound, notFound, "")
	case errors.Is(err, service.ErrInvalidState):
		fail(c, http.StatusBadRequest, "Invalid state", err.Error())
	case errors.Is(err, service.ErrForbidden):
		fail(c, http.StatusForbidden, "Access denied", err.Error())
	default:
		h.logger.Error("Request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		fail(c, http.StatusInternalServerError, "Internal server error", "")
	}
}

// pathID разбирает UUID из пути; некорректный ID равносилен неизвестному
func pathID(c *gin.Context, param, notFound string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		fail(c, http.StatusNotFound, notFound, "")
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON читает тело запроса; пустое тело даёт нулевую структуру
func bindJSON(c *gin.Context, dst any) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return false
	}
	return true
}
