package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lifelog/internal/service"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

func parseUintParam(c *gin.Context, key string) (uint, error) {
	raw := c.Param(key)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return uint(id), nil
}

func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "100"))
	return offset, limit
}

// respondServiceError 把服务层错误分类映射到 HTTP 状态码。
func respondServiceError(c *gin.Context, err error) {
	var validation *service.ValidationError

	switch {
	case errors.As(err, &validation):
		respondError(c, http.StatusBadRequest, validation.Error())
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrLogExists):
		respondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrLogNotFound),
		errors.Is(err, service.ErrEntryNotFound),
		errors.Is(err, service.ErrRecommendationNotFound),
		errors.Is(err, service.ErrProfileNotFound):
		respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNotOwner):
		respondError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrBadCredentials),
		errors.Is(err, service.ErrTokenInvalid),
		errors.Is(err, service.ErrTokenExpired):
		respondError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrInsufficientData):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrGenerationFailed):
		respondError(c, http.StatusBadGateway, err.Error())
	default:
		respondError(c, http.StatusInternalServerError, "internal server error")
	}
}
