package admin

import (
	"strconv"
	"strings"

	handlershared "github.com/foodgram-next/internal/http/handlers/shared"
	"github.com/foodgram-next/internal/http/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	respondError     = handlershared.RespondError
	respondBindError = handlershared.RespondBindError
	getOperatorID    = handlershared.CurrentUserID
	currentUserID    = handlershared.OptionalUserID
)

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c).With("scope", "admin")
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.invalid_id", nil)
		return 0, false
	}
	return uint(id), true
}

func parseOptionalUintQuery(c *gin.Context, key string) (uint, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, true
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return 0, false
	}
	return uint(value), true
}

func (h *Handler) pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return handlershared.NormalizePagination(h.Config.Pagination, page, limit)
}
