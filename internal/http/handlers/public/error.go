package public

import (
	"strconv"

	handlershared "github.com/foodgram-next/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	respondError        = handlershared.RespondError
	respondErrorWithMsg = handlershared.RespondErrorWithMsg
	respondBindError    = handlershared.RespondBindError
)

// pageParams 读取 page / limit 查询参数
func (h *Handler) pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return handlershared.NormalizePagination(h.Config.Pagination, page, limit)
}

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}
