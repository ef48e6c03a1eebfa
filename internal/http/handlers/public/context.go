package public

import (
	"strconv"
	"strings"

	handlershared "github.com/foodgram-next/internal/http/handlers/shared"
	"github.com/foodgram-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

var (
	getUserID      = handlershared.CurrentUserID
	optionalUserID = handlershared.OptionalUserID
)

func parseIDParam(c *gin.Context, key string) (uint, bool) {
	raw := strings.TrimSpace(c.Param(key))
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.invalid_id", nil)
		return 0, false
	}
	return uint(id), true
}

func queryFlag(c *gin.Context, key string) bool {
	switch strings.ToLower(strings.TrimSpace(c.Query(key))) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}
