package public

import (
	"strconv"

	"github.com/foodgram-next/internal/http/handlers/shared"
	"github.com/foodgram-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// recipesLimitParam recipes_limit 缺省或非法时不限制
func recipesLimitParam(c *gin.Context) int {
	limit, err := strconv.Atoi(c.Query("recipes_limit"))
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}

// ListSubscriptions 当前用户订阅的作者
func (h *Handler) ListSubscriptions(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	page, limit := h.pageParams(c)
	items, total, err := h.SubscriptionService.ListSubscriptions(userID, page, limit, recipesLimitParam(c))
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	result := make([]SubscriptionView, 0, len(items))
	for _, item := range items {
		result = append(result, toSubscriptionView(item))
	}
	response.SuccessWithPage(c, result, shared.BuildPagination(page, limit, total))
}

// Subscribe 订阅作者
func (h *Handler) Subscribe(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	authorID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	item, err := h.SubscriptionService.Subscribe(userID, authorID, recipesLimitParam(c))
	if err != nil {
		respondWithMappedError(c, err, subscriptionErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, toSubscriptionView(*item))
}

// Unsubscribe 取消订阅
func (h *Handler) Unsubscribe(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	authorID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.SubscriptionService.Unsubscribe(userID, authorID); err != nil {
		respondWithMappedError(c, err, subscriptionErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, nil)
}
