package public

import (
	"strings"

	"github.com/foodgram-next/internal/http/handlers/shared"
	"github.com/foodgram-next/internal/http/response"
	"github.com/foodgram-next/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListUsers 用户列表
func (h *Handler) ListUsers(c *gin.Context) {
	page, limit := h.pageParams(c)
	profiles, total, err := h.UserService.List(optionalUserID(c), repository.UserListFilter{
		Page:     page,
		PageSize: limit,
		Keyword:  strings.TrimSpace(c.Query("search")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	items := make([]UserView, 0, len(profiles))
	for _, profile := range profiles {
		items = append(items, toUserView(profile.User, profile.IsSubscribed))
	}
	response.SuccessWithPage(c, items, shared.BuildPagination(page, limit, total))
}

// GetUser 用户详情
func (h *Handler) GetUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	profile, err := h.UserService.Get(optionalUserID(c), userID)
	if err != nil {
		respondWithMappedError(c, err, userLookupErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, toUserView(profile.User, profile.IsSubscribed))
}

// GetMe 当前登录用户
func (h *Handler) GetMe(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	profile, err := h.UserService.Get(userID, userID)
	if err != nil {
		respondWithMappedError(c, err, userLookupErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, toUserView(profile.User, false))
}
