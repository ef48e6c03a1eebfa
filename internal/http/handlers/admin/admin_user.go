package admin

import (
	"strconv"
	"strings"
	"time"

	"github.com/foodgram-next/internal/http/handlers/shared"
	"github.com/foodgram-next/internal/http/response"
	"github.com/foodgram-next/internal/models"
	"github.com/foodgram-next/internal/repository"
	"github.com/foodgram-next/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminUserView 后台用户列表结构
type AdminUserView struct {
	ID          uint       `json:"id"`
	Email       string     `json:"email"`
	Username    string     `json:"username"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	IsStaff     bool       `json:"is_staff"`
	Status      string     `json:"status"`
	LastLoginAt *time.Time `json:"last_login_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

// SetStaffRequest 员工权限变更请求
type SetStaffRequest struct {
	IsStaff *bool `json:"is_staff" binding:"required"`
}

func toAdminUserView(user models.User) AdminUserView {
	return AdminUserView{
		ID:          user.ID,
		Email:       user.Email,
		Username:    user.Username,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		IsStaff:     user.IsStaff,
		Status:      user.Status,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}

// ListUsers 后台用户列表，支持 keyword 与 is_staff 过滤
func (h *Handler) ListUsers(c *gin.Context) {
	page, limit := h.pageParams(c)
	filter := repository.UserListFilter{
		Page:     page,
		PageSize: limit,
		Keyword:  strings.TrimSpace(c.Query("keyword")),
	}
	if raw := strings.TrimSpace(c.Query("is_staff")); raw != "" {
		isStaff, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
		filter.IsStaff = &isStaff
	}

	profiles, total, err := h.UserService.List(0, filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	items := make([]AdminUserView, 0, len(profiles))
	for _, profile := range profiles {
		items = append(items, toAdminUserView(profile.User))
	}
	response.SuccessWithPage(c, items, shared.BuildPagination(page, limit, total))
}

// SetUserStaff 授予或撤销员工权限
func (h *Handler) SetUserStaff(c *gin.Context) {
	targetID, ok := parseIDParam(c)
	if !ok {
		return
	}
	operatorID, ok := getOperatorID(c)
	if !ok {
		return
	}
	var req SetStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.UserService.SetStaff(service.SetStaffInput{
		OperatorID: operatorID,
		TargetID:   targetID,
		IsStaff:    *req.IsStaff,
		RequestID:  c.GetString("request_id"),
	})
	if err != nil {
		respondWithMappedError(c, err, staffUpdateErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	requestLog(c).Infow("admin_user_staff_updated",
		"operator_user_id", operatorID,
		"target_user_id", targetID,
		"is_staff", user.IsStaff,
	)
	response.Success(c, toAdminUserView(*user))
}
