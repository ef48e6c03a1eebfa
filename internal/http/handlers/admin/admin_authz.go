package admin

import (
	"net/url"
	"strings"

	"github.com/foodgram-next/internal/authz"
	"github.com/foodgram-next/internal/http/response"
	"github.com/foodgram-next/internal/models"
	"github.com/foodgram-next/internal/service"

	"github.com/gin-gonic/gin"
)

type authzRolePayload struct {
	Role string `json:"role" binding:"required"`
}

type authzPolicyPayload struct {
	Role   string `json:"role" binding:"required"`
	Object string `json:"object" binding:"required"`
	Action string `json:"action" binding:"required"`
}

func (p authzPolicyPayload) detail() string {
	return authz.NormalizeAction(p.Action) + " " + authz.NormalizeObject(p.Object)
}

type authzSetUserRolesPayload struct {
	Roles []string `json:"roles"`
}

// AuthzMeView 当前员工的角色与生效策略
type AuthzMeView struct {
	UserID   uint           `json:"user_id"`
	Roles    []string       `json:"roles"`
	Policies []authz.Policy `json:"policies"`
}

// GetAuthzMe 当前员工权限快照，前端据此控制菜单
func (h *Handler) GetAuthzMe(c *gin.Context) {
	userID, ok := getOperatorID(c)
	if !ok {
		return
	}
	view := AuthzMeView{UserID: userID}
	var err error
	if view.Roles, err = h.AuthzService.GetUserRoles(userID); err == nil {
		view.Policies, err = h.AuthzService.GetUserPolicies(userID)
	}
	if err != nil {
		respondWithMappedError(c, err, authzWriteErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, view)
}

func (h *Handler) ListAuthzRoles(c *gin.Context) {
	roles, err := h.AuthzService.ListRoles()
	if err != nil {
		respondWithMappedError(c, err, authzWriteErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, roles)
}

func (h *Handler) CreateAuthzRole(c *gin.Context) {
	var req authzRolePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	var role string
	h.applyAuthzChange(c, func() (err error) {
		role, err = h.AuthzService.EnsureRole(req.Role)
		return err
	}, func() (service.AuthzAuditRecordInput, interface{}) {
		return service.AuthzAuditRecordInput{Action: service.AuthzAuditActionRoleCreate, Role: role}, gin.H{"role": role}
	})
}

// DeleteAuthzRole 删除自定义角色，内置角色返回 409
func (h *Handler) DeleteAuthzRole(c *gin.Context) {
	role := roleParam(c)
	if role == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	h.applyAuthzChange(c, func() error {
		return h.AuthzService.DeleteRole(role)
	}, func() (service.AuthzAuditRecordInput, interface{}) {
		return service.AuthzAuditRecordInput{Action: service.AuthzAuditActionRoleDelete, Role: role}, nil
	})
}

func (h *Handler) GetAuthzRolePolicies(c *gin.Context) {
	role := roleParam(c)
	if role == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	policies, err := h.AuthzService.GetRolePolicies(role)
	if err != nil {
		respondWithMappedError(c, err, authzWriteErrorRules, response.CodeBadRequest, "error.bad_request")
		return
	}
	response.Success(c, policies)
}

func (h *Handler) GrantAuthzPolicy(c *gin.Context) {
	h.changePolicy(c, service.AuthzAuditActionPolicyGrant, h.AuthzService.GrantRolePolicy)
}

func (h *Handler) RevokeAuthzPolicy(c *gin.Context) {
	h.changePolicy(c, service.AuthzAuditActionPolicyRevoke, h.AuthzService.RevokeRolePolicy)
}

func (h *Handler) changePolicy(c *gin.Context, action string, apply func(role, object, act string) error) {
	var req authzPolicyPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	h.applyAuthzChange(c, func() error {
		return apply(req.Role, req.Object, req.Action)
	}, func() (service.AuthzAuditRecordInput, interface{}) {
		role, _ := authz.NormalizeRole(req.Role)
		return service.AuthzAuditRecordInput{Action: action, Role: role, Detail: req.detail()}, nil
	})
}

func (h *Handler) GetAuthzUserRoles(c *gin.Context) {
	user, ok := h.loadTargetUser(c)
	if !ok {
		return
	}
	roles, err := h.AuthzService.GetUserRoles(user.ID)
	if err != nil {
		respondWithMappedError(c, err, authzWriteErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, roles)
}

// SetAuthzUserRoles 覆盖用户角色，空数组表示清空
func (h *Handler) SetAuthzUserRoles(c *gin.Context) {
	user, ok := h.loadTargetUser(c)
	if !ok {
		return
	}
	var req authzSetUserRolesPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	h.applyAuthzChange(c, func() error {
		return h.AuthzService.SetUserRoles(user.ID, req.Roles)
	}, func() (service.AuthzAuditRecordInput, interface{}) {
		roles, _ := h.AuthzService.GetUserRoles(user.ID)
		return service.AuthzAuditRecordInput{
			TargetUserID:   &user.ID,
			TargetUsername: user.Username,
			Action:         service.AuthzAuditActionUserRoles,
			Detail:         strings.Join(roles, ","),
		}, roles
	})
}

// applyAuthzChange 执行变更；成功后写审计、记日志并返回 data
func (h *Handler) applyAuthzChange(c *gin.Context, apply func() error, result func() (service.AuthzAuditRecordInput, interface{})) {
	if err := apply(); err != nil {
		respondWithMappedError(c, err, authzWriteErrorRules, response.CodeBadRequest, "error.bad_request")
		return
	}
	audit, data := result()
	h.recordAuthzAudit(c, audit)
	requestLog(c).Infow("admin_authz_changed",
		"action", audit.Action,
		"role", audit.Role,
		"detail", audit.Detail,
		"operator_user_id", currentUserID(c),
	)
	response.Success(c, data)
}

func (h *Handler) loadTargetUser(c *gin.Context) (*models.User, bool) {
	userID, ok := parseIDParam(c)
	if !ok {
		return nil, false
	}
	user, err := h.UserRepo.GetByID(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return nil, false
	}
	if user == nil {
		respondError(c, response.CodeNotFound, "error.user_not_found", nil)
		return nil, false
	}
	return user, true
}

// recordAuthzAudit 补全操作人与 request_id，写入失败只记日志
func (h *Handler) recordAuthzAudit(c *gin.Context, input service.AuthzAuditRecordInput) {
	if h.AuthzAuditService == nil {
		return
	}
	input.OperatorUserID = currentUserID(c)
	input.OperatorUsername = strings.TrimSpace(c.GetString("username"))
	input.RequestID = c.GetString("request_id")
	if err := h.AuthzAuditService.Record(input); err != nil {
		requestLog(c).Warnw("admin_authz_audit_record_failed", "action", input.Action, "error", err)
	}
}

// roleParam 路由中的角色名可能经过 URL 编码（role%3Astaff）
func roleParam(c *gin.Context) string {
	raw := c.Param("role")
	if decoded, err := url.PathUnescape(raw); err == nil {
		raw = decoded
	}
	return strings.TrimSpace(raw)
}
