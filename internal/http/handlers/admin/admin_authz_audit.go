package admin

import (
	"strings"
	"time"

	"github.com/foodgram-next/internal/http/handlers/shared"
	"github.com/foodgram-next/internal/http/response"
	"github.com/foodgram-next/internal/repository"
	"github.com/foodgram-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListAuthzAuditLogs 获取权限审计日志列表
func (h *Handler) ListAuthzAuditLogs(c *gin.Context) {
	page, limit := h.pageParams(c)

	operatorUserID, ok := parseOptionalUintQuery(c, "operator_user_id")
	if !ok {
		return
	}
	targetUserID, ok := parseOptionalUintQuery(c, "target_user_id")
	if !ok {
		return
	}
	createdFrom, err := parseTimeNullable(c.Query("created_from"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	createdTo, err := parseTimeNullable(c.Query("created_to"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	items, total, err := h.AuthzAuditService.List(repository.AuthzAuditLogListFilter{
		Page:           page,
		PageSize:       limit,
		OperatorUserID: operatorUserID,
		TargetUserID:   targetUserID,
		Action:         strings.TrimSpace(c.Query("action")),
		Role:           strings.TrimSpace(c.Query("role")),
		CreatedFrom:    createdFrom,
		CreatedTo:      createdTo,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.SuccessWithPage(c, items, shared.BuildPagination(page, limit, total))
}

// PurgeAuthzAuditLogs 清理 before 之前的审计日志，清理动作本身会记录一条审计
func (h *Handler) PurgeAuthzAuditLogs(c *gin.Context) {
	before, err := parseTimeNullable(c.Query("before"))
	if err != nil || before == nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	deleted, err := h.AuthzAuditService.Purge(*before)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	h.recordAuthzAudit(c, service.AuthzAuditRecordInput{Action: service.AuthzAuditActionPurge})
	requestLog(c).Infow("admin_authz_audit_purged", "before", before.Format(time.RFC3339), "deleted", deleted)
	response.Success(c, gin.H{"deleted": deleted})
}

// parseTimeNullable 支持 RFC3339 与 2006-01-02 两种格式
func parseTimeNullable(raw string) (*time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
