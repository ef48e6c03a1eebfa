package service

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/foodgram-next/internal/models"
	"github.com/foodgram-next/internal/repository"
)

// 审计动作，写入 authz_audit_logs.action
const (
	AuthzAuditActionGrantStaff   = "grant_staff"
	AuthzAuditActionRevokeStaff  = "revoke_staff"
	AuthzAuditActionRoleCreate   = "role_create"
	AuthzAuditActionRoleDelete   = "role_delete"
	AuthzAuditActionPolicyGrant  = "policy_grant"
	AuthzAuditActionPolicyRevoke = "policy_revoke"
	AuthzAuditActionUserRoles    = "user_roles_update"
	AuthzAuditActionPurge        = "audit_purge"
)

const auditTextMaxLen = 255

// AuthzAuditRecordInput 一次权限变更
type AuthzAuditRecordInput struct {
	OperatorUserID   uint
	OperatorUsername string
	TargetUserID     *uint
	TargetUsername   string
	Action           string
	Role             string
	Detail           string
	RequestID        string
}

func (in AuthzAuditRecordInput) toModel(at time.Time) *models.AuthzAuditLog {
	return &models.AuthzAuditLog{
		OperatorUserID:   in.OperatorUserID,
		OperatorUsername: clipAuditText(in.OperatorUsername),
		TargetUserID:     in.TargetUserID,
		TargetUsername:   clipAuditText(in.TargetUsername),
		Action:           clipAuditText(in.Action),
		Role:             clipAuditText(in.Role),
		Detail:           clipAuditText(in.Detail),
		RequestID:        clipAuditText(in.RequestID),
		CreatedAt:        at,
	}
}

// clipAuditText 去空白并按字符截断到列宽
func clipAuditText(v string) string {
	v = strings.TrimSpace(v)
	if utf8.RuneCountInString(v) <= auditTextMaxLen {
		return v
	}
	return string([]rune(v)[:auditTextMaxLen])
}

// AuthzAuditService 权限审计；未注入仓储时所有操作为空操作
type AuthzAuditService struct {
	repo repository.AuthzAuditLogRepository
}

func NewAuthzAuditService(repo repository.AuthzAuditLogRepository) *AuthzAuditService {
	return &AuthzAuditService{repo: repo}
}

func (s *AuthzAuditService) enabled() bool {
	return s != nil && s.repo != nil
}

// Record 无操作人的系统变更不记录，缺少动作视为调用错误
func (s *AuthzAuditService) Record(input AuthzAuditRecordInput) error {
	if !s.enabled() || input.OperatorUserID == 0 {
		return nil
	}
	if strings.TrimSpace(input.Action) == "" {
		return ErrInvalidInput
	}
	return s.repo.Create(input.toModel(time.Now()))
}

// List 按过滤条件分页
func (s *AuthzAuditService) List(filter repository.AuthzAuditLogListFilter) ([]models.AuthzAuditLog, int64, error) {
	if !s.enabled() {
		return []models.AuthzAuditLog{}, 0, nil
	}
	return s.repo.List(filter)
}

// Purge 删除 before 之前的记录，返回删除条数
func (s *AuthzAuditService) Purge(before time.Time) (int64, error) {
	if before.IsZero() {
		return 0, ErrInvalidInput
	}
	if !s.enabled() {
		return 0, nil
	}
	return s.repo.PurgeBefore(before)
}
