package models

import "time"

// AuthzAuditLog 员工权限变更记录：角色、策略、员工标记与审计清理
type AuthzAuditLog struct {
	ID               uint      `gorm:"primarykey" json:"id"`
	OperatorUserID   uint      `gorm:"index;not null" json:"operator_user_id"`
	OperatorUsername string    `gorm:"type:varchar(150);not null;default:''" json:"operator_username"`
	TargetUserID     *uint     `gorm:"index" json:"target_user_id,omitempty"`
	TargetUsername   string    `gorm:"type:varchar(150);not null;default:''" json:"target_username"`
	Action           string    `gorm:"type:varchar(64);index;not null" json:"action"`
	Role             string    `gorm:"type:varchar(120);index;not null;default:''" json:"role"`
	// 策略变更时为 "METHOD /object"，用户角色变更时为逗号分隔的角色
	Detail    string    `gorm:"type:varchar(255);not null;default:''" json:"detail,omitempty"`
	RequestID string    `gorm:"type:varchar(64);not null;default:''" json:"request_id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (AuthzAuditLog) TableName() string {
	return "authz_audit_logs"
}
