package repository

import (
	"time"

	"github.com/foodgram-next/internal/models"

	"gorm.io/gorm"
)

// AuthzAuditLogRepository 权限变更审计日志
type AuthzAuditLogRepository interface {
	Create(log *models.AuthzAuditLog) error
	List(filter AuthzAuditLogListFilter) ([]models.AuthzAuditLog, int64, error)
	PurgeBefore(cutoff time.Time) (int64, error)
}

type GormAuthzAuditLogRepository struct {
	db *gorm.DB
}

func NewAuthzAuditLogRepository(db *gorm.DB) *GormAuthzAuditLogRepository {
	return &GormAuthzAuditLogRepository{db: db}
}

func (r *GormAuthzAuditLogRepository) Create(log *models.AuthzAuditLog) error {
	if log == nil {
		return nil
	}
	return r.db.Create(log).Error
}

// List 按条件分页，最新记录在前
func (r *GormAuthzAuditLogRepository) List(filter AuthzAuditLogListFilter) ([]models.AuthzAuditLog, int64, error) {
	query := r.db.Model(&models.AuthzAuditLog{}).Scopes(filter.scope)
	return findPage[models.AuthzAuditLog](query, filter.Page, filter.PageSize, "id DESC")
}

// PurgeBefore 删除 cutoff 之前的记录，返回删除条数
func (r *GormAuthzAuditLogRepository) PurgeBefore(cutoff time.Time) (int64, error) {
	result := r.db.Where("created_at < ?", cutoff).Delete(&models.AuthzAuditLog{})
	return result.RowsAffected, result.Error
}

func (f AuthzAuditLogListFilter) scope(db *gorm.DB) *gorm.DB {
	conds := []struct {
		set   bool
		expr  string
		value interface{}
	}{
		{f.OperatorUserID != 0, "operator_user_id = ?", f.OperatorUserID},
		{f.TargetUserID != 0, "target_user_id = ?", f.TargetUserID},
		{f.Action != "", "action = ?", f.Action},
		{f.Role != "", "role = ?", f.Role},
		{f.CreatedFrom != nil, "created_at >= ?", f.CreatedFrom},
		{f.CreatedTo != nil, "created_at <= ?", f.CreatedTo},
	}
	for _, c := range conds {
		if c.set {
			db = db.Where(c.expr, c.value)
		}
	}
	return db
}
