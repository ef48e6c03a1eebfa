package repository

import (
	"maps"
	"strings"
	"time"

	"github.com/foodgram-next/internal/constants"
	"github.com/foodgram-next/internal/models"

	"gorm.io/gorm"
)

// UserRepository 用户存取。Get* 未找到时返回 nil, nil
type UserRepository interface {
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	ListByIDs(ids []uint) ([]models.User, error)
	List(filter UserListFilter) ([]models.User, int64, error)

	Create(user *models.User) error
	Update(user *models.User) error
	UpdateStatus(userID uint, status string) error
	BumpTokenVersion(userID uint) error
}

type GormUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) GetByID(id uint) (*models.User, error) {
	return firstOrNil[models.User](r.db, id)
}

func (r *GormUserRepository) GetByEmail(email string) (*models.User, error) {
	return firstOrNil[models.User](r.db.Where("email = ?", email))
}

func (r *GormUserRepository) GetByUsername(username string) (*models.User, error) {
	return firstOrNil[models.User](r.db.Where("username = ?", username))
}

// ListByIDs 批量获取用户，顺序不保证
func (r *GormUserRepository) ListByIDs(ids []uint) ([]models.User, error) {
	users := make([]models.User, 0, len(ids))
	if len(ids) == 0 {
		return users, nil
	}
	err := r.db.Where("id IN ?", ids).Find(&users).Error
	return users, err
}

// Create 创建用户
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// Update 更新用户
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// List 用户列表
func (r *GormUserRepository) List(filter UserListFilter) ([]models.User, int64, error) {
	query := r.db.Model(&models.User{})

	if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
		emailCond, like := containsLikeCondition(r.db, "email", keyword)
		usernameCond, _ := containsLikeCondition(r.db, "username", keyword)
		query = query.Where(emailCond+" OR "+usernameCond, like, like)
	}
	if filter.IsStaff != nil {
		query = query.Where("is_staff = ?", *filter.IsStaff)
	}

	return findPage[models.User](query, filter.Page, filter.PageSize, "id ASC")
}

// UpdateStatus 更新用户状态；禁用会同时吊销已签发的 Token
func (r *GormUserRepository) UpdateStatus(userID uint, status string) error {
	now := time.Now()
	updates := map[string]interface{}{"status": status, "updated_at": now}
	if strings.EqualFold(strings.TrimSpace(status), constants.UserStatusDisabled) {
		maps.Copy(updates, revokeColumns(now))
	}
	return r.byID(userID).Updates(updates).Error
}

// BumpTokenVersion 修改密码等场景下使旧 Token 失效
func (r *GormUserRepository) BumpTokenVersion(userID uint) error {
	updates := map[string]interface{}{
		"token_version": gorm.Expr("token_version + 1"),
		"updated_at":    time.Now(),
	}
	return r.byID(userID).Updates(updates).Error
}

func (r *GormUserRepository) byID(userID uint) *gorm.DB {
	return r.db.Model(&models.User{}).Where("id = ?", userID)
}

// revokeColumns 版本号递增并记录吊销时间点，两种校验任一命中即拒绝
func revokeColumns(at time.Time) map[string]interface{} {
	return map[string]interface{}{
		"token_version":        gorm.Expr("token_version + 1"),
		"token_invalid_before": at,
	}
}
