package repository

import (
	"github.com/foodgram-next/internal/models"

	"gorm.io/gorm"
)

// SubscriptionRepository 订阅数据访问接口
type SubscriptionRepository interface {
	Exists(userID, authorID uint) (bool, error)
	Create(subscription *models.Subscription) error
	Delete(userID, authorID uint) (bool, error)
	ListAuthors(filter SubscriptionListFilter) ([]models.User, int64, error)
	SubscribedAuthorIDs(userID uint, authorIDs []uint) (map[uint]bool, error)
}

// GormSubscriptionRepository GORM 实现
type GormSubscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository 创建订阅仓库
func NewSubscriptionRepository(db *gorm.DB) *GormSubscriptionRepository {
	return &GormSubscriptionRepository{db: db}
}

// Exists 判断是否已订阅
func (r *GormSubscriptionRepository) Exists(userID, authorID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Subscription{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create 创建订阅
func (r *GormSubscriptionRepository) Create(subscription *models.Subscription) error {
	return r.db.Create(subscription).Error
}

// Delete 取消订阅，返回是否存在被删除的记录
func (r *GormSubscriptionRepository) Delete(userID, authorID uint) (bool, error) {
	result := r.db.Where("user_id = ? AND author_id = ?", userID, authorID).Delete(&models.Subscription{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListAuthors 分页获取用户订阅的作者，最新订阅在前
func (r *GormSubscriptionRepository) ListAuthors(filter SubscriptionListFilter) ([]models.User, int64, error) {
	query := r.db.Model(&models.User{}).
		Joins("JOIN subscriptions ON subscriptions.author_id = users.id").
		Where("subscriptions.user_id = ?", filter.UserID)

	return findPage[models.User](query, filter.Page, filter.PageSize, "subscriptions.id DESC")
}

// SubscribedAuthorIDs 返回 authorIDs 中已被 userID 订阅的作者集合
func (r *GormSubscriptionRepository) SubscribedAuthorIDs(userID uint, authorIDs []uint) (map[uint]bool, error) {
	result := make(map[uint]bool)
	if userID == 0 || len(authorIDs) == 0 {
		return result, nil
	}
	var ids []uint
	if err := r.db.Model(&models.Subscription{}).
		Where("user_id = ? AND author_id IN ?", userID, authorIDs).
		Pluck("author_id", &ids).Error; err != nil {
		return nil, err
	}
	for _, id := range ids {
		result[id] = true
	}
	return result, nil
}
