package repository

import (
	"strings"

	"github.com/foodgram-next/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const defaultIngredientBatchSize = 1000

// IngredientRepository 食材数据访问接口
type IngredientRepository interface {
	List(filter IngredientListFilter) ([]models.Ingredient, error)
	GetByID(id uint) (*models.Ingredient, error)
	GetByNameUnit(name, unit string) (*models.Ingredient, error)
	ListByIDs(ids []uint) ([]models.Ingredient, error)
	Create(ingredient *models.Ingredient) error
	Update(ingredient *models.Ingredient) error
	Delete(id uint) error
	CountUsage(id uint) (int64, error)
	BulkInsertIgnore(items []models.Ingredient, batchSize int) (int64, error)
}

// GormIngredientRepository GORM 实现
type GormIngredientRepository struct {
	db *gorm.DB
}

// NewIngredientRepository 创建食材仓库
func NewIngredientRepository(db *gorm.DB) *GormIngredientRepository {
	return &GormIngredientRepository{db: db}
}

// List 食材列表，支持名称前缀搜索
func (r *GormIngredientRepository) List(filter IngredientListFilter) ([]models.Ingredient, error) {
	query := r.db.Model(&models.Ingredient{})
	if prefix := strings.TrimSpace(filter.NamePrefix); prefix != "" {
		condition, arg := prefixLikeCondition(r.db, "name", prefix)
		query = query.Where(condition, arg)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	items := make([]models.Ingredient, 0)
	if err := query.Order("name ASC").Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetByID 根据 ID 获取食材
func (r *GormIngredientRepository) GetByID(id uint) (*models.Ingredient, error) {
	return firstOrNil[models.Ingredient](r.db, id)
}

// GetByNameUnit 根据名称与单位获取食材
func (r *GormIngredientRepository) GetByNameUnit(name, unit string) (*models.Ingredient, error) {
	return firstOrNil[models.Ingredient](r.db.Where("name = ? AND measurement_unit = ?", name, unit))
}

// ListByIDs 批量获取食材
func (r *GormIngredientRepository) ListByIDs(ids []uint) ([]models.Ingredient, error) {
	if len(ids) == 0 {
		return []models.Ingredient{}, nil
	}
	var items []models.Ingredient
	if err := r.db.Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Create 创建食材
func (r *GormIngredientRepository) Create(ingredient *models.Ingredient) error {
	return r.db.Create(ingredient).Error
}

// Update 更新食材
func (r *GormIngredientRepository) Update(ingredient *models.Ingredient) error {
	return r.db.Save(ingredient).Error
}

// Delete 删除食材
func (r *GormIngredientRepository) Delete(id uint) error {
	return r.db.Delete(&models.Ingredient{}, id).Error
}

// CountUsage 统计引用该食材的菜谱明细数量
func (r *GormIngredientRepository) CountUsage(id uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.RecipeIngredient{}).Where("ingredient_id = ?", id).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// BulkInsertIgnore 分批写入食材，名称与单位冲突的行直接跳过，返回实际写入行数
func (r *GormIngredientRepository) BulkInsertIgnore(items []models.Ingredient, batchSize int) (int64, error) {
	if len(items) == 0 {
		return 0, nil
	}
	if batchSize <= 0 {
		batchSize = defaultIngredientBatchSize
	}
	result := r.db.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(&items, batchSize)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
