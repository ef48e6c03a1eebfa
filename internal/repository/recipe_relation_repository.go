package repository

import (
	"github.com/foodgram-next/internal/models"

	"gorm.io/gorm"
)

// RecipeRelationRepository 用户与菜谱关系（收藏、购物清单）数据访问接口
type RecipeRelationRepository interface {
	Exists(userID, recipeID uint) (bool, error)
	Add(userID, recipeID uint) error
	Remove(userID, recipeID uint) (bool, error)
	ContainedRecipeIDs(userID uint, recipeIDs []uint) (map[uint]bool, error)
}

// ShoppingCartRepository 购物清单数据访问接口
type ShoppingCartRepository interface {
	RecipeRelationRepository
	ListLineItems(userID uint) ([]CartLineItemRow, error)
}

// GormRecipeRelationRepository GORM 实现，按表区分收藏与购物清单
type GormRecipeRelationRepository struct {
	db     *gorm.DB
	model  interface{}
	newRow func(userID, recipeID uint) interface{}
}

// GormShoppingCartRepository 购物清单 GORM 实现
type GormShoppingCartRepository struct {
	*GormRecipeRelationRepository
}

// NewFavoriteRepository 创建收藏仓库
func NewFavoriteRepository(db *gorm.DB) *GormRecipeRelationRepository {
	return &GormRecipeRelationRepository{
		db:    db,
		model: &models.Favorite{},
		newRow: func(userID, recipeID uint) interface{} {
			return &models.Favorite{UserID: userID, RecipeID: recipeID}
		},
	}
}

// NewShoppingCartRepository 创建购物清单仓库
func NewShoppingCartRepository(db *gorm.DB) *GormShoppingCartRepository {
	return &GormShoppingCartRepository{
		GormRecipeRelationRepository: &GormRecipeRelationRepository{
			db:    db,
			model: &models.ShoppingCart{},
			newRow: func(userID, recipeID uint) interface{} {
				return &models.ShoppingCart{UserID: userID, RecipeID: recipeID}
			},
		},
	}
}

// Exists 判断关系是否存在
func (r *GormRecipeRelationRepository) Exists(userID, recipeID uint) (bool, error) {
	var count int64
	if err := r.db.Model(r.model).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Add 写入关系
func (r *GormRecipeRelationRepository) Add(userID, recipeID uint) error {
	return r.db.Create(r.newRow(userID, recipeID)).Error
}

// Remove 删除关系，返回是否存在被删除的记录
func (r *GormRecipeRelationRepository) Remove(userID, recipeID uint) (bool, error) {
	result := r.db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(r.model)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ContainedRecipeIDs 返回 recipeIDs 中与用户存在关系的菜谱集合
func (r *GormRecipeRelationRepository) ContainedRecipeIDs(userID uint, recipeIDs []uint) (map[uint]bool, error) {
	result := make(map[uint]bool)
	if userID == 0 || len(recipeIDs) == 0 {
		return result, nil
	}
	var ids []uint
	if err := r.db.Model(r.model).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Pluck("recipe_id", &ids).Error; err != nil {
		return nil, err
	}
	for _, id := range ids {
		result[id] = true
	}
	return result, nil
}

// ListLineItems 读取用户购物清单的食材明细，按加入顺序与菜谱食材顺序排列
func (r *GormShoppingCartRepository) ListLineItems(userID uint) ([]CartLineItemRow, error) {
	rows := make([]CartLineItemRow, 0)
	err := r.db.Table("shopping_carts").
		Select("ingredients.name AS ingredient_name, ingredients.measurement_unit AS measurement_unit, recipe_ingredients.amount AS amount").
		Joins("JOIN recipes ON recipes.id = shopping_carts.recipe_id").
		Joins("JOIN recipe_ingredients ON recipe_ingredients.recipe_id = recipes.id").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Where("shopping_carts.user_id = ?", userID).
		Order("shopping_carts.id ASC").
		Order("recipe_ingredients.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
