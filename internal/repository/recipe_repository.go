package repository

import (
	"time"

	"github.com/foodgram-next/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecipeRepository 菜谱数据访问接口
type RecipeRepository interface {
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) RecipeRepository
	GetByID(id uint) (*models.Recipe, error)
	Exists(id uint) (bool, error)
	List(filter RecipeListFilter) ([]models.Recipe, int64, error)
	ListByAuthor(authorID uint, limit int) ([]models.Recipe, error)
	CountByAuthors(authorIDs []uint) (map[uint]int64, error)
	Create(recipe *models.Recipe, tagIDs []uint, items []models.RecipeIngredient) error
	Update(recipe *models.Recipe, tagIDs []uint, items []models.RecipeIngredient) error
	Delete(id uint) error
}

// GormRecipeRepository GORM 实现
type GormRecipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository 创建菜谱仓库
func NewRecipeRepository(db *gorm.DB) *GormRecipeRepository {
	return &GormRecipeRepository{db: db}
}

// WithTx 绑定事务
func (r *GormRecipeRepository) WithTx(tx *gorm.DB) RecipeRepository {
	if tx == nil {
		return r
	}
	return &GormRecipeRepository{db: tx}
}

// Transaction 执行事务
func (r *GormRecipeRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

func (r *GormRecipeRepository) withDetails(query *gorm.DB) *gorm.DB {
	return query.
		Preload("Author").
		Preload("Tags", func(db *gorm.DB) *gorm.DB {
			return db.Order("tags.name ASC")
		}).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("recipe_ingredients.id ASC")
		}).
		Preload("Ingredients.Ingredient")
}

// GetByID 获取菜谱详情（含作者、标签、食材）
func (r *GormRecipeRepository) GetByID(id uint) (*models.Recipe, error) {
	return firstOrNil[models.Recipe](r.withDetails(r.db), id)
}

// Exists 判断菜谱是否存在
func (r *GormRecipeRepository) Exists(id uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Recipe{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List 菜谱列表，按发布时间倒序
func (r *GormRecipeRepository) List(filter RecipeListFilter) ([]models.Recipe, int64, error) {
	query := r.db.Model(&models.Recipe{})

	if filter.AuthorID != 0 {
		query = query.Where("recipes.author_id = ?", filter.AuthorID)
	}
	if len(filter.TagSlugs) > 0 {
		tagged := r.db.Table("recipe_tags").
			Select("recipe_tags.recipe_id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", filter.TagSlugs)
		query = query.Where("recipes.id IN (?)", tagged)
	}
	if filter.FavoritedBy != 0 {
		favorited := r.db.Model(&models.Favorite{}).Select("recipe_id").Where("user_id = ?", filter.FavoritedBy)
		query = query.Where("recipes.id IN (?)", favorited)
	}
	if filter.InCartOf != 0 {
		inCart := r.db.Model(&models.ShoppingCart{}).Select("recipe_id").Where("user_id = ?", filter.InCartOf)
		query = query.Where("recipes.id IN (?)", inCart)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Scopes(paginate(filter.Page, filter.PageSize))

	recipes := make([]models.Recipe, 0)
	if err := r.withDetails(query).
		Order("recipes.pub_date DESC").
		Order("recipes.id DESC").
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}
	return recipes, total, nil
}

// ListByAuthor 获取作者最新的若干菜谱，limit<=0 时返回全部
func (r *GormRecipeRepository) ListByAuthor(authorID uint, limit int) ([]models.Recipe, error) {
	query := r.db.Where("author_id = ?", authorID).Order("pub_date DESC").Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	recipes := make([]models.Recipe, 0)
	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// CountByAuthors 统计作者的菜谱数量
func (r *GormRecipeRepository) CountByAuthors(authorIDs []uint) (map[uint]int64, error) {
	result := make(map[uint]int64, len(authorIDs))
	if len(authorIDs) == 0 {
		return result, nil
	}
	type row struct {
		AuthorID uint
		Total    int64
	}
	var rows []row
	if err := r.db.Model(&models.Recipe{}).
		Select("author_id, COUNT(*) AS total").
		Where("author_id IN ?", authorIDs).
		Group("author_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, item := range rows {
		result[item.AuthorID] = item.Total
	}
	return result, nil
}

// Create 创建菜谱并写入标签与食材关联
func (r *GormRecipeRepository) Create(recipe *models.Recipe, tagIDs []uint, items []models.RecipeIngredient) error {
	if recipe == nil {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if recipe.PubDate.IsZero() {
			recipe.PubDate = time.Now()
		}
		if err := tx.Omit(clause.Associations).Create(recipe).Error; err != nil {
			return err
		}
		return replaceRecipeRelations(tx, recipe.ID, tagIDs, items)
	})
}

// Update 更新菜谱字段并整体替换标签与食材关联
func (r *GormRecipeRepository) Update(recipe *models.Recipe, tagIDs []uint, items []models.RecipeIngredient) error {
	if recipe == nil {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Recipe{}).Where("id = ?", recipe.ID).Updates(map[string]interface{}{
			"name":         recipe.Name,
			"image":        recipe.Image,
			"text":         recipe.Text,
			"cooking_time": recipe.CookingTime,
			"updated_at":   time.Now(),
		}).Error; err != nil {
			return err
		}
		return replaceRecipeRelations(tx, recipe.ID, tagIDs, items)
	})
}

// Delete 删除菜谱及其收藏、购物清单、食材、标签关联
func (r *GormRecipeRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.ShoppingCart{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM recipe_tags WHERE recipe_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Recipe{}, id).Error
	})
}

func replaceRecipeRelations(tx *gorm.DB, recipeID uint, tagIDs []uint, items []models.RecipeIngredient) error {
	if err := tx.Exec("DELETE FROM recipe_tags WHERE recipe_id = ?", recipeID).Error; err != nil {
		return err
	}
	if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.RecipeIngredient{}).Error; err != nil {
		return err
	}
	for _, tagID := range tagIDs {
		if err := tx.Exec("INSERT INTO recipe_tags (recipe_id, tag_id) VALUES (?, ?)", recipeID, tagID).Error; err != nil {
			return err
		}
	}
	if len(items) == 0 {
		return nil
	}
	rows := make([]models.RecipeIngredient, 0, len(items))
	for _, item := range items {
		rows = append(rows, models.RecipeIngredient{
			RecipeID:     recipeID,
			IngredientID: item.IngredientID,
			Amount:       item.Amount,
		})
	}
	return tx.Create(&rows).Error
}
