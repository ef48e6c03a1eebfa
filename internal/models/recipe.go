package models

import "time"

// Recipe 菜谱
type Recipe struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	AuthorID    uint      `gorm:"not null;index" json:"author_id"`
	Name        string    `gorm:"type:varchar(200);not null" json:"name"`
	Image       string    `gorm:"type:varchar(255);not null;default:''" json:"image"` // 相对上传目录的访问路径
	Text        string    `gorm:"type:text;not null" json:"text"`
	CookingTime int       `gorm:"not null" json:"cooking_time"` // 分钟
	PubDate     time.Time `gorm:"not null;index" json:"pub_date"`
	UpdatedAt   time.Time `json:"-"`

	Author      *User              `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Tags        []Tag              `gorm:"many2many:recipe_tags" json:"tags"`
	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID" json:"ingredients"`
}

// TableName 指定表名
func (Recipe) TableName() string {
	return "recipes"
}

// RecipeIngredient 菜谱食材用量
type RecipeIngredient struct {
	ID           uint `gorm:"primarykey" json:"-"`
	RecipeID     uint `gorm:"not null;uniqueIndex:idx_recipe_ingredient" json:"-"`
	IngredientID uint `gorm:"not null;uniqueIndex:idx_recipe_ingredient;index" json:"id"`
	Amount       int  `gorm:"not null" json:"amount"`

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient,omitempty"`
}

// TableName 指定表名
func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}
