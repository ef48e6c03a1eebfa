package models

// Ingredient 食材字典
type Ingredient struct {
	ID              uint   `gorm:"primarykey" json:"id"`
	Name            string `gorm:"type:varchar(200);not null;uniqueIndex:idx_ingredient_name_unit" json:"name"`
	MeasurementUnit string `gorm:"type:varchar(16);not null;uniqueIndex:idx_ingredient_name_unit" json:"measurement_unit"`
}

// TableName 指定表名
func (Ingredient) TableName() string {
	return "ingredients"
}
