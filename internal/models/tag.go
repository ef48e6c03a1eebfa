package models

import "time"

// Tag 菜谱标签
type Tag struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(200);uniqueIndex;not null" json:"name"`
	Color     string    `gorm:"type:varchar(7);uniqueIndex;not null" json:"color"` // #RRGGBB
	Slug      string    `gorm:"type:varchar(200);uniqueIndex;not null" json:"slug"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// TableName 指定表名
func (Tag) TableName() string {
	return "tags"
}
