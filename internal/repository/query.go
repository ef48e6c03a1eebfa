package repository

import (
	"errors"

	"gorm.io/gorm"
)

// firstOrNil 取第一条记录，不存在时返回 nil, nil
func firstOrNil[T any](query *gorm.DB, conds ...interface{}) (*T, error) {
	var item T
	err := query.First(&item, conds...).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// paginate 分页 scope，size<=0 不分页，page<1 按第一页处理
func paginate(page, size int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if size <= 0 {
			return db
		}
		return db.Limit(size).Offset((max(page, 1) - 1) * size)
	}
}

// findPage 先统计总数再取当前页；orders 依次作为排序条件
func findPage[T any](query *gorm.DB, page, size int, orders ...string) ([]T, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	items := make([]T, 0)
	if total == 0 {
		return items, 0, nil
	}
	query = query.Scopes(paginate(page, size))
	for _, order := range orders {
		query = query.Order(order)
	}
	if err := query.Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
