package shared

import (
	"github.com/foodgram-next/internal/config"
	"github.com/foodgram-next/internal/http/response"
)

const (
	defaultPageLimit = 6
	maxPageLimit     = 100
)

// NormalizePagination 归一化分页参数，limit 为空或非法时使用配置默认值。
func NormalizePagination(cfg config.PaginationConfig, page, limit int) (int, int) {
	defaultLimit := cfg.DefaultLimit
	if defaultLimit <= 0 {
		defaultLimit = defaultPageLimit
	}
	maxLimit := cfg.MaxLimit
	if maxLimit <= 0 {
		maxLimit = maxPageLimit
	}
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

// BuildPagination 构造分页信息。
func BuildPagination(page, pageSize int, total int64) response.Pagination {
	totalPage := int64(0)
	if pageSize > 0 {
		totalPage = (total + int64(pageSize) - 1) / int64(pageSize)
	}
	return response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	}
}
