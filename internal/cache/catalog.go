package cache

import (
	"context"
	"time"

	"github.com/foodgram-next/internal/constants"
	"github.com/foodgram-next/internal/models"
)

const catalogCacheTTL = 30 * time.Minute

// GetTagList 读取标签列表缓存
func GetTagList(ctx context.Context) ([]models.Tag, bool, error) {
	var tags []models.Tag
	hit, err := GetJSON(ctx, constants.CacheKeyTagList, &tags)
	if err != nil || !hit {
		return nil, hit, err
	}
	return tags, true, nil
}

// SetTagList 写入标签列表缓存
func SetTagList(ctx context.Context, tags []models.Tag) error {
	return SetJSON(ctx, constants.CacheKeyTagList, tags, catalogCacheTTL)
}

// InvalidateTagList 标签变更后清除缓存
func InvalidateTagList(ctx context.Context) error {
	return Del(ctx, constants.CacheKeyTagList)
}
