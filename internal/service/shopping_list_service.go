package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/foodgram-next/internal/i18n"
	"github.com/foodgram-next/internal/logger"
	"github.com/foodgram-next/internal/metrics"
	"github.com/foodgram-next/internal/repository"
	"github.com/foodgram-next/internal/shoppinglist"
)

// ShoppingListPayload 购物清单下载内容
type ShoppingListPayload struct {
	Body        []byte
	ContentType string
	Filename    string
}

// ShoppingListService 购物清单汇总与导出服务
type ShoppingListService struct {
	cartRepo repository.ShoppingCartRepository
}

// NewShoppingListService 创建购物清单服务
func NewShoppingListService(cartRepo repository.ShoppingCartRepository) *ShoppingListService {
	return &ShoppingListService{cartRepo: cartRepo}
}

// BuildAggregatedList 读取用户购物清单并按食材合并用量
func (s *ShoppingListService) BuildAggregatedList(userID uint) (shoppinglist.List, error) {
	rows, err := s.cartRepo.ListLineItems(userID)
	if err != nil {
		return shoppinglist.List{}, err
	}
	items := make([]shoppinglist.CartLineItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, shoppinglist.CartLineItem{
			IngredientName: row.IngredientName,
			Unit:           row.MeasurementUnit,
			Amount:         row.Amount,
		})
	}
	return shoppinglist.Aggregate(items), nil
}

// ExportShoppingList 汇总并渲染购物清单，格式不合法时不访问存储
func (s *ShoppingListService) ExportShoppingList(ctx context.Context, userID uint, rawFormat, locale string) (*ShoppingListPayload, error) {
	format, err := shoppinglist.ParseFormat(rawFormat)
	if err != nil {
		metrics.RecordShoppingListExport("unsupported", -1, err)
		return nil, ErrUnsupportedFormat
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	list, err := s.BuildAggregatedList(userID)
	if err != nil {
		metrics.RecordShoppingListExport(string(format), -1, err)
		return nil, fmt.Errorf("build shopping list: %w", err)
	}

	rendered, err := shoppinglist.Render(list, format, shoppinglist.Options{
		Header: i18n.T(locale, "shopping_list.header"),
	})
	metrics.RecordShoppingListExport(string(format), len(list.Lines), err)
	if err != nil {
		if errors.Is(err, shoppinglist.ErrUnsupportedFormat) {
			return nil, ErrUnsupportedFormat
		}
		logger.Errorw("shopping_list_render_failed", "user_id", userID, "format", format, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	return &ShoppingListPayload{
		Body:        rendered.Body,
		ContentType: rendered.ContentType,
		Filename:    rendered.Filename,
	}, nil
}
