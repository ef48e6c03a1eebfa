package repository

import "time"

// UserListFilter 用户列表筛选
type UserListFilter struct {
	Page     int
	PageSize int
	Keyword  string
	IsStaff  *bool
}

// SubscriptionListFilter 订阅作者列表筛选
type SubscriptionListFilter struct {
	UserID   uint
	Page     int
	PageSize int
}

// IngredientListFilter 食材列表筛选
type IngredientListFilter struct {
	NamePrefix string
	Limit      int
}

// RecipeListFilter 菜谱列表筛选
type RecipeListFilter struct {
	Page        int
	PageSize    int
	AuthorID    uint
	TagSlugs    []string
	FavoritedBy uint // 仅返回该用户收藏的菜谱
	InCartOf    uint // 仅返回该用户购物清单中的菜谱
}

// AuthzAuditLogListFilter 权限审计日志筛选
type AuthzAuditLogListFilter struct {
	Page           int
	PageSize       int
	OperatorUserID uint
	TargetUserID   uint
	Action         string
	Role           string
	CreatedFrom    *time.Time
	CreatedTo      *time.Time
}

// CartLineItemRow 购物清单明细行：购物清单 -> 菜谱 -> 菜谱食材 -> 食材
type CartLineItemRow struct {
	IngredientName  string
	MeasurementUnit string
	Amount          int
}
