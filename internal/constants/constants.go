package constants

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 内置角色常量
const (
	RoleStaff = "staff"
)

// 计量单位白名单
var MeasurementUnits = []string{
	"гр",
	"л",
	"кг",
	"ч.л",
	"ст.л",
	"щепотка",
	"по вкусу",
	"g",
	"kg",
	"ml",
	"l",
	"pcs",
}

// 购物清单导出格式常量
const (
	ExportFormatText     = "text"
	ExportFormatDocument = "document"
)

// 队列常量
const (
	QueueDefault             = "default"
	QueueImport              = "import"
	TaskIngredientImport     = "ingredient:import"
	TaskRecipeImageCleanup   = "recipe:image_cleanup"
	IngredientImportBatchMax = 1000
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "fg"
	CacheKeyTagList    = "catalog:tags"
)

// 上传子目录常量
const (
	UploadSceneRecipeImage = "recipes/images"
)
