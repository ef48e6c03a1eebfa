package service

import "errors"

// 通用错误
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
)

// 账号与认证错误
var (
	ErrInvalidEmail       = errors.New("invalid email")
	ErrInvalidUsername    = errors.New("invalid username")
	ErrEmailExists        = errors.New("email already exists")
	ErrUsernameExists     = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserDisabled       = errors.New("user disabled")
	ErrInvalidPassword    = errors.New("current password is incorrect")
	ErrPasswordSame       = errors.New("new password equals current password")
	ErrWeakPassword       = errors.New("password does not satisfy policy")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrStaffSelfDemote    = errors.New("cannot revoke own staff access")
)

// 订阅错误
var (
	ErrSubscribeSelf     = errors.New("cannot subscribe to yourself")
	ErrAlreadySubscribed = errors.New("already subscribed")
	ErrNotSubscribed     = errors.New("not subscribed")
)

// 标签与食材错误
var (
	ErrTagNotFound        = errors.New("tag not found")
	ErrTagExists          = errors.New("tag already exists")
	ErrIngredientNotFound = errors.New("ingredient not found")
	ErrIngredientExists   = errors.New("ingredient already exists")
	ErrIngredientInUse    = errors.New("ingredient is used by recipes")
	ErrInvalidUnit        = errors.New("invalid measurement unit")
	ErrImportFileRequired = errors.New("import file required")
	ErrImportFailed       = errors.New("ingredient import failed")
)

// 菜谱错误
var (
	ErrRecipeNotFound              = errors.New("recipe not found")
	ErrRecipeForbidden             = errors.New("recipe can only be modified by its author")
	ErrRecipeIngredientsRequired   = errors.New("recipe ingredients required")
	ErrRecipeDuplicateIngredient   = errors.New("recipe ingredient duplicated")
	ErrRecipeAmountOutOfRange      = errors.New("recipe ingredient amount out of range")
	ErrRecipeTagsRequired          = errors.New("recipe tags required")
	ErrRecipeDuplicateTag          = errors.New("recipe tag duplicated")
	ErrRecipeCookingTimeOutOfRange = errors.New("recipe cooking time out of range")
	ErrRecipeImageRequired         = errors.New("recipe image required")
	ErrRecipeImageInvalid          = errors.New("recipe image invalid")
	ErrRecipeNameInvalid           = errors.New("recipe name invalid")
	ErrRecipeTextRequired          = errors.New("recipe text required")
)

// 收藏与购物清单错误
var (
	ErrAlreadyInList = errors.New("recipe already in list")
	ErrNotInList     = errors.New("recipe not in list")
)

// 购物清单导出错误
var (
	ErrUnsupportedFormat = errors.New("unsupported shopping list format")
	ErrExportFailed      = errors.New("shopping list export failed")
)
