package public

import (
	"errors"

	"github.com/foodgram-next/internal/http/response"
	"github.com/foodgram-next/internal/i18n"
	"github.com/foodgram-next/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

// respondPasswordPolicyError 密码策略错误带参数，需单独格式化
func respondPasswordPolicyError(c *gin.Context, err error) bool {
	var perr *service.PasswordPolicyError
	if !errors.As(err, &perr) {
		if errors.Is(err, service.ErrWeakPassword) {
			respondError(c, response.CodeBadRequest, "error.password_weak", nil)
			return true
		}
		return false
	}
	msg := i18n.Sprintf(i18n.ResolveLocale(c), perr.Key(), perr.Args()...)
	respondErrorWithMsg(c, response.CodeBadRequest, msg, nil)
	return true
}

var userRegisterErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest, key: "error.invalid_email"},
	{target: service.ErrInvalidUsername, code: response.CodeBadRequest, key: "error.invalid_username"},
	{target: service.ErrEmailExists, code: response.CodeConflict, key: "error.email_exists"},
	{target: service.ErrUsernameExists, code: response.CodeConflict, key: "error.username_exists"},
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, key: "error.bad_request"},
}

var userLoginErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidCredentials, code: response.CodeBadRequest, key: "error.invalid_credentials"},
	{target: service.ErrUserDisabled, code: response.CodeUnauthorized, key: "error.user_disabled"},
}

var setPasswordErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidPassword, code: response.CodeBadRequest, key: "error.password_incorrect"},
	{target: service.ErrPasswordSame, code: response.CodeBadRequest, key: "error.password_same"},
	{target: service.ErrNotFound, code: response.CodeNotFound, key: "error.user_not_found"},
}

var userLookupErrorRules = []mappedHandlerError{
	{target: service.ErrNotFound, code: response.CodeNotFound, key: "error.user_not_found"},
}

var subscriptionErrorRules = []mappedHandlerError{
	{target: service.ErrSubscribeSelf, code: response.CodeBadRequest, key: "error.subscribe_self"},
	{target: service.ErrAlreadySubscribed, code: response.CodeBadRequest, key: "error.already_subscribed"},
	{target: service.ErrNotSubscribed, code: response.CodeBadRequest, key: "error.not_subscribed"},
	{target: service.ErrNotFound, code: response.CodeNotFound, key: "error.user_not_found"},
}

var recipeWriteErrorRules = []mappedHandlerError{
	{target: service.ErrRecipeNotFound, code: response.CodeNotFound, key: "error.recipe_not_found"},
	{target: service.ErrRecipeForbidden, code: response.CodeForbidden, key: "error.recipe_forbidden"},
	{target: service.ErrForbidden, code: response.CodeUnauthorized, key: "error.unauthorized"},
	{target: service.ErrRecipeIngredientsRequired, code: response.CodeBadRequest, key: "error.recipe_ingredients_required"},
	{target: service.ErrRecipeDuplicateIngredient, code: response.CodeBadRequest, key: "error.recipe_duplicate_ingredient"},
	{target: service.ErrRecipeAmountOutOfRange, code: response.CodeBadRequest, key: "error.recipe_amount_out_of_range"},
	{target: service.ErrRecipeTagsRequired, code: response.CodeBadRequest, key: "error.recipe_tags_required"},
	{target: service.ErrRecipeDuplicateTag, code: response.CodeBadRequest, key: "error.recipe_duplicate_tag"},
	{target: service.ErrRecipeCookingTimeOutOfRange, code: response.CodeBadRequest, key: "error.recipe_cooking_time_out_of_range"},
	{target: service.ErrRecipeImageRequired, code: response.CodeBadRequest, key: "error.recipe_image_required"},
	{target: service.ErrRecipeImageInvalid, code: response.CodeBadRequest, key: "error.recipe_image_invalid"},
	{target: service.ErrRecipeNameInvalid, code: response.CodeBadRequest, key: "error.recipe_name_invalid"},
	{target: service.ErrRecipeTextRequired, code: response.CodeBadRequest, key: "error.recipe_text_required"},
	{target: service.ErrIngredientNotFound, code: response.CodeBadRequest, key: "error.ingredient_not_found"},
	{target: service.ErrTagNotFound, code: response.CodeBadRequest, key: "error.tag_not_found"},
}

var favoriteErrorRules = []mappedHandlerError{
	{target: service.ErrRecipeNotFound, code: response.CodeNotFound, key: "error.recipe_not_found"},
	{target: service.ErrAlreadyInList, code: response.CodeBadRequest, key: "error.already_in_favorites"},
	{target: service.ErrNotInList, code: response.CodeBadRequest, key: "error.not_in_favorites"},
}

var shoppingCartErrorRules = []mappedHandlerError{
	{target: service.ErrRecipeNotFound, code: response.CodeNotFound, key: "error.recipe_not_found"},
	{target: service.ErrAlreadyInList, code: response.CodeBadRequest, key: "error.already_in_cart"},
	{target: service.ErrNotInList, code: response.CodeBadRequest, key: "error.not_in_cart"},
}

var shoppingListExportErrorRules = []mappedHandlerError{
	{target: service.ErrUnsupportedFormat, code: response.CodeBadRequest, key: "error.export_format_unsupported"},
}

func respondRecipeWriteError(c *gin.Context, err error) {
	respondWithMappedError(c, err, recipeWriteErrorRules, response.CodeInternal, "error.internal_error")
}

func respondRecipeRelationError(c *gin.Context, list service.RecipeList, err error) {
	rules := favoriteErrorRules
	if list == service.RecipeListShoppingCart {
		rules = shoppingCartErrorRules
	}
	respondWithMappedError(c, err, concatMappedHandlerErrors(rules, []mappedHandlerError{
		{target: service.ErrForbidden, code: response.CodeUnauthorized, key: "error.unauthorized"},
	}), response.CodeInternal, "error.internal_error")
}
