package admin

import (
	"errors"

	"github.com/foodgram-next/internal/authz"
	"github.com/foodgram-next/internal/http/response"
	"github.com/foodgram-next/internal/service"

	"github.com/gin-gonic/gin"
)

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

var tagWriteErrorRules = []mappedHandlerError{
	{target: service.ErrTagNotFound, code: response.CodeNotFound, key: "error.tag_not_found"},
	{target: service.ErrTagExists, code: response.CodeConflict, key: "error.tag_exists"},
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, key: "error.bad_request"},
}

var ingredientWriteErrorRules = []mappedHandlerError{
	{target: service.ErrIngredientNotFound, code: response.CodeNotFound, key: "error.ingredient_not_found"},
	{target: service.ErrIngredientExists, code: response.CodeConflict, key: "error.ingredient_exists"},
	{target: service.ErrIngredientInUse, code: response.CodeConflict, key: "error.ingredient_in_use"},
	{target: service.ErrInvalidUnit, code: response.CodeBadRequest, key: "error.invalid_unit"},
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, key: "error.bad_request"},
}

var ingredientImportErrorRules = []mappedHandlerError{
	{target: service.ErrImportFileRequired, code: response.CodeBadRequest, key: "error.import_file_required"},
	{target: service.ErrImportFailed, code: response.CodeInternal, key: "error.import_failed"},
}

var staffUpdateErrorRules = []mappedHandlerError{
	{target: service.ErrNotFound, code: response.CodeNotFound, key: "error.user_not_found"},
	{target: service.ErrStaffSelfDemote, code: response.CodeBadRequest, key: "error.staff_self_demote"},
}

var authzWriteErrorRules = []mappedHandlerError{
	{target: authz.ErrBuiltinRole, code: response.CodeConflict, key: "error.role_builtin"},
	{target: authz.ErrReservedRole, code: response.CodeBadRequest, key: "error.role_reserved"},
	{target: authz.ErrRoleRequired, code: response.CodeBadRequest, key: "error.bad_request"},
	{target: authz.ErrActionRequired, code: response.CodeBadRequest, key: "error.bad_request"},
	{target: authz.ErrUserRequired, code: response.CodeBadRequest, key: "error.bad_request"},
	{target: authz.ErrUnavailable, code: response.CodeInternal, key: "error.authz_unavailable"},
}
