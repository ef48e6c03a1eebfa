package shared

import (
	"errors"

	"github.com/foodgram-next/internal/http/response"
	"github.com/foodgram-next/internal/i18n"
	"github.com/foodgram-next/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// RequestLog 返回带 request_id 的日志实例
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c != nil {
		if id := c.GetString("request_id"); id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// RespondError 按 i18n key 返回错误
func RespondError(c *gin.Context, code int, key string, err error) {
	Fail(c, response.NewAppError(code, i18n.T(i18n.ResolveLocale(c), key), err))
}

// RespondErrorWithMsg 返回已格式化的消息
func RespondErrorWithMsg(c *gin.Context, code int, msg string, err error) {
	Fail(c, response.NewAppError(code, msg, err))
}

// RespondBindError 请求体绑定失败，校验错误按字段展开到 data.fields
func RespondBindError(c *gin.Context, err error) {
	appErr := response.NewAppError(response.CodeBadRequest, i18n.T(i18n.ResolveLocale(c), "error.bad_request"), err)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			appErr.WithField(fe.Field(), fe.Tag())
		}
		// 字段错误属于客户端输入，不记 error 日志
		response.Fail(c, appErr)
		return
	}
	Fail(c, appErr)
}

// Fail 写出错误响应，存在底层错误时记录日志
func Fail(c *gin.Context, appErr *response.AppError) {
	if appErr != nil && appErr.Err != nil {
		log := RequestLog(c)
		fields := []interface{}{"code", appErr.Code, "message", appErr.Message, "error", appErr.Err}
		if appErr.Code >= response.CodeInternal {
			log.Errorw("handler_error", fields...)
		} else {
			log.Warnw("handler_error", fields...)
		}
	}
	response.Fail(c, appErr)
}
