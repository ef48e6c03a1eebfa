package response

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 统一响应结构，HTTP 状态码固定 200，业务结果看 status_code
type Response struct {
	StatusCode int         `json:"status_code"`
	Msg        string      `json:"msg"`
	Data       interface{} `json:"data"`
}

// PageResponse 分页响应
type PageResponse struct {
	Response
	Pagination Pagination `json:"pagination"`
}

// Pagination 分页信息
type Pagination struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"page_size"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"total_page"`
}

// ErrorData 错误响应的 data 部分
type ErrorData struct {
	RequestID string            `json:"request_id,omitempty"`
	Fields    map[string]string `json:"fields,omitempty"`
}

func write(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, payload)
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	write(c, Response{StatusCode: CodeOK, Msg: "success", Data: data})
}

// SuccessWithPage 分页成功响应
func SuccessWithPage(c *gin.Context, data interface{}, pagination Pagination) {
	write(c, PageResponse{
		Response:   Response{StatusCode: CodeOK, Msg: "success", Data: data},
		Pagination: pagination,
	})
}

// Error 错误响应
func Error(c *gin.Context, statusCode int, msg string) {
	Fail(c, NewAppError(statusCode, msg, nil))
}

// Fail 按 AppError 写出错误响应，data 附带 request_id 与字段错误
func Fail(c *gin.Context, appErr *AppError) {
	if appErr == nil {
		appErr = NewAppError(CodeInternal, "internal error", nil)
	}
	data := ErrorData{RequestID: c.GetString("request_id"), Fields: appErr.Fields}
	var payload interface{}
	if data.RequestID != "" || len(data.Fields) > 0 {
		payload = data
	}
	write(c, Response{StatusCode: appErr.Code, Msg: appErr.Message, Data: payload})
}

// Unauthorized 401
func Unauthorized(c *gin.Context, msg string) {
	Error(c, CodeUnauthorized, msg)
}

// Forbidden 403
func Forbidden(c *gin.Context, msg string) {
	Error(c, CodeForbidden, msg)
}

// Attachment 以附件形式返回文件内容，不使用 JSON 包装
func Attachment(c *gin.Context, contentType, filename string, body []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, body)
}
