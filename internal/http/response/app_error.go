package response

import "strings"

// AppError 携带业务码与已本地化消息的错误，Fields 为字段级校验信息
type AppError struct {
	Code    int
	Message string
	Fields  map[string]string
	Err     error
}

// NewAppError 构造错误，err 为底层原因，可为 nil
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// WithField 追加字段错误，字段名统一小写
func (e *AppError) WithField(field, reason string) *AppError {
	field = strings.ToLower(strings.TrimSpace(field))
	if field == "" {
		return e
	}
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[field] = reason
	return e
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}
