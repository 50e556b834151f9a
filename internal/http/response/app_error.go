package response

import "github.com/gin-gonic/gin"

// AppError 接口错误：业务码、消息 key、本地化消息与原始错误
type AppError struct {
	Code    int
	Key     string
	Message string
	Err     error
}

// NewAppError 创建接口错误，message 为空时使用 key
func NewAppError(code int, key, message string, err error) *AppError {
	if message == "" {
		message = key
	}
	return &AppError{Code: code, Key: key, Message: message, Err: err}
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

// Status 对应的 HTTP 状态码
func (e *AppError) Status() int {
	return httpStatus(e.Code)
}

// Abort 输出错误信封并中止后续中间件
func Abort(c *gin.Context, e *AppError) {
	Error(c, e.Code, e.Message)
	c.Abort()
}
