package response

// 错误信封中的 status_code，与 HTTP 状态码一致
const (
	CodeOK              = 0
	CodeBadRequest      = 400 // 参数缺失、图片或 Excel 不合法
	CodeUnauthorized    = 401 // 未登录或会话失效
	CodeForbidden       = 403 // 角色无权访问后台路由
	CodeNotFound        = 404 // 商品、收件人或语言不存在
	CodeTooManyRequests = 429 // 登录限流
	CodeInternal        = 500 // AI、邮件、存储等上游失败
)
