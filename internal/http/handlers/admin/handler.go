package admin

import (
	"github.com/craftshowcase/internal/constants"
	handlershared "github.com/craftshowcase/internal/http/handlers/shared"
	"github.com/craftshowcase/internal/provider"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 后台管理接口处理器入口
// 说明：该处理器仅用于管理端 API。
type Handler struct {
	*provider.Container
}

// New 创建后台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func respondWithMappedError(c *gin.Context, err error, rules []handlershared.MappedError, fallbackCode int, fallbackKey string) {
	handlershared.RespondWithMappedError(c, err, rules, fallbackCode, fallbackKey)
}

// adminEmail 读取鉴权中间件写入的管理员邮箱
func adminEmail(c *gin.Context) string {
	return c.GetString(constants.AdminSubjectKey)
}
