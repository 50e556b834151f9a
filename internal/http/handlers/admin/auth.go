package admin

import (
	"errors"
	"net/http"

	"github.com/craftshowcase/internal/constants"
	"github.com/craftshowcase/internal/http/response"
	"github.com/craftshowcase/internal/service"

	"github.com/gin-gonic/gin"
)

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AdminLogin 管理员登录，成功后写入 HttpOnly 会话 cookie
func (h *Handler) AdminLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Metrics.RecordLogin("invalid")
		respondError(c, response.CodeUnauthorized, "error.login_invalid", nil)
		return
	}

	token, _, err := h.AuthService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.Metrics.RecordLogin("invalid")
			requestLog(c).Infow("admin_login_rejected", "client_ip", c.ClientIP())
			respondError(c, response.CodeUnauthorized, "error.login_invalid", nil)
			return
		}
		h.Metrics.RecordLogin("error")
		respondError(c, response.CodeInternal, "error.login_failed", err)
		return
	}

	h.Metrics.RecordLogin("success")
	h.setSessionCookie(c, token, int(h.AuthService.SessionTTL().Seconds()))
	response.Success(c, gin.H{"ok": true})
}

// AdminLogout 清除会话 cookie
func (h *Handler) AdminLogout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	response.Success(c, gin.H{"ok": true})
}

// GetAdminMe 当前管理员身份与权限
func (h *Handler) GetAdminMe(c *gin.Context) {
	email := adminEmail(c)
	if email == "" {
		respondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return
	}
	roles, err := h.AuthzService.GetAdminRoles(email)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	policies, err := h.AuthzService.GetAdminPolicies(email)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	available, err := h.AuthzService.ListRoles()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{
		"email":          email,
		"roles":          roles,
		"availableRoles": available,
		"policies":       policies,
	})
}

func (h *Handler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(constants.AdminCookieName, value, maxAge, "/", "", h.Config.Admin.CookieSecure, true)
}
