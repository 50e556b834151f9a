package service

import (
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/craftshowcase/internal/config"
	"github.com/craftshowcase/internal/constants"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthService 管理员认证服务，凭据来自配置
type AuthService struct {
	cfg *config.AdminConfig
}

// NewAuthService 创建认证服务实例
func NewAuthService(cfg *config.AdminConfig) *AuthService {
	return &AuthService{cfg: cfg}
}

// AdminClaims 会话 JWT 声明
type AdminClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// SessionTTL 会话有效期
func (s *AuthService) SessionTTL() time.Duration {
	hours := s.cfg.SessionHours
	if hours <= 0 {
		hours = 6
	}
	return time.Duration(hours) * time.Hour
}

// Login 校验凭据并签发会话 token
func (s *AuthService) Login(email, password string) (string, time.Time, error) {
	if !s.checkCredentials(email, password) {
		return "", time.Time{}, ErrInvalidCredentials
	}
	return s.issue(strings.TrimSpace(email))
}

// checkCredentials 配置密码为 bcrypt 哈希时按哈希比对，否则按明文比对
func (s *AuthService) checkCredentials(email, password string) bool {
	expectedEmail := strings.TrimSpace(s.cfg.Email)
	if expectedEmail == "" || strings.TrimSpace(email) != expectedEmail {
		return false
	}
	expected := s.cfg.Password
	if strings.HasPrefix(expected, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(expected), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(password)) == 1
}

func (s *AuthService) issue(email string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.SessionTTL())
	claims := AdminClaims{
		Email: email,
		Role:  constants.AdminRole,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.SessionSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseSession 解析会话 token
func (s *AuthService) ParseSession(tokenString string) (*AdminClaims, error) {
	if strings.TrimSpace(tokenString) == "" {
		return nil, ErrSessionInvalid
	}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.SessionSecret), nil
	})
	if err != nil {
		return nil, errors.Join(ErrSessionInvalid, err)
	}
	if claims, ok := token.Claims.(*AdminClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrSessionInvalid
}

// HashPassword 生成 bcrypt 哈希，可写入 ADMIN_PASSWORD
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
