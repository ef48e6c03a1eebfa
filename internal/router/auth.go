package router

import (
	"errors"
	"strings"
	"time"

	"github.com/foodgram-next/internal/authz"
	"github.com/foodgram-next/internal/cache"
	"github.com/foodgram-next/internal/http/response"
	"github.com/foodgram-next/internal/i18n"
	"github.com/foodgram-next/internal/logger"
	"github.com/foodgram-next/internal/repository"
	"github.com/foodgram-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// 客户端沿用 "Token <key>" 写法，同时接受标准 Bearer
var tokenSchemes = []string{"Bearer", "Token"}

// extractToken 解析 Authorization 头
func extractToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	for _, s := range tokenSchemes {
		if strings.EqualFold(scheme, s) {
			return token, true
		}
	}
	return "", false
}

// tokenAuthenticator 校验 JWT 并比对用户的吊销状态
type tokenAuthenticator struct {
	secret string
	users  repository.UserRepository
}

// authenticate 成功时返回 claims，失败时返回错误文案 key
func (a tokenAuthenticator) authenticate(c *gin.Context, header string) (*service.UserJWTClaims, string) {
	if a.secret == "" {
		return nil, "error.jwt_secret_missing"
	}
	if a.users == nil {
		return nil, "error.token_invalid"
	}
	raw, ok := extractToken(header)
	if !ok {
		return nil, "error.auth_header_invalid"
	}
	claims, err := service.ParseUserJWT(a.secret, raw)
	if errors.Is(err, jwt.ErrTokenExpired) {
		return nil, "error.token_expired"
	}
	if err != nil {
		return nil, "error.token_invalid"
	}

	state, err := loadAuthState(c, a.users, claims.UserID)
	if err != nil || state == nil {
		return nil, "error.token_invalid"
	}
	var issuedAt time.Time
	if claims.IssuedAt != nil {
		issuedAt = claims.IssuedAt.Time
	}
	if err := state.Check(claims.TokenVersion, issuedAt); err != nil {
		if errors.Is(err, cache.ErrAuthUserDisabled) {
			return nil, "error.user_disabled"
		}
		return nil, "error.token_revoked"
	}
	return claims, ""
}

func (a tokenAuthenticator) middleware(optional bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			if optional {
				c.Next()
				return
			}
			abortUnauthorized(c, "error.auth_header_missing")
			return
		}
		claims, failKey := a.authenticate(c, header)
		if claims == nil {
			abortUnauthorized(c, failKey)
			return
		}
		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Set("username", claims.Username)
		c.Next()
	}
}

// UserJWTAuthMiddleware 必须登录
func UserJWTAuthMiddleware(secretKey string, userRepo repository.UserRepository) gin.HandlerFunc {
	return tokenAuthenticator{secret: secretKey, users: userRepo}.middleware(false)
}

// OptionalUserAuthMiddleware 未携带 Authorization 时按匿名放行，携带了则必须有效
func OptionalUserAuthMiddleware(secretKey string, userRepo repository.UserRepository) gin.HandlerFunc {
	return tokenAuthenticator{secret: secretKey, users: userRepo}.middleware(true)
}

// loadAuthState 先查缓存，未命中回源数据库并回填
func loadAuthState(c *gin.Context, userRepo repository.UserRepository, userID uint) (*cache.UserAuthState, error) {
	ctx := c.Request.Context()
	if state, hit, err := cache.GetUserAuthState(ctx, userID); err == nil && hit {
		return state, nil
	}
	user, err := userRepo.GetByID(userID)
	if err != nil || user == nil {
		return nil, err
	}
	state := cache.BuildUserAuthState(user)
	if err := cache.SetUserAuthState(ctx, state); err != nil {
		logger.Debugw("auth_state_cache_set_failed", "user_id", userID, "error", err)
	}
	return state, nil
}

// StaffRBACMiddleware 员工接口鉴权，资源取路由模板路径，须挂在 UserJWTAuthMiddleware 之后
func StaffRBACMiddleware(authzService *authz.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")
		if authzService == nil || userID == 0 {
			if authzService == nil {
				logger.Errorw("staff_rbac_service_unavailable")
			}
			abortUnauthorized(c, "error.unauthorized")
			return
		}

		resource := c.FullPath()
		if resource == "" {
			resource = c.Request.URL.Path
		}
		method := c.Request.Method

		allowed, err := authzService.EnforceUser(userID, resource, method)
		switch {
		case err != nil:
			logger.Errorw("staff_rbac_enforce_failed", "user_id", userID, "method", method, "resource", resource, "error", err)
			abortUnauthorized(c, "error.unauthorized")
		case !allowed:
			logger.Warnw("staff_rbac_permission_denied", "user_id", userID, "method", method, "resource", authz.NormalizeObject(resource))
			response.Forbidden(c, i18n.T(i18n.ResolveLocale(c), "error.forbidden"))
			c.Abort()
		default:
			c.Next()
		}
	}
}

func abortUnauthorized(c *gin.Context, key string) {
	response.Unauthorized(c, i18n.T(i18n.ResolveLocale(c), key))
	c.Abort()
}
