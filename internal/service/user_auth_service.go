package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/foodgram-next/internal/cache"
	"github.com/foodgram-next/internal/config"
	"github.com/foodgram-next/internal/constants"
	"github.com/foodgram-next/internal/logger"
	"github.com/foodgram-next/internal/models"
	"github.com/foodgram-next/internal/repository"
	"github.com/foodgram-next/internal/validation"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	usernameMaxLength  = 150
	reservedUsernameMe = "me"
)

// UserAuthService 注册、登录与 Token 吊销
type UserAuthService struct {
	cfg      *config.Config
	userRepo repository.UserRepository
	now      func() time.Time
}

func NewUserAuthService(cfg *config.Config, userRepo repository.UserRepository) *UserAuthService {
	return &UserAuthService{cfg: cfg, userRepo: userRepo, now: time.Now}
}

// RegisterInput 注册输入
type RegisterInput struct {
	Email     string
	Username  string
	FirstName string
	LastName  string
	Password  string
}

// Session 登录结果
type Session struct {
	User      *models.User
	Token     string
	ExpiresAt time.Time
}

func (s *UserAuthService) tokenTTL() time.Duration {
	hours := s.cfg.JWT.ExpireHours
	if hours <= 0 {
		hours = defaultUserJWTExpireHours
	}
	return time.Duration(hours) * time.Hour
}

// GenerateUserJWT 按当前 TokenVersion 签发 Token
func (s *UserAuthService) GenerateUserJWT(user *models.User) (string, time.Time, error) {
	claims := newUserClaims(user, s.now(), s.tokenTTL())
	token, err := signUserJWT(s.cfg.JWT.SecretKey, claims)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, claims.ExpiresAt.Time, nil
}

func (s *UserAuthService) ParseUserJWT(raw string) (*UserJWTClaims, error) {
	return ParseUserJWT(s.cfg.JWT.SecretKey, raw)
}

// Register 邮箱与用户名均需唯一
func (s *UserAuthService) Register(input RegisterInput) (*models.User, error) {
	email, err := NormalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}
	username, err := normalizeUsername(input.Username)
	if err != nil {
		return nil, err
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, input.Password, username, email); err != nil {
		return nil, err
	}
	if err := s.ensureUnique(email, username); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := s.now()
	user := &models.User{
		Email:        email,
		Username:     username,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		PasswordHash: string(hash),
		Status:       constants.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserAuthService) ensureUnique(email, username string) error {
	byEmail, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return err
	}
	if byEmail != nil {
		return ErrEmailExists
	}
	byName, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return err
	}
	if byName != nil {
		return ErrUsernameExists
	}
	return nil
}

// Login 未知邮箱与错误密码返回同一个错误
func (s *UserAuthService) Login(email, password string) (*Session, error) {
	normalized, err := NormalizeEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	user, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return nil, err
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	if !strings.EqualFold(user.Status, constants.UserStatusActive) {
		return nil, ErrUserDisabled
	}

	token, expiresAt, err := s.GenerateUserJWT(user)
	if err != nil {
		return nil, err
	}
	now := s.now()
	user.LastLoginAt = &now
	if err := s.save(user); err != nil {
		return nil, err
	}
	return &Session{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// Logout 吊销该用户此前签发的全部 Token
func (s *UserAuthService) Logout(userID uint) error {
	user, err := s.mustUser(userID)
	if err != nil {
		return err
	}
	s.revokeTokens(user)
	return s.save(user)
}

// ChangePassword 成功后旧 Token 全部失效，需要重新登录
func (s *UserAuthService) ChangePassword(userID uint, currentPassword, newPassword string) error {
	user, err := s.mustUser(userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return ErrInvalidPassword
	}
	if currentPassword == newPassword {
		return ErrPasswordSame
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, newPassword, user.Username, user.Email); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	s.revokeTokens(user)
	return s.save(user)
}

// ValidateToken 与鉴权中间件相同的规则，供非 HTTP 入口使用
func (s *UserAuthService) ValidateToken(raw string) (*models.User, error) {
	claims, err := s.ParseUserJWT(raw)
	if errors.Is(err, jwt.ErrTokenExpired) {
		return nil, err
	}
	if err != nil {
		return nil, ErrTokenInvalid
	}
	user, err := s.userRepo.GetByID(claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrTokenInvalid
	}
	var issuedAt time.Time
	if claims.IssuedAt != nil {
		issuedAt = claims.IssuedAt.Time
	}
	switch err := cache.BuildUserAuthState(user).Check(claims.TokenVersion, issuedAt); {
	case errors.Is(err, cache.ErrAuthUserDisabled):
		return nil, ErrUserDisabled
	case err != nil:
		return nil, ErrTokenInvalid
	}
	return user, nil
}

func (s *UserAuthService) mustUser(userID uint) (*models.User, error) {
	if userID == 0 {
		return nil, ErrNotFound
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

func (s *UserAuthService) revokeTokens(user *models.User) {
	now := s.now()
	user.TokenVersion++
	user.TokenInvalidBefore = &now
	user.UpdatedAt = now
}

// save 落库后刷新鉴权快照，缓存写失败只影响命中率
func (s *UserAuthService) save(user *models.User) error {
	if err := s.userRepo.Update(user); err != nil {
		return err
	}
	if err := cache.SetUserAuthState(context.Background(), cache.BuildUserAuthState(user)); err != nil {
		logger.Debugw("auth_state_cache_set_failed", "user_id", user.ID, "error", err)
	}
	return nil
}

// NormalizeEmail 小写并校验地址格式
func NormalizeEmail(email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return "", ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(normalized); err != nil {
		return "", ErrInvalidEmail
	}
	return normalized, nil
}

func normalizeUsername(username string) (string, error) {
	normalized := strings.TrimSpace(username)
	switch {
	case normalized == "",
		len([]rune(normalized)) > usernameMaxLength,
		strings.EqualFold(normalized, reservedUsernameMe),
		!validation.IsUsername(normalized):
		return "", ErrInvalidUsername
	}
	return normalized, nil
}
