package cache

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/foodgram-next/internal/constants"
	"github.com/foodgram-next/internal/models"
)

const authStateTTL = 10 * time.Minute

var (
	ErrAuthUserDisabled = errors.New("user disabled")
	ErrAuthTokenRevoked = errors.New("token revoked")
)

// UserAuthState 校验 Token 所需的用户快照，改密、登出、封禁、员工变更后刷新
type UserAuthState struct {
	UserID       uint   `json:"uid"`
	Status       string `json:"st"`
	IsStaff      bool   `json:"staff"`
	TokenVersion uint64 `json:"tv"`
	// Unix 秒，0 表示未设置
	TokenInvalidBefore int64 `json:"nbf"`
}

func authStateKey(userID uint) string {
	return "auth:user:" + strconv.FormatUint(uint64(userID), 10)
}

// BuildUserAuthState 从用户记录生成快照
func BuildUserAuthState(user *models.User) *UserAuthState {
	if user == nil {
		return nil
	}
	state := &UserAuthState{
		UserID:       user.ID,
		Status:       user.Status,
		IsStaff:      user.IsStaff,
		TokenVersion: user.TokenVersion,
	}
	if user.TokenInvalidBefore != nil {
		state.TokenInvalidBefore = user.TokenInvalidBefore.Unix()
	}
	return state
}

// Check 校验签发时的版本号与签发时间，issuedAt 为零值视为无签发时间
func (s *UserAuthState) Check(tokenVersion uint64, issuedAt time.Time) error {
	if !strings.EqualFold(strings.TrimSpace(s.Status), constants.UserStatusActive) {
		return ErrAuthUserDisabled
	}
	if tokenVersion != s.TokenVersion {
		return ErrAuthTokenRevoked
	}
	if s.TokenInvalidBefore > 0 && (issuedAt.IsZero() || issuedAt.Unix() < s.TokenInvalidBefore) {
		return ErrAuthTokenRevoked
	}
	return nil
}

// GetUserAuthState 读取快照，缓存关闭或未命中时 hit=false
func GetUserAuthState(ctx context.Context, userID uint) (*UserAuthState, bool, error) {
	if userID == 0 {
		return nil, false, nil
	}
	state := new(UserAuthState)
	hit, err := GetJSON(ctx, authStateKey(userID), state)
	if err != nil || !hit {
		return nil, false, err
	}
	return state, true, nil
}

// SetUserAuthState 写入快照
func SetUserAuthState(ctx context.Context, state *UserAuthState) error {
	if state == nil || state.UserID == 0 {
		return nil
	}
	return SetJSON(ctx, authStateKey(state.UserID), state, authStateTTL)
}
