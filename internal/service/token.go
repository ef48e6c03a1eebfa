package service

import (
	"time"

	"github.com/foodgram-next/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const defaultUserJWTExpireHours = 168

var userJWTMethod = jwt.SigningMethodHS256

// UserJWTClaims 用户 Token 载荷，TokenVersion 与用户记录不一致即失效
type UserJWTClaims struct {
	UserID       uint   `json:"user_id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

func newUserClaims(user *models.User, issuedAt time.Time, ttl time.Duration) UserJWTClaims {
	return UserJWTClaims{
		UserID:       user.ID,
		Email:        user.Email,
		Username:     user.Username,
		TokenVersion: user.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
	}
}

// ParseUserJWT 只接受 HS256，过期时返回的错误满足 errors.Is(err, jwt.ErrTokenExpired)
func ParseUserJWT(secretKey, raw string) (*UserJWTClaims, error) {
	claims := &UserJWTClaims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{userJWTMethod.Alg()}))
	token, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(secretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.UserID == 0 {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

func signUserJWT(secretKey string, claims UserJWTClaims) (string, error) {
	return jwt.NewWithClaims(userJWTMethod, claims).SignedString([]byte(secretKey))
}
