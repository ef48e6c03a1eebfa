package models

import (
	"errors"
	"strings"

	"github.com/foodgram-next/internal/constants"
	"github.com/foodgram-next/internal/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const defaultStaffPassword = "admin123"

// InitDefaultStaff 初始化默认员工账号，已存在员工时跳过
func InitDefaultStaff(email, username, password string) (*User, error) {
	var existing User
	err := DB.Where("is_staff = ?", true).Order("id ASC").First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		email = "admin@foodgram.local"
	}
	username = strings.TrimSpace(username)
	if username == "" {
		username = "admin"
	}
	if password == "" {
		password = defaultStaffPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	staff := User{
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
		IsStaff:      true,
		Status:       constants.UserStatusActive,
	}
	if err := DB.Create(&staff).Error; err != nil {
		return nil, err
	}

	if password == defaultStaffPassword {
		logger.Warnw("default_staff_created_with_default_password", "email", email, "username", username)
		logger.Warnw("default_staff_password_change_required", "email", email)
	} else {
		logger.Warnw("default_staff_created", "email", email, "password_hidden", true)
	}
	return &staff, nil
}
