package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/foodgram-next/internal/config"
	"github.com/foodgram-next/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// 1x1 PNG
const testPNGDataURI = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mP8z8BQDwAEhQGAhKmMIQAAAABJRU5ErkJggg=="

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.AutoMigrateWith(db); err != nil {
		t.Fatalf("migrate models failed: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		t.Cleanup(func() { _ = sqlDB.Close() })
	}
	return db
}

func newServiceTestConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		JWT: config.JWTConfig{SecretKey: "test-secret", ExpireHours: 1},
		Security: config.SecurityConfig{
			PasswordPolicy: config.PasswordPolicyConfig{MinLength: 8, RequireLower: true, RequireNumber: true},
		},
		Upload: config.UploadConfig{
			Dir:          t.TempDir(),
			MaxSize:      1 << 20,
			AllowedTypes: []string{"image/png", "image/jpeg"},
			MaxWidth:     100,
			MaxHeight:    100,
		},
		Recipe: config.RecipeConfig{
			MinValue:            1,
			MaxIngredientAmount: 32000,
			MaxCookingTime:      120,
			NameMaxLength:       200,
		},
	}
}

func createServiceTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Email:        username + "@example.com",
		Username:     username,
		PasswordHash: "hash",
		Status:       "active",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func createServiceTestIngredient(t *testing.T, db *gorm.DB, name, unit string) *models.Ingredient {
	t.Helper()
	item := &models.Ingredient{Name: name, MeasurementUnit: unit}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("create ingredient failed: %v", err)
	}
	return item
}

func createServiceTestTag(t *testing.T, db *gorm.DB, name, color, slug string) *models.Tag {
	t.Helper()
	tag := &models.Tag{Name: name, Color: color, Slug: slug}
	if err := db.Create(tag).Error; err != nil {
		t.Fatalf("create tag failed: %v", err)
	}
	return tag
}

type stubRecipePolicy struct {
	allowed map[uint]bool
}

func (p stubRecipePolicy) EnforceUser(userID uint, _, _ string) (bool, error) {
	return p.allowed[userID], nil
}
