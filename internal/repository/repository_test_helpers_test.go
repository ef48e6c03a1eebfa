package repository

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/foodgram-next/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupRepositoryTestDB(t *testing.T) *gorm.DB {
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

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
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

func createTestIngredient(t *testing.T, db *gorm.DB, name, unit string) *models.Ingredient {
	t.Helper()
	item := &models.Ingredient{Name: name, MeasurementUnit: unit}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("create ingredient failed: %v", err)
	}
	return item
}

func createTestTag(t *testing.T, db *gorm.DB, name, color, slug string) *models.Tag {
	t.Helper()
	tag := &models.Tag{Name: name, Color: color, Slug: slug}
	if err := db.Create(tag).Error; err != nil {
		t.Fatalf("create tag failed: %v", err)
	}
	return tag
}

func createTestRecipe(t *testing.T, repo *GormRecipeRepository, authorID uint, name string, pubDate time.Time, tagIDs []uint, items []models.RecipeIngredient) *models.Recipe {
	t.Helper()
	recipe := &models.Recipe{
		AuthorID:    authorID,
		Name:        name,
		Text:        "text",
		CookingTime: 10,
		PubDate:     pubDate,
	}
	if err := repo.Create(recipe, tagIDs, items); err != nil {
		t.Fatalf("create recipe failed: %v", err)
	}
	return recipe
}
