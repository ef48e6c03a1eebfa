//go:build integration
// +build integration

package repository

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/foodgram-next/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB 初始化 PostgreSQL 集成测试数据库。
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	dropAll := func() {
		_ = db.Migrator().DropTable("recipe_tags")
		_ = db.Migrator().DropTable(
			&models.ShoppingCart{},
			&models.Favorite{},
			&models.RecipeIngredient{},
			&models.Recipe{},
			&models.Ingredient{},
			&models.Tag{},
			&models.Subscription{},
			&models.AuthzAuditLog{},
			&models.User{},
		)
	}
	dropAll()
	if err := models.AutoMigrateWith(db); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}

	t.Cleanup(func() {
		dropAll()
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestPostgresIngredientPrefixSearchIsCaseInsensitive(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	repo := NewIngredientRepository(db)
	createTestIngredient(t, db, "Сахар", "гр")
	createTestIngredient(t, db, "соль", "гр")

	items, err := repo.List(IngredientListFilter{NamePrefix: "сах"})
	if err != nil {
		t.Fatalf("list ingredients failed: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Сахар" {
		t.Fatalf("ILIKE prefix want [Сахар] got %+v", items)
	}
}

func TestPostgresShoppingCartLineItems(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	recipes := NewRecipeRepository(db)
	cart := NewShoppingCartRepository(db)
	user := createTestUser(t, db, "alice")
	sugar := createTestIngredient(t, db, "сахар", "гр")
	tag := createTestTag(t, db, "Обед", "#00FF00", "lunch")
	recipe := createTestRecipe(t, recipes, user.ID, "Каша", time.Now(), []uint{tag.ID}, []models.RecipeIngredient{
		{IngredientID: sugar.ID, Amount: 150},
	})
	if err := cart.Add(user.ID, recipe.ID); err != nil {
		t.Fatalf("add cart failed: %v", err)
	}

	rows, err := cart.ListLineItems(user.ID)
	if err != nil {
		t.Fatalf("list line items failed: %v", err)
	}
	if len(rows) != 1 || rows[0].Amount != 150 || rows[0].IngredientName != "сахар" {
		t.Fatalf("unexpected rows: %+v", rows)
	}

	filtered, total, err := recipes.List(RecipeListFilter{Page: 1, PageSize: 6, TagSlugs: []string{"lunch"}, InCartOf: user.ID})
	if err != nil || total != 1 || filtered[0].ID != recipe.ID {
		t.Fatalf("combined filter want [recipe] got total=%d err=%v", total, err)
	}
}
