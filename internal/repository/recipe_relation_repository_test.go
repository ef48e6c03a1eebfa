package repository

import (
	"testing"
	"time"

	"github.com/foodgram-next/internal/models"
)

func TestShoppingCartListLineItemsOrder(t *testing.T) {
	db := setupRepositoryTestDB(t)
	recipes := NewRecipeRepository(db)
	cart := NewShoppingCartRepository(db)
	user := createTestUser(t, db, "alice")
	sugar := createTestIngredient(t, db, "сахар", "гр")
	salt := createTestIngredient(t, db, "соль", "гр")
	milk := createTestIngredient(t, db, "молоко", "л")

	porridge := createTestRecipe(t, recipes, user.ID, "Каша", time.Now(), nil, []models.RecipeIngredient{
		{IngredientID: milk.ID, Amount: 1},
		{IngredientID: sugar.ID, Amount: 100},
	})
	pancakes := createTestRecipe(t, recipes, user.ID, "Блины", time.Now(), nil, []models.RecipeIngredient{
		{IngredientID: sugar.ID, Amount: 50},
		{IngredientID: salt.ID, Amount: 10},
	})
	// 后加入购物清单的菜谱排在后面，与菜谱创建顺序无关
	if err := cart.Add(user.ID, pancakes.ID); err != nil {
		t.Fatalf("add pancakes failed: %v", err)
	}
	if err := cart.Add(user.ID, porridge.ID); err != nil {
		t.Fatalf("add porridge failed: %v", err)
	}

	rows, err := cart.ListLineItems(user.ID)
	if err != nil {
		t.Fatalf("list line items failed: %v", err)
	}
	want := []CartLineItemRow{
		{IngredientName: "сахар", MeasurementUnit: "гр", Amount: 50},
		{IngredientName: "соль", MeasurementUnit: "гр", Amount: 10},
		{IngredientName: "молоко", MeasurementUnit: "л", Amount: 1},
		{IngredientName: "сахар", MeasurementUnit: "гр", Amount: 100},
	}
	if len(rows) != len(want) {
		t.Fatalf("rows want %d got %d: %+v", len(want), len(rows), rows)
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Fatalf("row %d want %+v got %+v", i, want[i], rows[i])
		}
	}

	other := createTestUser(t, db, "bob")
	empty, err := cart.ListLineItems(other.ID)
	if err != nil {
		t.Fatalf("list empty cart failed: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("empty cart want 0 rows got %d", len(empty))
	}
}

func TestRecipeRelationAddRemove(t *testing.T) {
	db := setupRepositoryTestDB(t)
	recipes := NewRecipeRepository(db)
	favorites := NewFavoriteRepository(db)
	user := createTestUser(t, db, "alice")
	first := createTestRecipe(t, recipes, user.ID, "first", time.Now(), nil, nil)
	second := createTestRecipe(t, recipes, user.ID, "second", time.Now(), nil, nil)

	if err := favorites.Add(user.ID, first.ID); err != nil {
		t.Fatalf("add favorite failed: %v", err)
	}
	exists, err := favorites.Exists(user.ID, first.ID)
	if err != nil || !exists {
		t.Fatalf("favorite should exist, got %v err=%v", exists, err)
	}
	if err := favorites.Add(user.ID, first.ID); err == nil {
		t.Fatalf("duplicate favorite should violate unique index")
	}

	contained, err := favorites.ContainedRecipeIDs(user.ID, []uint{first.ID, second.ID})
	if err != nil {
		t.Fatalf("contained ids failed: %v", err)
	}
	if !contained[first.ID] || contained[second.ID] {
		t.Fatalf("contained want {first} got %v", contained)
	}

	removed, err := favorites.Remove(user.ID, first.ID)
	if err != nil || !removed {
		t.Fatalf("remove want true got %v err=%v", removed, err)
	}
	removed, err = favorites.Remove(user.ID, first.ID)
	if err != nil || removed {
		t.Fatalf("second remove want false got %v err=%v", removed, err)
	}
}
