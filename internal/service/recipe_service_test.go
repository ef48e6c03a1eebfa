package service

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/foodgram-next/internal/models"
	"github.com/foodgram-next/internal/repository"

	"gorm.io/gorm"
)

type recipeServiceFixture struct {
	svc       *RecipeService
	db        *gorm.DB
	uploads   *UploadService
	author    *models.User
	other     *models.User
	staff     *models.User
	sugar     *models.Ingredient
	salt      *models.Ingredient
	breakfast *models.Tag
	lunch     *models.Tag
}

func setupRecipeServiceTest(t *testing.T) *recipeServiceFixture {
	t.Helper()
	db := setupServiceTestDB(t)
	cfg := newServiceTestConfig(t)
	uploads := NewUploadService(cfg)
	f := &recipeServiceFixture{db: db, uploads: uploads}
	f.author = createServiceTestUser(t, db, "author")
	f.other = createServiceTestUser(t, db, "other")
	f.staff = createServiceTestUser(t, db, "staff")
	f.sugar = createServiceTestIngredient(t, db, "сахар", "гр")
	f.salt = createServiceTestIngredient(t, db, "соль", "гр")
	f.breakfast = createServiceTestTag(t, db, "Завтрак", "#E26C2D", "breakfast")
	f.lunch = createServiceTestTag(t, db, "Обед", "#49B64E", "lunch")
	f.svc = NewRecipeService(RecipeServiceOptions{
		Config:           cfg,
		RecipeRepo:       repository.NewRecipeRepository(db),
		TagRepo:          repository.NewTagRepository(db),
		IngredientRepo:   repository.NewIngredientRepository(db),
		FavoriteRepo:     repository.NewFavoriteRepository(db),
		CartRepo:         repository.NewShoppingCartRepository(db),
		SubscriptionRepo: repository.NewSubscriptionRepository(db),
		Images:           uploads,
		Policy:           stubRecipePolicy{allowed: map[uint]bool{f.staff.ID: true}},
	})
	return f
}

func (f *recipeServiceFixture) validInput() RecipeInput {
	return RecipeInput{
		Name:        "Сырники",
		Image:       testPNGDataURI,
		Text:        "Смешать и обжарить",
		CookingTime: 20,
		Tags:        []uint{f.breakfast.ID},
		Ingredients: []RecipeIngredientInput{{ID: f.sugar.ID, Amount: 50}, {ID: f.salt.ID, Amount: 2}},
	}
}

func TestRecipeServiceCreate(t *testing.T) {
	f := setupRecipeServiceTest(t)
	view, err := f.svc.Create(f.author.ID, f.validInput())
	if err != nil {
		t.Fatalf("create recipe failed: %v", err)
	}
	recipe := view.Recipe
	if recipe.Author == nil || recipe.Author.ID != f.author.ID {
		t.Fatalf("author not preloaded: %+v", recipe.Author)
	}
	if len(recipe.Ingredients) != 2 || recipe.Ingredients[0].Amount != 50 {
		t.Fatalf("unexpected ingredients: %+v", recipe.Ingredients)
	}
	if len(recipe.Tags) != 1 || recipe.Tags[0].Slug != "breakfast" {
		t.Fatalf("unexpected tags: %+v", recipe.Tags)
	}
	if !strings.HasPrefix(recipe.Image, "/uploads/recipes/images/") || !strings.HasSuffix(recipe.Image, ".png") {
		t.Fatalf("unexpected image path: %s", recipe.Image)
	}
	local := filepath.Join(f.uploads.BaseDir(), filepath.FromSlash(strings.TrimPrefix(recipe.Image, "/uploads/")))
	if _, err := os.Stat(local); err != nil {
		t.Fatalf("image file should exist: %v", err)
	}
}

func TestRecipeServiceValidation(t *testing.T) {
	f := setupRecipeServiceTest(t)
	cases := []struct {
		name   string
		mutate func(in *RecipeInput)
		want   error
	}{
		{name: "no ingredients", mutate: func(in *RecipeInput) { in.Ingredients = nil }, want: ErrRecipeIngredientsRequired},
		{name: "duplicate ingredient", mutate: func(in *RecipeInput) {
			in.Ingredients = []RecipeIngredientInput{{ID: f.sugar.ID, Amount: 1}, {ID: f.sugar.ID, Amount: 2}}
		}, want: ErrRecipeDuplicateIngredient},
		{name: "zero amount", mutate: func(in *RecipeInput) { in.Ingredients[0].Amount = 0 }, want: ErrRecipeAmountOutOfRange},
		{name: "huge amount", mutate: func(in *RecipeInput) { in.Ingredients[0].Amount = 32001 }, want: ErrRecipeAmountOutOfRange},
		{name: "unknown ingredient", mutate: func(in *RecipeInput) { in.Ingredients[0].ID = 9999 }, want: ErrIngredientNotFound},
		{name: "no tags", mutate: func(in *RecipeInput) { in.Tags = nil }, want: ErrRecipeTagsRequired},
		{name: "duplicate tag", mutate: func(in *RecipeInput) { in.Tags = []uint{f.lunch.ID, f.lunch.ID} }, want: ErrRecipeDuplicateTag},
		{name: "unknown tag", mutate: func(in *RecipeInput) { in.Tags = []uint{9999} }, want: ErrTagNotFound},
		{name: "cooking time zero", mutate: func(in *RecipeInput) { in.CookingTime = 0 }, want: ErrRecipeCookingTimeOutOfRange},
		{name: "cooking time too long", mutate: func(in *RecipeInput) { in.CookingTime = 121 }, want: ErrRecipeCookingTimeOutOfRange},
		{name: "empty name", mutate: func(in *RecipeInput) { in.Name = "  " }, want: ErrRecipeNameInvalid},
		{name: "missing image", mutate: func(in *RecipeInput) { in.Image = "" }, want: ErrRecipeImageRequired},
		{name: "broken image", mutate: func(in *RecipeInput) { in.Image = "data:image/png;base64,!!!" }, want: ErrRecipeImageInvalid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := f.validInput()
			tc.mutate(&input)
			if _, err := f.svc.Create(f.author.ID, input); !errors.Is(err, tc.want) {
				t.Fatalf("want %v got %v", tc.want, err)
			}
		})
	}
}

func TestRecipeServiceUpdatePermissions(t *testing.T) {
	f := setupRecipeServiceTest(t)
	view, err := f.svc.Create(f.author.ID, f.validInput())
	if err != nil {
		t.Fatalf("create recipe failed: %v", err)
	}
	recipeID := view.Recipe.ID
	oldImage := view.Recipe.Image

	update := f.validInput()
	update.Image = ""
	update.Name = "Сырники с изюмом"
	update.Tags = []uint{f.lunch.ID}
	update.Ingredients = []RecipeIngredientInput{{ID: f.salt.ID, Amount: 5}}

	if _, err := f.svc.Update(f.other.ID, recipeID, update); !errors.Is(err, ErrRecipeForbidden) {
		t.Fatalf("non-author update want ErrRecipeForbidden got %v", err)
	}

	updated, err := f.svc.Update(f.author.ID, recipeID, update)
	if err != nil {
		t.Fatalf("author update failed: %v", err)
	}
	if updated.Recipe.Name != "Сырники с изюмом" || updated.Recipe.Image != oldImage {
		t.Fatalf("unexpected updated recipe: %+v", updated.Recipe)
	}
	if len(updated.Recipe.Ingredients) != 1 || updated.Recipe.Ingredients[0].IngredientID != f.salt.ID {
		t.Fatalf("ingredients should be replaced: %+v", updated.Recipe.Ingredients)
	}
	if len(updated.Recipe.Tags) != 1 || updated.Recipe.Tags[0].ID != f.lunch.ID {
		t.Fatalf("tags should be replaced: %+v", updated.Recipe.Tags)
	}

	update.Image = testPNGDataURI
	byStaff, err := f.svc.Update(f.staff.ID, recipeID, update)
	if err != nil {
		t.Fatalf("staff update failed: %v", err)
	}
	if byStaff.Recipe.Image == oldImage {
		t.Fatalf("image should be replaced")
	}
	oldLocal := filepath.Join(f.uploads.BaseDir(), filepath.FromSlash(strings.TrimPrefix(oldImage, "/uploads/")))
	if _, err := os.Stat(oldLocal); !os.IsNotExist(err) {
		t.Fatalf("old image should be removed without queue, stat err=%v", err)
	}
}

func TestRecipeServiceDeleteCascades(t *testing.T) {
	f := setupRecipeServiceTest(t)
	view, err := f.svc.Create(f.author.ID, f.validInput())
	if err != nil {
		t.Fatalf("create recipe failed: %v", err)
	}
	recipeID := view.Recipe.ID
	relations := NewRecipeRelationService(repository.NewRecipeRepository(f.db), repository.NewFavoriteRepository(f.db), repository.NewShoppingCartRepository(f.db))
	if _, err := relations.Add(RecipeListShoppingCart, f.other.ID, recipeID); err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}
	if _, err := relations.Add(RecipeListFavorites, f.other.ID, recipeID); err != nil {
		t.Fatalf("add to favorites failed: %v", err)
	}

	if err := f.svc.Delete(f.other.ID, recipeID); !errors.Is(err, ErrRecipeForbidden) {
		t.Fatalf("non-author delete want ErrRecipeForbidden got %v", err)
	}
	if err := f.svc.Delete(f.author.ID, recipeID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := f.svc.Get(0, recipeID); !errors.Is(err, ErrRecipeNotFound) {
		t.Fatalf("deleted recipe want ErrRecipeNotFound got %v", err)
	}
	var carts int64
	f.db.Model(&models.ShoppingCart{}).Where("recipe_id = ?", recipeID).Count(&carts)
	var favorites int64
	f.db.Model(&models.Favorite{}).Where("recipe_id = ?", recipeID).Count(&favorites)
	if carts != 0 || favorites != 0 {
		t.Fatalf("relations should cascade, carts=%d favorites=%d", carts, favorites)
	}
}

func TestRecipeServiceListFlags(t *testing.T) {
	f := setupRecipeServiceTest(t)
	first, err := f.svc.Create(f.author.ID, f.validInput())
	if err != nil {
		t.Fatalf("create first failed: %v", err)
	}
	second := f.validInput()
	second.Name = "Борщ"
	second.Tags = []uint{f.lunch.ID}
	if _, err := f.svc.Create(f.author.ID, second); err != nil {
		t.Fatalf("create second failed: %v", err)
	}
	relations := NewRecipeRelationService(repository.NewRecipeRepository(f.db), repository.NewFavoriteRepository(f.db), repository.NewShoppingCartRepository(f.db))
	if _, err := relations.Add(RecipeListFavorites, f.other.ID, first.Recipe.ID); err != nil {
		t.Fatalf("add favorite failed: %v", err)
	}

	views, total, err := f.svc.List(f.other.ID, repository.RecipeListFilter{Page: 1, PageSize: 10, FavoritedBy: f.other.ID})
	if err != nil {
		t.Fatalf("list favorites failed: %v", err)
	}
	if total != 1 || len(views) != 1 || !views[0].IsFavorited || views[0].IsInShoppingCart {
		t.Fatalf("unexpected favorite list: total=%d views=%+v", total, views)
	}

	// 匿名访问忽略个人筛选
	views, total, err = f.svc.List(0, repository.RecipeListFilter{Page: 1, PageSize: 10, FavoritedBy: f.other.ID})
	if err != nil {
		t.Fatalf("anonymous list failed: %v", err)
	}
	if total != 2 || views[0].IsFavorited || views[1].IsFavorited {
		t.Fatalf("anonymous list should ignore favorites filter: total=%d", total)
	}

	views, total, err = f.svc.List(0, repository.RecipeListFilter{Page: 1, PageSize: 10, TagSlugs: []string{"lunch"}})
	if err != nil {
		t.Fatalf("list by tag failed: %v", err)
	}
	if total != 1 || views[0].Recipe.Name != "Борщ" {
		t.Fatalf("unexpected tag filter result: total=%d", total)
	}
}
