package service

import (
	"errors"
	"testing"

	"github.com/foodgram-next/internal/models"
	"github.com/foodgram-next/internal/repository"
)

func TestRecipeRelationAddRemove(t *testing.T) {
	db := setupServiceTestDB(t)
	author := createServiceTestUser(t, db, "author")
	reader := createServiceTestUser(t, db, "reader")
	recipe := &models.Recipe{AuthorID: author.ID, Name: "Каша", Image: "/uploads/k.png", Text: "Варить", CookingTime: 15}
	if err := repository.NewRecipeRepository(db).Create(recipe, nil, nil); err != nil {
		t.Fatalf("create recipe failed: %v", err)
	}
	svc := NewRecipeRelationService(repository.NewRecipeRepository(db), repository.NewFavoriteRepository(db), repository.NewShoppingCartRepository(db))

	for _, list := range []RecipeList{RecipeListFavorites, RecipeListShoppingCart} {
		t.Run(string(list), func(t *testing.T) {
			got, err := svc.Add(list, reader.ID, recipe.ID)
			if err != nil {
				t.Fatalf("add failed: %v", err)
			}
			if got.ID != recipe.ID || got.Name != "Каша" {
				t.Fatalf("unexpected recipe: %+v", got)
			}
			if _, err := svc.Add(list, reader.ID, recipe.ID); !errors.Is(err, ErrAlreadyInList) {
				t.Fatalf("duplicate add want ErrAlreadyInList got %v", err)
			}
			if _, err := svc.Add(list, reader.ID, 9999); !errors.Is(err, ErrRecipeNotFound) {
				t.Fatalf("missing recipe want ErrRecipeNotFound got %v", err)
			}
			if err := svc.Remove(list, reader.ID, recipe.ID); err != nil {
				t.Fatalf("remove failed: %v", err)
			}
			if err := svc.Remove(list, reader.ID, recipe.ID); !errors.Is(err, ErrNotInList) {
				t.Fatalf("second remove want ErrNotInList got %v", err)
			}
			if err := svc.Remove(list, reader.ID, 9999); !errors.Is(err, ErrRecipeNotFound) {
				t.Fatalf("missing recipe remove want ErrRecipeNotFound got %v", err)
			}
		})
	}
}
