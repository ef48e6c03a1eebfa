package service

import (
	"errors"
	"testing"

	"github.com/foodgram-next/internal/models"
	"github.com/foodgram-next/internal/repository"
)

func TestSubscriptionLifecycle(t *testing.T) {
	db := setupServiceTestDB(t)
	reader := createServiceTestUser(t, db, "reader")
	author := createServiceTestUser(t, db, "author")
	recipeRepo := repository.NewRecipeRepository(db)
	for _, name := range []string{"Суп", "Каша", "Блины"} {
		recipe := &models.Recipe{AuthorID: author.ID, Name: name, Image: "/uploads/r.png", Text: "t", CookingTime: 10}
		if err := recipeRepo.Create(recipe, nil, nil); err != nil {
			t.Fatalf("create recipe failed: %v", err)
		}
	}
	svc := NewSubscriptionService(repository.NewUserRepository(db), repository.NewSubscriptionRepository(db), recipeRepo)

	if _, err := svc.Subscribe(reader.ID, reader.ID, 0); !errors.Is(err, ErrSubscribeSelf) {
		t.Fatalf("self subscribe want ErrSubscribeSelf got %v", err)
	}
	if _, err := svc.Subscribe(reader.ID, 9999, 0); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing author want ErrNotFound got %v", err)
	}

	item, err := svc.Subscribe(reader.ID, author.ID, 2)
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	if !item.IsSubscribed || item.RecipesCount != 3 || len(item.Recipes) != 2 {
		t.Fatalf("unexpected subscription: count=%d recipes=%d", item.RecipesCount, len(item.Recipes))
	}
	if _, err := svc.Subscribe(reader.ID, author.ID, 0); !errors.Is(err, ErrAlreadySubscribed) {
		t.Fatalf("duplicate want ErrAlreadySubscribed got %v", err)
	}

	items, total, err := svc.ListSubscriptions(reader.ID, 1, 10, 0)
	if err != nil {
		t.Fatalf("list subscriptions failed: %v", err)
	}
	if total != 1 || len(items) != 1 || items[0].Author.ID != author.ID || len(items[0].Recipes) != 3 {
		t.Fatalf("unexpected subscriptions: total=%d items=%+v", total, items)
	}

	if err := svc.Unsubscribe(reader.ID, author.ID); err != nil {
		t.Fatalf("unsubscribe failed: %v", err)
	}
	if err := svc.Unsubscribe(reader.ID, author.ID); !errors.Is(err, ErrNotSubscribed) {
		t.Fatalf("second unsubscribe want ErrNotSubscribed got %v", err)
	}
}
