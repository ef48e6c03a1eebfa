package repository

import (
	"testing"
	"time"

	"github.com/foodgram-next/internal/constants"
	"github.com/foodgram-next/internal/models"
)

func TestUserRepositoryStatusAndTokenVersion(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewUserRepository(db)
	user := createTestUser(t, db, "alice")

	if err := repo.BumpTokenVersion(user.ID); err != nil {
		t.Fatalf("bump token version failed: %v", err)
	}
	got, err := repo.GetByID(user.ID)
	if err != nil {
		t.Fatalf("get user failed: %v", err)
	}
	if got.TokenVersion != 1 {
		t.Fatalf("token version want 1 got %d", got.TokenVersion)
	}

	if err := repo.UpdateStatus(user.ID, constants.UserStatusDisabled); err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	got, err = repo.GetByID(user.ID)
	if err != nil {
		t.Fatalf("get user failed: %v", err)
	}
	if got.Status != constants.UserStatusDisabled || got.TokenVersion != 2 || got.TokenInvalidBefore == nil {
		t.Fatalf("disable should revoke tokens, got status=%s version=%d", got.Status, got.TokenVersion)
	}
}

func TestUserRepositoryListKeyword(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewUserRepository(db)
	createTestUser(t, db, "alice")
	createTestUser(t, db, "bob")
	createTestUser(t, db, "alicia")

	users, total, err := repo.List(UserListFilter{Page: 1, PageSize: 10, Keyword: "ali"})
	if err != nil {
		t.Fatalf("list users failed: %v", err)
	}
	if total != 2 || len(users) != 2 {
		t.Fatalf("keyword want 2 got total=%d", total)
	}

	byEmail, err := repo.GetByEmail("bob@example.com")
	if err != nil || byEmail == nil || byEmail.Username != "bob" {
		t.Fatalf("get by email want bob got %+v err=%v", byEmail, err)
	}
	missing, err := repo.GetByUsername("nobody")
	if err != nil || missing != nil {
		t.Fatalf("missing username want nil,nil got %v,%v", missing, err)
	}
}

func TestSubscriptionRepositoryListAuthors(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewSubscriptionRepository(db)
	reader := createTestUser(t, db, "reader")
	first := createTestUser(t, db, "first")
	second := createTestUser(t, db, "second")

	for _, author := range []*models.User{first, second} {
		if err := repo.Create(&models.Subscription{UserID: reader.ID, AuthorID: author.ID, CreatedAt: time.Now()}); err != nil {
			t.Fatalf("create subscription failed: %v", err)
		}
	}

	authors, total, err := repo.ListAuthors(SubscriptionListFilter{UserID: reader.ID, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list authors failed: %v", err)
	}
	if total != 2 || len(authors) != 2 || authors[0].ID != second.ID {
		t.Fatalf("authors want newest subscription first, got total=%d %+v", total, authors)
	}

	subscribed, err := repo.SubscribedAuthorIDs(reader.ID, []uint{first.ID, reader.ID})
	if err != nil {
		t.Fatalf("subscribed ids failed: %v", err)
	}
	if !subscribed[first.ID] || subscribed[reader.ID] {
		t.Fatalf("subscribed want {first} got %v", subscribed)
	}

	deleted, err := repo.Delete(reader.ID, first.ID)
	if err != nil || !deleted {
		t.Fatalf("delete want true got %v err=%v", deleted, err)
	}
	exists, err := repo.Exists(reader.ID, first.ID)
	if err != nil || exists {
		t.Fatalf("exists after delete want false got %v err=%v", exists, err)
	}
}
