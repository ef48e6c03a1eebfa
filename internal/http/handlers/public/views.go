package public

import (
	"time"

	"github.com/foodgram-next/internal/models"
	"github.com/foodgram-next/internal/service"
)

// UserView 用户信息响应结构
type UserView struct {
	ID           uint   `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

// RecipeBriefView 菜谱简要信息
type RecipeBriefView struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// RecipeIngredientView 菜谱中的食材及用量
type RecipeIngredientView struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// RecipeDetailView 菜谱详情响应结构
type RecipeDetailView struct {
	ID               uint                   `json:"id"`
	Author           UserView               `json:"author"`
	Name             string                 `json:"name"`
	Image            string                 `json:"image"`
	Text             string                 `json:"text"`
	CookingTime      int                    `json:"cooking_time"`
	PubDate          time.Time              `json:"pub_date"`
	Tags             []models.Tag           `json:"tags"`
	Ingredients      []RecipeIngredientView `json:"ingredients"`
	IsFavorited      bool                   `json:"is_favorited"`
	IsInShoppingCart bool                   `json:"is_in_shopping_cart"`
}

// SubscriptionView 订阅作者响应结构
type SubscriptionView struct {
	UserView
	RecipesCount int64             `json:"recipes_count"`
	Recipes      []RecipeBriefView `json:"recipes"`
}

func toUserView(user models.User, isSubscribed bool) UserView {
	return UserView{
		ID:           user.ID,
		Email:        user.Email,
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		IsSubscribed: isSubscribed,
	}
}

func toRecipeBriefView(recipe models.Recipe) RecipeBriefView {
	return RecipeBriefView{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Image:       recipe.Image,
		CookingTime: recipe.CookingTime,
	}
}

func toRecipeDetailView(view service.RecipeView) RecipeDetailView {
	recipe := view.Recipe
	result := RecipeDetailView{
		ID:               recipe.ID,
		Name:             recipe.Name,
		Image:            recipe.Image,
		Text:             recipe.Text,
		CookingTime:      recipe.CookingTime,
		PubDate:          recipe.PubDate,
		Tags:             recipe.Tags,
		Ingredients:      make([]RecipeIngredientView, 0, len(recipe.Ingredients)),
		IsFavorited:      view.IsFavorited,
		IsInShoppingCart: view.IsInShoppingCart,
	}
	if result.Tags == nil {
		result.Tags = []models.Tag{}
	}
	if recipe.Author != nil {
		result.Author = toUserView(*recipe.Author, view.AuthorIsSubscribed)
	}
	for _, item := range recipe.Ingredients {
		row := RecipeIngredientView{ID: item.IngredientID, Amount: item.Amount}
		if item.Ingredient != nil {
			row.Name = item.Ingredient.Name
			row.MeasurementUnit = item.Ingredient.MeasurementUnit
		}
		result.Ingredients = append(result.Ingredients, row)
	}
	return result
}

func toSubscriptionView(item service.AuthorSubscription) SubscriptionView {
	recipes := make([]RecipeBriefView, 0, len(item.Recipes))
	for _, recipe := range item.Recipes {
		recipes = append(recipes, toRecipeBriefView(recipe))
	}
	return SubscriptionView{
		UserView:     toUserView(item.Author, item.IsSubscribed),
		RecipesCount: item.RecipesCount,
		Recipes:      recipes,
	}
}
