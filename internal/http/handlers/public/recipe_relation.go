package public

import (
	"github.com/foodgram-next/internal/http/response"
	"github.com/foodgram-next/internal/service"

	"github.com/gin-gonic/gin"
)

// AddFavorite 加入收藏
func (h *Handler) AddFavorite(c *gin.Context) {
	h.addToList(c, service.RecipeListFavorites)
}

// RemoveFavorite 移出收藏
func (h *Handler) RemoveFavorite(c *gin.Context) {
	h.removeFromList(c, service.RecipeListFavorites)
}

// AddToShoppingCart 加入购物清单
func (h *Handler) AddToShoppingCart(c *gin.Context) {
	h.addToList(c, service.RecipeListShoppingCart)
}

// RemoveFromShoppingCart 移出购物清单
func (h *Handler) RemoveFromShoppingCart(c *gin.Context) {
	h.removeFromList(c, service.RecipeListShoppingCart)
}

func (h *Handler) addToList(c *gin.Context, list service.RecipeList) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	recipeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	recipe, err := h.RecipeRelationService.Add(list, userID, recipeID)
	if err != nil {
		respondRecipeRelationError(c, list, err)
		return
	}
	response.Success(c, toRecipeBriefView(*recipe))
}

func (h *Handler) removeFromList(c *gin.Context, list service.RecipeList) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	recipeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.RecipeRelationService.Remove(list, userID, recipeID); err != nil {
		respondRecipeRelationError(c, list, err)
		return
	}
	response.Success(c, nil)
}
