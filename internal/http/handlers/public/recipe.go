package public

import (
	"strconv"
	"strings"

	"github.com/foodgram-next/internal/http/handlers/shared"
	"github.com/foodgram-next/internal/http/response"
	"github.com/foodgram-next/internal/repository"
	"github.com/foodgram-next/internal/service"

	"github.com/gin-gonic/gin"
)

// RecipeIngredientRequest 菜谱食材用量
type RecipeIngredientRequest struct {
	ID     uint `json:"id" binding:"required"`
	Amount int  `json:"amount" binding:"required"`
}

// RecipeRequest 创建/更新菜谱请求
type RecipeRequest struct {
	Ingredients []RecipeIngredientRequest `json:"ingredients" binding:"required,dive"`
	Tags        []uint                    `json:"tags" binding:"required"`
	Image       string                    `json:"image"`
	Name        string                    `json:"name" binding:"required,max=200"`
	Text        string                    `json:"text" binding:"required"`
	CookingTime int                       `json:"cooking_time" binding:"required"`
}

func (r RecipeRequest) toInput() service.RecipeInput {
	items := make([]service.RecipeIngredientInput, 0, len(r.Ingredients))
	for _, item := range r.Ingredients {
		items = append(items, service.RecipeIngredientInput{ID: item.ID, Amount: item.Amount})
	}
	return service.RecipeInput{
		Name:        r.Name,
		Image:       r.Image,
		Text:        r.Text,
		CookingTime: r.CookingTime,
		Tags:        r.Tags,
		Ingredients: items,
	}
}

// ListRecipes 菜谱列表
func (h *Handler) ListRecipes(c *gin.Context) {
	viewerID := optionalUserID(c)
	page, limit := h.pageParams(c)
	filter := repository.RecipeListFilter{
		Page:     page,
		PageSize: limit,
		TagSlugs: normalizeTagSlugs(c.QueryArray("tags")),
	}
	if raw := strings.TrimSpace(c.Query("author")); raw != "" {
		authorID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.invalid_id", nil)
			return
		}
		filter.AuthorID = uint(authorID)
	}
	if queryFlag(c, "is_favorited") {
		filter.FavoritedBy = viewerID
	}
	if queryFlag(c, "is_in_shopping_cart") {
		filter.InCartOf = viewerID
	}

	views, total, err := h.RecipeService.List(viewerID, filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	items := make([]RecipeDetailView, 0, len(views))
	for _, view := range views {
		items = append(items, toRecipeDetailView(view))
	}
	response.SuccessWithPage(c, items, shared.BuildPagination(page, limit, total))
}

// GetRecipe 菜谱详情
func (h *Handler) GetRecipe(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	view, err := h.RecipeService.Get(optionalUserID(c), id)
	if err != nil {
		respondRecipeWriteError(c, err)
		return
	}
	response.Success(c, toRecipeDetailView(*view))
}

// CreateRecipe 创建菜谱
func (h *Handler) CreateRecipe(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	view, err := h.RecipeService.Create(userID, req.toInput())
	if err != nil {
		respondRecipeWriteError(c, err)
		return
	}
	response.Success(c, toRecipeDetailView(*view))
}

// UpdateRecipe 更新菜谱，image 为空时保留原图
func (h *Handler) UpdateRecipe(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	view, err := h.RecipeService.Update(userID, id, req.toInput())
	if err != nil {
		respondRecipeWriteError(c, err)
		return
	}
	response.Success(c, toRecipeDetailView(*view))
}

// DeleteRecipe 删除菜谱
func (h *Handler) DeleteRecipe(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.RecipeService.Delete(userID, id); err != nil {
		respondRecipeWriteError(c, err)
		return
	}
	response.Success(c, nil)
}

func normalizeTagSlugs(raw []string) []string {
	result := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, value := range raw {
		for _, part := range strings.Split(value, ",") {
			slug := strings.ToLower(strings.TrimSpace(part))
			if slug == "" {
				continue
			}
			if _, ok := seen[slug]; ok {
				continue
			}
			seen[slug] = struct{}{}
			result = append(result, slug)
		}
	}
	return result
}
