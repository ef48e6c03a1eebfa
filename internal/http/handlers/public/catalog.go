package public

import (
	"errors"

	"github.com/foodgram-next/internal/http/response"
	"github.com/foodgram-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListTags 标签列表
func (h *Handler) ListTags(c *gin.Context) {
	tags, err := h.TagService.List(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.Success(c, tags)
}

// GetTag 标签详情
func (h *Handler) GetTag(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	tag, err := h.TagService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrTagNotFound) {
			respondError(c, response.CodeNotFound, "error.tag_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.Success(c, tag)
}

// ListIngredients 食材列表，name 为名称前缀
func (h *Handler) ListIngredients(c *gin.Context) {
	items, err := h.IngredientService.List(c.Query("name"))
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.Success(c, items)
}

// GetIngredient 食材详情
func (h *Handler) GetIngredient(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	item, err := h.IngredientService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrIngredientNotFound) {
			respondError(c, response.CodeNotFound, "error.ingredient_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.Success(c, item)
}
