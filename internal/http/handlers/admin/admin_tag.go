package admin

import (
	"github.com/foodgram-next/internal/http/response"
	"github.com/foodgram-next/internal/logger"
	"github.com/foodgram-next/internal/service"

	"github.com/gin-gonic/gin"
)

// TagRequest 标签写入请求
type TagRequest struct {
	Name  string `json:"name" binding:"required,max=200"`
	Color string `json:"color" binding:"required,hexcolor"`
	Slug  string `json:"slug" binding:"required,max=200,slug"`
}

func (r TagRequest) toInput() service.TagInput {
	return service.TagInput{Name: r.Name, Color: r.Color, Slug: r.Slug}
}

// CreateTag 创建标签
func (h *Handler) CreateTag(c *gin.Context) {
	var req TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	tag, err := h.TagService.Create(c.Request.Context(), req.toInput())
	if err != nil {
		respondWithMappedError(c, err, tagWriteErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	logger.Infow("admin_tag_created", "operator_user_id", currentUserID(c), "tag_id", tag.ID, "slug", tag.Slug)
	response.Success(c, tag)
}

// UpdateTag 更新标签
func (h *Handler) UpdateTag(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	tag, err := h.TagService.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		respondWithMappedError(c, err, tagWriteErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, tag)
}

// DeleteTag 删除标签
func (h *Handler) DeleteTag(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.TagService.Delete(c.Request.Context(), id); err != nil {
		respondWithMappedError(c, err, tagWriteErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	logger.Infow("admin_tag_deleted", "operator_user_id", currentUserID(c), "tag_id", id)
	response.Success(c, nil)
}
