package admin

import (
	"github.com/foodgram-next/internal/http/response"
	"github.com/foodgram-next/internal/service"

	"github.com/gin-gonic/gin"
)

// IngredientRequest 食材写入请求
type IngredientRequest struct {
	Name            string `json:"name" binding:"required,max=200"`
	MeasurementUnit string `json:"measurement_unit" binding:"required,measurement_unit"`
}

// CreateIngredient 创建食材
func (h *Handler) CreateIngredient(c *gin.Context) {
	var req IngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	item, err := h.IngredientService.Create(service.IngredientInput{
		Name:            req.Name,
		MeasurementUnit: req.MeasurementUnit,
	})
	if err != nil {
		respondWithMappedError(c, err, ingredientWriteErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, item)
}

// UpdateIngredient 更新食材
func (h *Handler) UpdateIngredient(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req IngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	item, err := h.IngredientService.Update(id, service.IngredientInput{
		Name:            req.Name,
		MeasurementUnit: req.MeasurementUnit,
	})
	if err != nil {
		respondWithMappedError(c, err, ingredientWriteErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, item)
}

// DeleteIngredient 删除食材
func (h *Handler) DeleteIngredient(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.IngredientService.Delete(id); err != nil {
		respondWithMappedError(c, err, ingredientWriteErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, nil)
}

// ImportIngredients 上传 CSV 批量导入食材（multipart 字段 file）
func (h *Handler) ImportIngredients(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.import_file_required", err)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.import_file_required", err)
		return
	}
	defer file.Close()

	requestID := c.GetString("request_id")
	result, err := h.IngredientService.ImportCSV(file, requestID)
	if err != nil {
		respondWithMappedError(c, err, ingredientImportErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	requestLog(c).Infow("admin_ingredient_import_accepted",
		"operator_user_id", currentUserID(c),
		"filename", fileHeader.Filename,
		"total", result.Total,
		"batches", result.Batches,
		"queued", result.Queued,
	)
	response.Success(c, result)
}
