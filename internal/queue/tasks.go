package queue

import (
	"github.com/foodgram-next/internal/constants"

	"github.com/goccy/go-json"
	"github.com/hibiken/asynq"
)

const (
	// TaskIngredientImport 食材批量导入任务
	TaskIngredientImport = constants.TaskIngredientImport
	// TaskRecipeImageCleanup 菜谱旧图片清理任务
	TaskRecipeImageCleanup = constants.TaskRecipeImageCleanup
)

// IngredientRow 导入的食材行
type IngredientRow struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

// IngredientImportPayload 食材导入任务载荷，单个任务不超过一个批次
type IngredientImportPayload struct {
	Rows      []IngredientRow `json:"rows"`
	RequestID string          `json:"request_id,omitempty"`
}

// RecipeImageCleanupPayload 图片清理任务载荷
type RecipeImageCleanupPayload struct {
	Paths []string `json:"paths"`
}

// NewIngredientImportTask 创建食材导入任务
func NewIngredientImportTask(payload IngredientImportPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskIngredientImport, body), nil
}

// NewRecipeImageCleanupTask 创建图片清理任务
func NewRecipeImageCleanupTask(payload RecipeImageCleanupPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskRecipeImageCleanup, body), nil
}

// ParseIngredientImportPayload 解析食材导入载荷
func ParseIngredientImportPayload(task *asynq.Task) (IngredientImportPayload, error) {
	var payload IngredientImportPayload
	if task == nil {
		return payload, nil
	}
	err := json.Unmarshal(task.Payload(), &payload)
	return payload, err
}

// ParseRecipeImageCleanupPayload 解析图片清理载荷
func ParseRecipeImageCleanupPayload(task *asynq.Task) (RecipeImageCleanupPayload, error) {
	var payload RecipeImageCleanupPayload
	if task == nil {
		return payload, nil
	}
	err := json.Unmarshal(task.Payload(), &payload)
	return payload, err
}
