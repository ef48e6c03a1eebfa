package worker

import (
	"context"
	"fmt"

	"github.com/foodgram-next/internal/logger"
	"github.com/foodgram-next/internal/metrics"
	"github.com/foodgram-next/internal/provider"
	"github.com/foodgram-next/internal/queue"
	"github.com/foodgram-next/internal/service"

	"github.com/hibiken/asynq"
)

// IngredientImporter 食材批量写入能力
type IngredientImporter interface {
	ImportRows(rows []queue.IngredientRow) (*service.IngredientImportResult, error)
}

// FileRemover 上传文件删除能力
type FileRemover interface {
	RemoveFile(publicPath string) error
}

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container

	importer IngredientImporter
	files    FileRemover
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	consumer := &Consumer{
		Container: c,
	}
	if c != nil {
		if c.IngredientService != nil {
			consumer.importer = c.IngredientService
		}
		if c.UploadService != nil {
			consumer.files = c.UploadService
		}
	}
	return consumer
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskIngredientImport, c.handleIngredientImport)
	mux.HandleFunc(queue.TaskRecipeImageCleanup, c.handleRecipeImageCleanup)
}

func (c *Consumer) handleIngredientImport(_ context.Context, task *asynq.Task) (err error) {
	defer func() { metrics.RecordTask(queue.TaskIngredientImport, err) }()
	if c == nil || task == nil {
		logger.Debugw("worker_ingredient_import_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParseIngredientImportPayload(task)
	if err != nil {
		logger.Warnw("worker_ingredient_import_unmarshal_failed", "error", err)
		// 载荷损坏时重试没有意义
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	if len(payload.Rows) == 0 {
		logger.Debugw("worker_ingredient_import_skip_empty", "request_id", payload.RequestID)
		return nil
	}
	if c.importer == nil {
		logger.Warnw("worker_ingredient_import_skip_importer_nil", "request_id", payload.RequestID)
		return nil
	}
	result, err := c.importer.ImportRows(payload.Rows)
	if err != nil {
		logger.Warnw("worker_ingredient_import_failed",
			"request_id", payload.RequestID,
			"rows", len(payload.Rows),
			"error", err,
		)
		return err
	}
	logger.Infow("worker_ingredient_import_done",
		"request_id", payload.RequestID,
		"rows", result.Total,
		"inserted", result.Inserted,
		"skipped", result.Skipped,
	)
	return nil
}

func (c *Consumer) handleRecipeImageCleanup(_ context.Context, task *asynq.Task) (err error) {
	defer func() { metrics.RecordTask(queue.TaskRecipeImageCleanup, err) }()
	if c == nil || task == nil {
		logger.Debugw("worker_recipe_image_cleanup_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParseRecipeImageCleanupPayload(task)
	if err != nil {
		logger.Warnw("worker_recipe_image_cleanup_unmarshal_failed", "error", err)
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	if c.files == nil {
		logger.Warnw("worker_recipe_image_cleanup_skip_remover_nil", "paths", len(payload.Paths))
		return nil
	}
	var firstErr error
	for _, path := range payload.Paths {
		if removeErr := c.files.RemoveFile(path); removeErr != nil {
			logger.Warnw("worker_recipe_image_cleanup_remove_failed", "path", path, "error", removeErr)
			if firstErr == nil {
				firstErr = removeErr
			}
		}
	}
	return firstErr
}
