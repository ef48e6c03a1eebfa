package queue

import (
	"context"
	"errors"
	"time"

	"github.com/foodgram-next/internal/config"
	"github.com/foodgram-next/internal/constants"
	"github.com/foodgram-next/internal/logger"

	"github.com/hibiken/asynq"
)

// DefaultQueue 清理等低优先级任务使用的队列
const DefaultQueue = constants.QueueDefault

const (
	defaultConcurrency   = 10
	importTaskTimeout    = 2 * time.Minute
	importTaskMaxRetry   = 3
	cleanupTaskMaxRetry  = 5
	cleanupTaskRetention = 24 * time.Hour
)

// Client asynq 客户端；队列未启用时所有投递都是空操作
type Client struct {
	inner *asynq.Client
}

// NewClient 创建队列客户端
func NewClient(cfg *config.QueueConfig) (*Client, error) {
	if cfg == nil || !cfg.Enabled {
		return &Client{}, nil
	}
	return &Client{inner: asynq.NewClient(RedisOpt(cfg))}, nil
}

// Enabled 队列是否可用
func (c *Client) Enabled() bool {
	return c != nil && c.inner != nil
}

// Close 关闭客户端
func (c *Client) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.inner.Close()
}

func (c *Client) enqueue(task *asynq.Task, opts ...asynq.Option) error {
	info, err := c.inner.EnqueueContext(context.Background(), task, opts...)
	if err != nil {
		return err
	}
	logger.Debugw("queue_task_enqueued", "type", task.Type(), "id", info.ID, "queue", info.Queue)
	return nil
}

// EnqueueIngredientImport 投递食材导入批次
func (c *Client) EnqueueIngredientImport(payload IngredientImportPayload, opts ...asynq.Option) error {
	if !c.Enabled() || len(payload.Rows) == 0 {
		return nil
	}
	task, err := NewIngredientImportTask(payload)
	if err != nil {
		return err
	}
	base := []asynq.Option{
		asynq.Queue(constants.QueueImport),
		asynq.MaxRetry(importTaskMaxRetry),
		asynq.Timeout(importTaskTimeout),
	}
	return c.enqueue(task, append(base, opts...)...)
}

// EnqueueRecipeImageCleanup 延迟删除被替换的菜谱图片
func (c *Client) EnqueueRecipeImageCleanup(payload RecipeImageCleanupPayload, delay time.Duration) error {
	if !c.Enabled() || len(payload.Paths) == 0 {
		return nil
	}
	task, err := NewRecipeImageCleanupTask(payload)
	if err != nil {
		return err
	}
	return c.enqueue(task,
		asynq.Queue(DefaultQueue),
		asynq.ProcessIn(max(delay, 0)),
		asynq.MaxRetry(cleanupTaskMaxRetry),
		asynq.Retention(cleanupTaskRetention),
	)
}

// BuildServerConfig 生成 worker 端配置，日志走 zap
func BuildServerConfig(cfg *config.QueueConfig) (asynq.RedisClientOpt, asynq.Config) {
	serverCfg := asynq.Config{
		Concurrency: defaultConcurrency,
		Queues: map[string]int{
			constants.QueueImport: 2,
			DefaultQueue:          1,
		},
		Logger:       logger.S().With("component", "asynq"),
		LogLevel:     asynq.WarnLevel,
		ErrorHandler: asynq.ErrorHandlerFunc(logTaskFailure),
	}
	if cfg != nil {
		if cfg.Concurrency > 0 {
			serverCfg.Concurrency = cfg.Concurrency
		}
		if len(cfg.Queues) > 0 {
			serverCfg.Queues = cfg.Queues
		}
	}
	return RedisOpt(cfg), serverCfg
}

func logTaskFailure(ctx context.Context, task *asynq.Task, err error) {
	retried, _ := asynq.GetRetryCount(ctx)
	maxRetry, _ := asynq.GetMaxRetry(ctx)
	fields := []interface{}{"type", task.Type(), "retried", retried, "max_retry", maxRetry, "error", err}
	if errors.Is(err, asynq.SkipRetry) || retried >= maxRetry {
		logger.Errorw("queue_task_dead", fields...)
		return
	}
	logger.Warnw("queue_task_failed", fields...)
}

// RedisOpt 队列 Redis 连接参数
func RedisOpt(cfg *config.QueueConfig) asynq.RedisClientOpt {
	var endpoint config.RedisEndpoint
	if cfg != nil {
		endpoint = cfg.RedisEndpoint
	}
	return asynq.RedisClientOpt{
		Addr:     endpoint.Addr(),
		Password: endpoint.Password,
		DB:       endpoint.DB,
	}
}
