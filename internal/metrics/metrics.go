package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP 请求
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodgram_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "foodgram_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// 购物清单导出
	ShoppingListExportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodgram_shopping_list_exports_total",
			Help: "Total number of shopping list exports by format and result",
		},
		[]string{"format", "result"},
	)

	ShoppingListLines = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "foodgram_shopping_list_lines",
			Help:    "Number of aggregated lines per exported shopping list",
			Buckets: []float64{0, 1, 5, 10, 20, 50, 100, 200},
		},
	)

	// 异步任务
	TasksProcessedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodgram_tasks_processed_total",
			Help: "Total number of background tasks processed",
		},
		[]string{"task", "result"},
	)

	IngredientsImportedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "foodgram_ingredients_imported_total",
			Help: "Total number of ingredients inserted by bulk import",
		},
	)
)

const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// RecordHTTPRequest 记录一次 HTTP 请求
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordShoppingListExport 记录一次购物清单导出，lines<0 表示未生成清单
func RecordShoppingListExport(format string, lines int, err error) {
	if format == "" {
		format = "unknown"
	}
	ShoppingListExportsTotal.WithLabelValues(format, resultLabel(err)).Inc()
	if err == nil && lines >= 0 {
		ShoppingListLines.Observe(float64(lines))
	}
}

// RecordTask 记录后台任务执行结果
func RecordTask(task string, err error) {
	TasksProcessedTotal.WithLabelValues(task, resultLabel(err)).Inc()
}

// RecordIngredientsImported 记录导入写入的食材数量
func RecordIngredientsImported(count int64) {
	if count > 0 {
		IngredientsImportedTotal.Add(float64(count))
	}
}

func resultLabel(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultSuccess
}
