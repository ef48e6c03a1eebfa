package service

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/foodgram-next/internal/constants"
	"github.com/foodgram-next/internal/logger"
	"github.com/foodgram-next/internal/metrics"
	"github.com/foodgram-next/internal/models"
	"github.com/foodgram-next/internal/queue"
	"github.com/foodgram-next/internal/repository"
	"github.com/foodgram-next/internal/validation"

	"github.com/hibiken/asynq"
)

const ingredientSearchLimit = 200

// IngredientImportQueue 食材导入任务投递能力
type IngredientImportQueue interface {
	Enabled() bool
	EnqueueIngredientImport(payload queue.IngredientImportPayload, opts ...asynq.Option) error
}

// IngredientInput 食材写入参数
type IngredientInput struct {
	Name            string
	MeasurementUnit string
}

// IngredientImportResult 导入结果
type IngredientImportResult struct {
	Total    int   `json:"total"`
	Inserted int64 `json:"inserted"`
	Skipped  int64 `json:"skipped"`
	Batches  int   `json:"batches"`
	Queued   bool  `json:"queued"`
}

// IngredientService 食材服务
type IngredientService struct {
	repo  repository.IngredientRepository
	queue IngredientImportQueue
}

// NewIngredientService 创建食材服务
func NewIngredientService(repo repository.IngredientRepository, importQueue IngredientImportQueue) *IngredientService {
	return &IngredientService{repo: repo, queue: importQueue}
}

// List 按名称前缀搜索食材
func (s *IngredientService) List(namePrefix string) ([]models.Ingredient, error) {
	return s.repo.List(repository.IngredientListFilter{
		NamePrefix: strings.ToLower(strings.TrimSpace(namePrefix)),
		Limit:      ingredientSearchLimit,
	})
}

// Get 获取食材详情
func (s *IngredientService) Get(id uint) (*models.Ingredient, error) {
	item, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrIngredientNotFound
	}
	return item, nil
}

// Create 创建食材
func (s *IngredientService) Create(input IngredientInput) (*models.Ingredient, error) {
	item, err := normalizeIngredientInput(input)
	if err != nil {
		return nil, err
	}
	existing, err := s.repo.GetByNameUnit(item.Name, item.MeasurementUnit)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrIngredientExists
	}
	if err := s.repo.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

// Update 更新食材
func (s *IngredientService) Update(id uint, input IngredientInput) (*models.Ingredient, error) {
	current, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	item, err := normalizeIngredientInput(input)
	if err != nil {
		return nil, err
	}
	existing, err := s.repo.GetByNameUnit(item.Name, item.MeasurementUnit)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.ID != id {
		return nil, ErrIngredientExists
	}
	current.Name = item.Name
	current.MeasurementUnit = item.MeasurementUnit
	if err := s.repo.Update(current); err != nil {
		return nil, err
	}
	return current, nil
}

// Delete 删除未被菜谱引用的食材
func (s *IngredientService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	usage, err := s.repo.CountUsage(id)
	if err != nil {
		return err
	}
	if usage > 0 {
		return ErrIngredientInUse
	}
	return s.repo.Delete(id)
}

// ImportCSV 解析 CSV 并导入；队列可用时按批次入队，否则同步写入
func (s *IngredientService) ImportCSV(reader io.Reader, requestID string) (*IngredientImportResult, error) {
	if reader == nil {
		return nil, ErrImportFileRequired
	}
	rows, err := ParseIngredientCSV(reader)
	if err != nil {
		logger.Warnw("ingredient_import_parse_failed", "request_id", requestID, "error", err)
		return nil, ErrImportFailed
	}
	if s.queue != nil && s.queue.Enabled() {
		return s.enqueueRows(rows, requestID)
	}
	return s.ImportRows(rows)
}

// ImportRows 分批写入食材，冲突行跳过
func (s *IngredientService) ImportRows(rows []queue.IngredientRow) (*IngredientImportResult, error) {
	result := &IngredientImportResult{Total: len(rows)}
	for _, batch := range chunkIngredientRows(rows, constants.IngredientImportBatchMax) {
		items := make([]models.Ingredient, 0, len(batch))
		for _, row := range batch {
			items = append(items, models.Ingredient{Name: row.Name, MeasurementUnit: row.MeasurementUnit})
		}
		inserted, err := s.repo.BulkInsertIgnore(items, constants.IngredientImportBatchMax)
		if err != nil {
			logger.Errorw("ingredient_import_batch_failed", "batch", result.Batches+1, "error", err)
			return nil, ErrImportFailed
		}
		result.Inserted += inserted
		result.Batches++
	}
	result.Skipped = int64(result.Total) - result.Inserted
	metrics.RecordIngredientsImported(result.Inserted)
	logger.Infow("ingredient_import_completed",
		"total", result.Total,
		"inserted", result.Inserted,
		"skipped", result.Skipped,
		"batches", result.Batches,
	)
	return result, nil
}

func (s *IngredientService) enqueueRows(rows []queue.IngredientRow, requestID string) (*IngredientImportResult, error) {
	result := &IngredientImportResult{Total: len(rows), Queued: true}
	for _, batch := range chunkIngredientRows(rows, constants.IngredientImportBatchMax) {
		if err := s.queue.EnqueueIngredientImport(queue.IngredientImportPayload{
			Rows:      batch,
			RequestID: requestID,
		}); err != nil {
			logger.Errorw("ingredient_import_enqueue_failed", "request_id", requestID, "batch", result.Batches+1, "error", err)
			return nil, ErrImportFailed
		}
		result.Batches++
	}
	logger.Infow("ingredient_import_enqueued", "request_id", requestID, "total", result.Total, "batches", result.Batches)
	return result, nil
}

// ParseIngredientCSV 解析 name,measurement_unit 格式的 CSV，表头可选
func ParseIngredientCSV(reader io.Reader) ([]queue.IngredientRow, error) {
	csvReader := csv.NewReader(reader)
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1
	var (
		rows       []queue.IngredientRow
		headerRead bool
		nameIdx    = 0
		unitIdx    = 1
	)
	seen := make(map[queue.IngredientRow]struct{})
	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) == 0 {
			continue
		}
		if !headerRead {
			headerRead = true
			skipRow := false
			for i, col := range record {
				switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(col, "\ufeff"))) {
				case "name":
					nameIdx = i
					skipRow = true
				case "measurement_unit", "unit":
					unitIdx = i
					skipRow = true
				}
			}
			if skipRow {
				continue
			}
		}
		if nameIdx >= len(record) || unitIdx >= len(record) {
			continue
		}
		row := queue.IngredientRow{
			Name:            strings.TrimSpace(strings.TrimPrefix(record[nameIdx], "\ufeff")),
			MeasurementUnit: strings.TrimSpace(record[unitIdx]),
		}
		if row.Name == "" || row.MeasurementUnit == "" {
			continue
		}
		if _, ok := seen[row]; ok {
			continue
		}
		seen[row] = struct{}{}
		rows = append(rows, row)
	}
	return rows, nil
}

func chunkIngredientRows(rows []queue.IngredientRow, size int) [][]queue.IngredientRow {
	if size <= 0 {
		size = constants.IngredientImportBatchMax
	}
	chunks := make([][]queue.IngredientRow, 0, (len(rows)+size-1)/size)
	for start := 0; start < len(rows); start += size {
		end := start + size
		if end > len(rows) {
			end = len(rows)
		}
		chunks = append(chunks, rows[start:end])
	}
	return chunks
}

func normalizeIngredientInput(input IngredientInput) (*models.Ingredient, error) {
	name := strings.TrimSpace(input.Name)
	unit := strings.TrimSpace(input.MeasurementUnit)
	if name == "" || len([]rune(name)) > 200 {
		return nil, ErrInvalidInput
	}
	if !validation.IsMeasurementUnit(unit) {
		return nil, ErrInvalidUnit
	}
	return &models.Ingredient{Name: name, MeasurementUnit: unit}, nil
}
