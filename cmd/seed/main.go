package main

import (
	"context"
	"errors"
	"flag"
	"os"

	"github.com/foodgram-next/internal/config"
	"github.com/foodgram-next/internal/logger"
	"github.com/foodgram-next/internal/models"
	"github.com/foodgram-next/internal/repository"
	"github.com/foodgram-next/internal/service"
)

var defaultTags = []service.TagInput{
	{Name: "Завтрак", Color: "#E26C2D", Slug: "breakfast"},
	{Name: "Обед", Color: "#49B64E", Slug: "lunch"},
	{Name: "Ужин", Color: "#8775D2", Slug: "dinner"},
}

func main() {
	var (
		ingredientsPath string
		withTags        bool
		withStaff       bool
	)
	flag.StringVar(&ingredientsPath, "ingredients", "", "食材 CSV 文件路径（name,measurement_unit）")
	flag.BoolVar(&withTags, "tags", true, "写入默认标签")
	flag.BoolVar(&withStaff, "staff", true, "初始化默认员工账号")
	configPath := flag.String("config", "", "配置文件路径")
	flag.Parse()

	stdLog := logger.StdLogger()
	cfg, err := config.Load(*configPath)
	if err != nil {
		stdLog.Fatalf("Failed to load config: %v", err)
	}
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog = logger.StdLogger()
	if err := models.InitDB(cfg.Database); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	if withStaff {
		staff, err := models.InitDefaultStaff(
			os.Getenv("FG_DEFAULT_STAFF_EMAIL"),
			os.Getenv("FG_DEFAULT_STAFF_USERNAME"),
			os.Getenv("FG_DEFAULT_STAFF_PASSWORD"),
		)
		if err != nil {
			stdLog.Printf("Failed to init staff: %v", err)
		} else {
			stdLog.Printf("Staff account: %s", staff.Email)
		}
	}

	if withTags {
		seedTags(service.NewTagService(repository.NewTagRepository(models.DB)))
	}

	if ingredientsPath != "" {
		if err := seedIngredients(ingredientsPath); err != nil {
			stdLog.Fatalf("Failed to import ingredients: %v", err)
		}
	}
}

func seedTags(tags *service.TagService) {
	ctx := context.Background()
	for _, input := range defaultTags {
		tag, err := tags.Create(ctx, input)
		switch {
		case errors.Is(err, service.ErrTagExists):
			logger.Infow("seed_tag_exists", "slug", input.Slug)
		case err != nil:
			logger.Errorw("seed_tag_failed", "slug", input.Slug, "error", err)
		default:
			logger.Infow("seed_tag_created", "tag_id", tag.ID, "slug", tag.Slug)
		}
	}
}

// seedIngredients 直接同步写库，不经过队列
func seedIngredients(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	rows, err := service.ParseIngredientCSV(file)
	if err != nil {
		return err
	}
	ingredients := service.NewIngredientService(repository.NewIngredientRepository(models.DB), nil)
	result, err := ingredients.ImportRows(rows)
	if err != nil {
		return err
	}
	logger.StdLogger().Printf("Ingredients: total=%d inserted=%d skipped=%d batches=%d",
		result.Total, result.Inserted, result.Skipped, result.Batches)
	return nil
}
