package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/foodgram-next/internal/logger"

	"github.com/spf13/viper"
)

// 环境变量前缀，例如 server.port -> FG_SERVER_PORT
const envPrefix = "FG"

var defaults = map[string]interface{}{
	"server.host":             "0.0.0.0",
	"server.port":             "8080",
	"server.mode":             ModeDebug,
	"server.read_timeout":     30 * time.Second,
	"server.write_timeout":    60 * time.Second,
	"server.idle_timeout":     120 * time.Second,
	"server.shutdown_timeout": 15 * time.Second,

	"log.level":        "",
	"log.dir":          "",
	"log.filename":     "foodgram.log",
	"log.max_size_mb":  100,
	"log.max_backups":  7,
	"log.max_age_days": 30,
	"log.compress":     true,

	"database.driver":                  "sqlite",
	"database.dsn":                     "./db/foodgram.db",
	"database.log_mode":                "warn",
	"database.pool.max_open_conns":     1,
	"database.pool.max_idle_conns":     1,
	"database.pool.conn_max_lifetime":  time.Duration(0),
	"database.pool.conn_max_idle_time": time.Duration(0),

	"jwt.secret":       "change-me-in-production",
	"jwt.expire_hours": 168,

	"redis.enabled":  true,
	"redis.host":     "127.0.0.1",
	"redis.port":     6379,
	"redis.password": "",
	"redis.db":       0,
	"redis.prefix":   "fg",

	"queue.enabled":     true,
	"queue.host":        "127.0.0.1",
	"queue.port":        6379,
	"queue.password":    "",
	"queue.db":          1,
	"queue.concurrency": 5,
	"queue.queues":      map[string]int{"default": 1, "import": 2},

	"upload.dir":           "uploads",
	"upload.max_size":      5 << 20,
	"upload.allowed_types": []string{"image/jpeg", "image/png", "image/gif"},
	"upload.max_width":     4096,
	"upload.max_height":    4096,

	"cors.allowed_origins":   []string{"*"},
	"cors.allowed_methods":   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
	"cors.allowed_headers":   []string{"Content-Type", "Authorization", "Accept-Language", "Cache-Control", "X-Requested-With", "X-Request-ID", "X-Locale"},
	"cors.allow_credentials": true,
	"cors.max_age":           600,

	"security.login_rate_limit.window_seconds": 300,
	"security.login_rate_limit.max_attempts":   5,
	"security.login_rate_limit.block_seconds":  900,
	"security.password_policy.min_length":      8,
	"security.password_policy.require_upper":   false,
	"security.password_policy.require_lower":   true,
	"security.password_policy.require_number":  true,
	"security.password_policy.require_special": false,
	"security.password_policy.reject_numeric":  true,
	"security.password_policy.reject_personal": true,

	"pagination.default_limit": 6,
	"pagination.max_limit":     100,

	"recipe.min_value":             1,
	"recipe.max_ingredient_amount": 32000,
	"recipe.max_cooking_time":      120,
	"recipe.name_max_length":       200,

	"export.font_path":      "",
	"export.default_locale": "ru-RU",
}

// Load 读取配置文件并叠加环境变量。
// path 为空时依次在 . ../ ./etc 下查找 config.yml，找不到则只用默认值与环境变量。
func Load(path string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("../")
		v.AddConfigPath("./etc")
	}

	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	switch {
	case err == nil:
		logger.Infow("config_file_loaded", "file", v.ConfigFileUsed())
	case path == "" && errors.As(err, &notFound):
		logger.Warnw("config_file_not_found", "fallback", "env_or_defaults")
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 汇总所有不合法的配置项
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...interface{}) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Server.Mode == ModeDebug || c.Server.Mode == ModeRelease, "server.mode must be debug or release, got %q", c.Server.Mode)
	check(c.Server.Port != "", "server.port is required")
	switch strings.ToLower(c.Database.Driver) {
	case "sqlite", "postgres", "postgresql":
	default:
		check(false, "database.driver %q is not supported", c.Database.Driver)
	}
	check(c.Database.DSN != "", "database.dsn is required")
	check(c.JWT.ExpireHours > 0, "jwt.expire_hours must be positive")
	check(!c.Server.Release() || !c.JWT.Weak(), "jwt.secret is weak or still the default value")
	check(c.Pagination.DefaultLimit > 0, "pagination.default_limit must be positive")
	check(c.Pagination.MaxLimit >= c.Pagination.DefaultLimit, "pagination.max_limit must be >= default_limit")
	check(c.Recipe.MinValue >= 1, "recipe.min_value must be >= 1")
	check(c.Recipe.MaxIngredientAmount >= c.Recipe.MinValue, "recipe.max_ingredient_amount must be >= min_value")
	check(c.Recipe.MaxCookingTime >= c.Recipe.MinValue, "recipe.max_cooking_time must be >= min_value")
	check(c.Upload.MaxSize > 0, "upload.max_size must be positive")

	return errors.Join(errs...)
}

// Weak 长度不足 32 或仍含示例占位串
func (c JWTConfig) Weak() bool {
	if len(c.SecretKey) < 32 {
		return true
	}
	lower := strings.ToLower(c.SecretKey)
	for _, placeholder := range []string{"change-me", "change-in-production", "your-secret-key"} {
		if strings.Contains(lower, placeholder) {
			return true
		}
	}
	return false
}
