package repository

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

const likeEscapeChar = `\`

// dbDialectName 获取数据库方言名称，默认按 sqlite 处理。
func dbDialectName(db *gorm.DB) string {
	if db == nil || db.Dialector == nil {
		return "sqlite"
	}
	name := strings.ToLower(strings.TrimSpace(db.Dialector.Name()))
	if name == "" {
		return "sqlite"
	}
	return name
}

func likeOperatorByDialect(dialect string) string {
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "postgres", "postgresql":
		return "ILIKE"
	default:
		return "LIKE"
	}
}

// escapeLike 转义 LIKE 通配符，避免用户输入中的 % 与 _ 参与匹配。
func escapeLike(value string) string {
	replacer := strings.NewReplacer(
		likeEscapeChar, likeEscapeChar+likeEscapeChar,
		"%", likeEscapeChar+"%",
		"_", likeEscapeChar+"_",
	)
	return replacer.Replace(value)
}

// prefixLikeCondition 构建前缀匹配条件与参数，兼容 sqlite 与 postgres。
func prefixLikeCondition(db *gorm.DB, column, prefix string) (string, string) {
	return prefixLikeConditionByDialect(dbDialectName(db), column, prefix)
}

func prefixLikeConditionByDialect(dialect, column, prefix string) (string, string) {
	condition := fmt.Sprintf("%s %s ? ESCAPE '%s'", column, likeOperatorByDialect(dialect), likeEscapeChar)
	return condition, escapeLike(prefix) + "%"
}

// containsLikeCondition 构建包含匹配条件与参数。
func containsLikeCondition(db *gorm.DB, column, keyword string) (string, string) {
	condition := fmt.Sprintf("%s %s ? ESCAPE '%s'", column, likeOperatorByDialect(dbDialectName(db)), likeEscapeChar)
	return condition, "%" + escapeLike(keyword) + "%"
}
