package repository

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// containsAny 关键字模糊匹配任一列，大小写不敏感；
// postgres 用 ILIKE，sqlite 的 LIKE 只对 ASCII 忽略大小写，统一 LOWER 后比较
func containsAny(keyword string, columns ...string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		keyword = strings.TrimSpace(keyword)
		if keyword == "" {
			return db
		}
		condition, n := likeCondition(dialectOf(db), columns)
		if n == 0 {
			return db
		}
		pattern := "%" + likeEscaper.Replace(keyword) + "%"
		args := make([]interface{}, n)
		for i := range args {
			args[i] = pattern
		}
		return db.Where(condition, args...)
	}
}

func dialectOf(db *gorm.DB) string {
	if db == nil || db.Dialector == nil {
		return "sqlite"
	}
	return strings.ToLower(db.Dialector.Name())
}

func likeCondition(dialect string, columns []string) (string, int) {
	template := `LOWER(%s) LIKE LOWER(?) ESCAPE '\'`
	if dialect == "postgres" {
		template = `%s ILIKE ? ESCAPE '\'`
	}
	parts := make([]string, 0, len(columns))
	for _, column := range columns {
		if column = strings.TrimSpace(column); column != "" {
			parts = append(parts, fmt.Sprintf(template, column))
		}
	}
	if len(parts) > 1 {
		return "(" + strings.Join(parts, " OR ") + ")", len(parts)
	}
	return strings.Join(parts, ""), len(parts)
}
