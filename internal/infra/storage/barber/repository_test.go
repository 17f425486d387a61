package barber

import (
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const migrationPath = "../../../../migrations/001_init.up.sql"

// tableDDL возвращает тело CREATE TABLE для указанной таблицы из миграции
func tableDDL(t *testing.T, table string) string {
	t.Helper()

	schema, err := os.ReadFile(migrationPath)
	require.NoError(t, err)

	marker := "CREATE TABLE IF NOT EXISTS " + table + " ("
	start := strings.Index(string(schema), marker)
	require.GreaterOrEqual(t, start, 0, "table %s not found in migration", table)

	rest := string(schema)[start:]
	end := strings.Index(rest, ");")
	require.GreaterOrEqual(t, end, 0)

	return rest[:end]
}

func requireColumns(t *testing.T, ddl string, columns []string) {
	t.Helper()

	for _, column := range columns {
		pattern := regexp.MustCompile(`(?m)^\s*` + column + `\s`)
		require.True(t, pattern.MatchString(ddl), "column %s is missing from migration", column)
	}
}

// Каждая колонка, которую читает GetByID, должна существовать в схеме:
// расхождение ломает все операции с мастерами на уровне Postgres
func TestMigrationCoversBarberColumns(t *testing.T) {
	requireColumns(t, tableDDL(t, "barbers"), []string{
		"id",
		"name",
		"phone",
		"email",
		"commission_rate",
		"specialties",
		"is_active",
		"is_available",
		"created_at",
	})
}

func TestMigrationCoversTimeclockAndBreaks(t *testing.T) {
	requireColumns(t, tableDDL(t, "timeclock"), []string{
		"id",
		"barber_id",
		"clock_in",
		"clock_out",
	})

	requireColumns(t, tableDDL(t, "barber_breaks"), []string{
		"id",
		"barber_id",
		"start_time",
		"end_time",
	})
}
