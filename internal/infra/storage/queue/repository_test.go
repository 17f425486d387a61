package queue

import (
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-QueueService/internal/domain"
)

const migrationPath = "../../../../migrations/001_init.up.sql"

func readMigration(t *testing.T) string {
	t.Helper()

	schema, err := os.ReadFile(migrationPath)
	require.NoError(t, err)
	return string(schema)
}

// Каждая колонка из entryColumns должна существовать в схеме walkin_queue
func TestMigrationCoversEntryColumns(t *testing.T) {
	schema := readMigration(t)

	marker := "CREATE TABLE IF NOT EXISTS walkin_queue ("
	start := strings.Index(schema, marker)
	require.GreaterOrEqual(t, start, 0)

	rest := schema[start:]
	end := strings.Index(rest, ");")
	require.GreaterOrEqual(t, end, 0)
	ddl := rest[:end]

	for _, column := range entryColumns {
		pattern := regexp.MustCompile(`(?m)^\s*` + column + `\s`)
		require.True(t, pattern.MatchString(ddl), "column %s is missing from migration", column)
	}
}

// Частичный индекс по позиции должен покрывать ровно активные статусы:
// позиции осмысленны только для waiting и called
func TestPositionIndexMatchesActiveStatuses(t *testing.T) {
	schema := readMigration(t)

	idx := regexp.MustCompile(`idx_walkin_queue_position ON walkin_queue \(position\) WHERE status IN \(([^)]+)\)`)
	match := idx.FindStringSubmatch(schema)
	require.NotNil(t, match, "position index not found in migration")

	var indexed []string
	for _, part := range strings.Split(match[1], ",") {
		indexed = append(indexed, strings.Trim(strings.TrimSpace(part), "'"))
	}

	var active []string
	for _, status := range domain.ActiveStatuses {
		active = append(active, string(status))
	}

	require.ElementsMatch(t, active, indexed)
}
