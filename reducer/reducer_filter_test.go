package reducer

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterDumpDropsExcludedInserts(t *testing.T) {
	out, stats := filter_dump(t, users_dump, ExclusionSet{"users": THRESHOLD})
	assert.Equal(t, dump("-- MySQL dump", "CREATE TABLE `users` (", "  `id` int", ");"), out)
	assert.Equal(t, 5, stats.Lines)
	assert.Equal(t, 4, stats.LinesWritten)
	assert.Equal(t, 1, stats.LinesDropped)
	assert.Equal(t, int64(3), stats.RowsDropped)
}

func TestFilterDumpKeepsEverythingWithoutExclusions(t *testing.T) {
	out, stats := filter_dump(t, users_dump, ExclusionSet{})
	assert.Equal(t, users_dump, out)
	assert.Zero(t, stats.LinesDropped)
}

func TestFilterDumpEndToEndScenarios(t *testing.T) {
	tests := []struct {
		name     string
		max_rows int64
		kept     bool
	}{
		{"over limit", 2, false},
		{"at limit", 3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := count_rows(t, users_dump, tt.max_rows)
			out, _ := filter_dump(t, users_dump, counter.Excluded)
			assert.Contains(t, out, "CREATE TABLE `users` (\n")
			assert.Equal(t, tt.kept, strings.Contains(out, "INSERT INTO `users` VALUES (1),(2),(3);\n"))
		})
	}
}

func TestFilterDumpDecidesForWholeTable(t *testing.T) {
	content := dump(
		"CREATE TABLE `orders` (",
		");",
		insert_rows("orders", 600),
		"-- comment",
		insert_rows("orders", 600),
		"CREATE TABLE `items` (",
		");",
		insert_rows("items", 3),
	)
	counter := count_rows(t, content, 1000)
	out, stats := filter_dump(t, content, counter.Excluded)
	assert.Equal(t, dump(
		"CREATE TABLE `orders` (",
		");",
		"-- comment",
		"CREATE TABLE `items` (",
		");",
		insert_rows("items", 3),
	), out)
	assert.Equal(t, 2, stats.LinesDropped)
	assert.Equal(t, int64(1200), stats.RowsDropped)
}

func TestFilterDumpPreservesOtherLines(t *testing.T) {
	content := "-- header\r\n" +
		"CREATE TABLE `big` (\r\n" +
		"  `id` int\r\n" +
		") ENGINE=InnoDB;\r\n" +
		"/*!40000 ALTER TABLE `big` DISABLE KEYS */;\r\n" +
		"INSERT INTO `big` VALUES (1),(2);\r\n" +
		"\r\n" +
		"UNLOCK TABLES;\r\n" +
		"-- no trailing newline"
	out, _ := filter_dump(t, content, ExclusionSet{"big": THRESHOLD})
	assert.Equal(t, strings.Replace(content, "INSERT INTO `big` VALUES (1),(2);\r\n", "", 1), out)
}

func TestFilterDumpOutputIsOrderedSubset(t *testing.T) {
	content := dump(
		"SET NAMES utf8mb4;",
		"CREATE TABLE `a` (", ");", insert_rows("a", 3),
		"CREATE TABLE `b` (", ");", insert_rows("b", 1), "-- between", insert_rows("b", 1),
		"CREATE TABLE `c` (", ");", insert_rows("c", 9),
		"COMMIT;",
	)
	excluded := count_rows(t, content, 2).Excluded
	out, _ := filter_dump(t, content, excluded)

	in_lines := strings.SplitAfter(content, "\n")
	out_lines := strings.SplitAfter(out, "\n")
	var i int
	for _, line := range in_lines {
		table, _, is_insert := matchInsertLine([]byte(line))
		if is_insert && excluded.Contains(table) {
			continue
		}
		require.Less(t, i, len(out_lines))
		assert.Equal(t, line, out_lines[i])
		i++
	}
	assert.Equal(t, len(out_lines), i)
}

func TestFilterDumpInsertFollowsSchemaContext(t *testing.T) {
	content := dump(
		"INSERT INTO `early` VALUES (1);",
		"CREATE TABLE `big` (",
		");",
		"INSERT INTO `other` VALUES (1);",
		"INSERT INTO unquoted VALUES (1);",
		"CREATE TABLE without_quotes (",
		"INSERT INTO `big` VALUES (1);",
	)
	out, _ := filter_dump(t, content, ExclusionSet{"big": THRESHOLD, "early": THRESHOLD})
	assert.Equal(t, dump(
		"INSERT INTO `early` VALUES (1);",
		"CREATE TABLE `big` (",
		");",
		"CREATE TABLE without_quotes (",
		"INSERT INTO `big` VALUES (1);",
	), out)
}

type failing_writer struct{}

func (failing_writer) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestFilterDumpWriteError(t *testing.T) {
	_, err := FilterDump(strings.NewReader(users_dump), failing_writer{}, ExclusionSet{}, nil)
	assert.ErrorContains(t, err, "disk full")
}
