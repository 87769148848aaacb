package reducer

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var users_dump = dump(
	"-- MySQL dump",
	"CREATE TABLE `users` (",
	"  `id` int",
	");",
	"INSERT INTO `users` VALUES (1),(2),(3);",
)

func TestCountRowsOverLimit(t *testing.T) {
	counter := count_rows(t, users_dump, 2)
	assert.Equal(t, Ledger{"users": 3}, counter.Ledger)
	assert.True(t, counter.Excluded.Contains("users"))
	assert.Equal(t, THRESHOLD, counter.Excluded["users"])
}

func TestCountRowsAtLimitIsKept(t *testing.T) {
	counter := count_rows(t, users_dump, 3)
	assert.Equal(t, int64(3), counter.Ledger["users"])
	assert.False(t, counter.Excluded.Contains("users"))
}

func TestCountRowsAccumulatesAcrossLines(t *testing.T) {
	content := dump(
		"CREATE TABLE `orders` (",
		");",
		insert_rows("orders", 600),
		"-- comment",
		insert_rows("orders", 600),
		"CREATE TABLE `items` (",
		");",
		insert_rows("items", 10),
	)
	counter := count_rows(t, content, 1000)
	assert.Equal(t, Ledger{"orders": 1200, "items": 10}, counter.Ledger)
	assert.Equal(t, []string{"orders"}, counter.Excluded.Tables())
}

func TestCountRowsUsesInsertTableNotContext(t *testing.T) {
	content := dump(
		"CREATE TABLE `a` (",
		");",
		"INSERT INTO `b` VALUES (1),(2);",
	)
	counter := count_rows(t, content, 1)
	assert.Equal(t, Ledger{"b": 2}, counter.Ledger)
	assert.True(t, counter.Excluded.Contains("b"))
	assert.False(t, counter.Excluded.Contains("a"))
}

func TestCountRowsIgnoresOtherLines(t *testing.T) {
	content := dump(
		"CREATE TABLE `empty` (",
		");",
		"-- INSERT INTO `empty` VALUES (1),(2);",
		"INSERT INTO empty VALUES (1),(2);",
		"",
		"/*!40000 ALTER TABLE `empty` ENABLE KEYS */;",
	)
	counter := count_rows(t, content, 0)
	assert.Empty(t, counter.Ledger)
	assert.Empty(t, counter.Excluded)
}

func TestCountRowsIsIdempotent(t *testing.T) {
	content := dump(
		"CREATE TABLE `a` (", ");", insert_rows("a", 5),
		"CREATE TABLE `b` (", ");", insert_rows("b", 2), insert_rows("b", 2),
	)
	first := count_rows(t, content, 3)
	second := count_rows(t, content, 3)
	assert.Equal(t, first.Ledger, second.Ledger)
	assert.Equal(t, first.Excluded, second.Excluded)
}

func TestCountRowsThresholdIsMonotonic(t *testing.T) {
	content := dump(
		insert_rows("a", 1),
		insert_rows("b", 4),
		insert_rows("c", 7), insert_rows("c", 3),
		insert_rows("d", 20),
	)
	var previous []string
	for max_rows := int64(25); max_rows >= 0; max_rows-- {
		excluded := count_rows(t, content, max_rows).Excluded
		for _, table := range previous {
			assert.True(t, excluded.Contains(table), "max-rows %d dropped %s from the set", max_rows, table)
		}
		for table, rows := range count_rows(t, content, max_rows).Ledger {
			assert.Equal(t, rows > max_rows, excluded.Contains(table), "table %s at max-rows %d", table, max_rows)
		}
		previous = excluded.Tables()
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, previous)
}

func TestRowCounterCandidate(t *testing.T) {
	counter := NewRowCounter(1)
	counter.Candidate = func(table string) bool { return table != "users" }
	require.NoError(t, CountRows(strings.NewReader(users_dump+insert_rows("logs", 2)+"\n"), counter, nil))
	assert.Equal(t, Ledger{"users": 3, "logs": 2}, counter.Ledger)
	assert.Equal(t, []string{"logs"}, counter.Excluded.Tables())
}

func TestRowCounterOmit(t *testing.T) {
	counter := count_rows(t, users_dump, 2)
	counter.Omit([]string{"sessions", "users"})
	assert.Equal(t, []string{"sessions", "users"}, counter.Excluded.Tables())
	assert.Equal(t, THRESHOLD, counter.Excluded["users"])
	assert.Equal(t, OMIT_LIST, counter.Excluded["sessions"])
	assert.Equal(t, "omit-list", OMIT_LIST.String())
}

type failing_reader struct{}

func (failing_reader) Read([]byte) (int, error) {
	return 0, errors.New("disk on fire")
}

func TestCountRowsReadError(t *testing.T) {
	err := CountRows(failing_reader{}, NewRowCounter(1), nil)
	assert.ErrorContains(t, err, "disk on fire")
}
