package reducer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// dump joins lines with "\n" terminators.
func dump(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

// insert_rows builds an extended INSERT line with n tuples.
func insert_rows(table string, n int) string {
	var b strings.Builder
	b.WriteString("INSERT INTO `" + table + "` VALUES ")
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString("(1)")
	}
	b.WriteString(";")
	return b.String()
}

func write_file(t *testing.T, dir, name, content string) string {
	t.Helper()
	filename := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(filename, []byte(content), 0644))
	return filename
}

func count_rows(t *testing.T, content string, max_rows int64) *RowCounter {
	t.Helper()
	counter := NewRowCounter(max_rows)
	require.NoError(t, CountRows(strings.NewReader(content), counter, nil))
	return counter
}

func filter_dump(t *testing.T, content string, excluded ExclusionSet) (string, *FilterStats) {
	t.Helper()
	var out strings.Builder
	stats, err := FilterDump(strings.NewReader(content), &out, excluded, nil)
	require.NoError(t, err)
	return out.String(), stats
}
