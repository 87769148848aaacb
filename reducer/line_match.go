package reducer

import (
	"bytes"
	"regexp"
)

const (
	CREATE_TABLE    = "CREATE TABLE"
	INSERT_INTO     = "INSERT INTO"
	TUPLE_SEPARATOR = "),("
)

var (
	// identifiers are Unicode letters, numbers and underscore between backticks
	insert_table_re      = regexp.MustCompile("^INSERT INTO `([\\pL\\pN_]+)`")
	quoted_identifier_re = regexp.MustCompile("`([\\pL\\pN_]+)`")
	insert_table_prefix  = []byte(INSERT_INTO + " `")
	tuple_separator      = []byte(TUPLE_SEPARATOR)
)

func isSchemaLine(line []byte) bool {
	return bytes.HasPrefix(line, []byte(CREATE_TABLE))
}

func isInsertLine(line []byte) bool {
	return bytes.HasPrefix(line, []byte(INSERT_INTO))
}

// matchSchemaLine returns the first backtick quoted identifier of a
// CREATE TABLE line.
func matchSchemaLine(line []byte) (string, bool) {
	if !isSchemaLine(line) {
		return "", false
	}
	m := quoted_identifier_re.FindSubmatch(line)
	if m == nil {
		return "", false
	}
	return string(m[1]), true
}

// matchInsertLine returns the table an extended INSERT line targets and how
// many row tuples it carries.
func matchInsertLine(line []byte) (string, int64, bool) {
	if !bytes.HasPrefix(line, insert_table_prefix) {
		return "", 0, false
	}
	m := insert_table_re.FindSubmatch(line)
	if m == nil {
		return "", 0, false
	}
	return string(m[1]), countTuples(line), true
}

func countTuples(line []byte) int64 {
	return int64(bytes.Count(line, tuple_separator)) + 1
}
