package reducer

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"slices"

	log "github.com/sirupsen/logrus"
	. "go-dumpreducer/src"
)

type exclusion_reason int

const (
	THRESHOLD exclusion_reason = iota
	OMIT_LIST
)

func (r exclusion_reason) String() string {
	switch r {
	case THRESHOLD:
		return "threshold"
	case OMIT_LIST:
		return "omit-list"
	}
	return ""
}

// Ledger holds the running row total of every table seen in an INSERT line.
type Ledger map[string]int64

// ExclusionSet holds the tables whose INSERT lines are dropped. A table never
// leaves the set once added.
type ExclusionSet map[string]exclusion_reason

func (e ExclusionSet) Contains(table string) bool {
	_, ok := e[table]
	return ok
}

func (e ExclusionSet) Tables() []string {
	tables := make([]string, 0, len(e))
	for table := range e {
		tables = append(tables, table)
	}
	slices.Sort(tables)
	return tables
}

func (e ExclusionSet) add(table string, reason exclusion_reason) bool {
	if _, ok := e[table]; ok {
		return false
	}
	e[table] = reason
	return true
}

type RowCounter struct {
	MaxRows int64
	// Candidate limits which tables the threshold applies to, nil means all.
	Candidate func(table string) bool
	Ledger    Ledger
	Excluded  ExclusionSet
}

func NewRowCounter(max_rows int64) *RowCounter {
	return &RowCounter{
		MaxRows:  max_rows,
		Ledger:   make(Ledger),
		Excluded: make(ExclusionSet),
	}
}

// Observe accounts one dump line. Lines that are not extended INSERT
// statements leave the ledger untouched.
func (c *RowCounter) Observe(line []byte, line_number int) {
	table, rows, ok := matchInsertLine(line)
	if !ok {
		return
	}
	c.Ledger[table] += rows
	if c.Ledger[table] <= c.MaxRows {
		return
	}
	if c.Candidate != nil && !c.Candidate(table) {
		return
	}
	if c.Excluded.add(table, THRESHOLD) {
		log.Debugf("Table %s has %d rows at line %d, over the limit of %d", table, c.Ledger[table], line_number, c.MaxRows)
	}
}

// Omit excludes tables regardless of their row count.
func (c *RowCounter) Omit(tables []string) {
	for _, table := range tables {
		if c.Excluded.add(table, OMIT_LIST) {
			log.Debugf("Table %s excluded by omit list", table)
		}
	}
}

// CountRows runs the row counting pass over a whole dump stream.
func CountRows(in io.Reader, counter *RowCounter, progress *Progress) error {
	var (
		br     = bufio.NewReaderSize(in, READ_BUFFER_SIZE)
		data   = new(bytes.Buffer)
		eof    bool
		line   int
		before int
	)
	for !eof {
		before = line
		if err := Read_data(br, data, &eof, &line); err != nil {
			log.Errorf("error reading dump at line %d (%v)", line+1, err)
			return fmt.Errorf("read line %d: %w", line+1, err)
		}
		if line == before {
			continue
		}
		counter.Observe(data.Bytes(), line)
		progress.Update(line)
	}
	progress.Finish()
	return nil
}

func count_rows_from_file(filename string, counter *RowCounter, progress *Progress) error {
	f, err := M_open_reader(filename)
	if err != nil {
		return fmt.Errorf("open %s: %w", filename, err)
	}
	defer f.Close()
	if err = CountRows(f, counter, progress); err != nil {
		return fmt.Errorf("count rows in %s: %w", filename, err)
	}
	return nil
}
