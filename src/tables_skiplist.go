package src

import (
	"bufio"
	"os"
	"slices"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Read_tables_skiplist loads one table name per line. Blank lines and lines
// starting with '#' are ignored, surrounding backticks are removed.
func Read_tables_skiplist(filename string) ([]string, error) {
	var err error
	var read_open *os.File
	read_open, err = os.Open(filename)
	if err != nil {
		log.Errorf("cannot read/open file %s, %v", filename, err)
		return nil, err
	}
	defer read_open.Close()
	var tables_skiplist []string
	var tablesSkipListChannel = bufio.NewScanner(read_open)
	for tablesSkipListChannel.Scan() {
		line := strings.TrimSpace(tablesSkipListChannel.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		tables_skiplist = append(tables_skiplist, strings.Trim(line, "`"))
	}
	if err = tablesSkipListChannel.Err(); err != nil {
		log.Errorf("error reading file %s (%v)", filename, err)
		return nil, err
	}
	slices.Sort(tables_skiplist)
	tables_skiplist = slices.Compact(tables_skiplist)
	log.Infof("Omit list file contains %d tables to skip", len(tables_skiplist))
	return tables_skiplist, nil
}

func Check_skiplist(tables_skiplist []string, table string) bool {
	_, found := slices.BinarySearch(tables_skiplist, table)
	return found
}
