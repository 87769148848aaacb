package reducer

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
	. "go-dumpreducer/src"
)

const READ_BUFFER_SIZE = 1 << 20

type FilterStats struct {
	Lines        int
	LinesWritten int
	LinesDropped int
	RowsDropped  int64
}

// FilterDump copies in to out line by line, dropping the INSERT lines that
// follow a CREATE TABLE of an excluded table. Written lines keep their exact
// bytes, terminators included.
func FilterDump(in io.Reader, out io.Writer, excluded ExclusionSet, progress *Progress) (*FilterStats, error) {
	var (
		br            = bufio.NewReaderSize(in, READ_BUFFER_SIZE)
		data          = new(bytes.Buffer)
		stats         = new(FilterStats)
		current_table string
		skip_inserts  bool
		eof           bool
		before        int
	)
	for !eof {
		before = stats.Lines
		if err := Read_data(br, data, &eof, &stats.Lines); err != nil {
			log.Errorf("error reading dump at line %d (%v)", stats.Lines+1, err)
			return stats, fmt.Errorf("read line %d: %w", stats.Lines+1, err)
		}
		if stats.Lines == before {
			continue
		}
		line := data.Bytes()
		switch {
		case isSchemaLine(line):
			var ok bool
			current_table, ok = matchSchemaLine(line)
			skip_inserts = ok && excluded.Contains(current_table)
			if !ok {
				log.Warnf("Line %d: CREATE TABLE without a quoted table name", stats.Lines)
			} else if skip_inserts {
				log.Infof("Dropping data of table %s", current_table)
			}
		case isInsertLine(line):
			if skip_inserts {
				stats.LinesDropped++
				stats.RowsDropped += countTuples(line)
				progress.Update(stats.Lines)
				continue
			}
		}
		if _, err := out.Write(line); err != nil {
			log.Errorf("error writing line %d (%v)", stats.Lines, err)
			return stats, fmt.Errorf("write line %d: %w", stats.Lines, err)
		}
		stats.LinesWritten++
		progress.Update(stats.Lines)
	}
	progress.Finish()
	return stats, nil
}

func filter_dump_to_file(input_file, output_file string, excluded ExclusionSet, progress *Progress) (*FilterStats, error) {
	in, err := M_open_reader(input_file)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", input_file, err)
	}
	defer in.Close()
	out, err := M_open_writer(output_file)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", output_file, err)
	}
	stats, err := FilterDump(in, out, excluded, progress)
	if err != nil {
		_ = out.Close()
		return stats, fmt.Errorf("filter %s into %s: %w", input_file, output_file, err)
	}
	if err = out.Close(); err != nil {
		log.Errorf("close file %s failed: %v", output_file, err)
		return stats, fmt.Errorf("write %s: %w", output_file, err)
	}
	return stats, nil
}
