package reducer

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	units "github.com/docker/go-units"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	. "go-dumpreducer/src"
)

type Result struct {
	Ledger       Ledger
	Excluded     ExclusionSet
	TotalLines   int
	LinesDropped int
	RowsDropped  int64
	InputSize    int64
	ContentSize  int64
	OutputSize   int64
}

// CommandReduce runs the command line tool on args (without the program
// name) and returns the process exit code.
func CommandReduce(args []string) int {
	var o = NewDefaultEntries()
	var fs = pflag.NewFlagSet(DUMPREDUCER, pflag.ContinueOnError)
	fs.SortFlags = false
	fs.SetOutput(io.Discard)
	commandEntries(o, fs)
	defer func() {
		if o.global.log_output != nil {
			_ = o.global.log_output.Close()
		}
	}()
	if err := o.parse_arguments(fs, args); err != nil {
		color_print(o.global.stderr, o.global.styles.Failure, "Error: %v", err)
		print_usage(o.global.stderr, fs)
		return EXIT_FAILURE
	}
	if o.CommonOptionEntries.Help {
		print_usage(o.global.stdout, fs)
		print_options(o)
		return EXIT_SUCCESS
	}
	if o.Common.ProgramVersion {
		Print_version(o.global.stdout, DUMPREDUCER)
		return EXIT_SUCCESS
	}
	if _, err := Reduce(o); err != nil {
		color_print(o.global.stderr, o.global.styles.Failure, "Error working with files: %v", err)
		return EXIT_FAILURE
	}
	return EXIT_SUCCESS
}

func print_usage(w io.Writer, fs *pflag.FlagSet) {
	fmt.Fprintf(w, "Usage:\n  %s [OPTION…] input_file output_file\n\n", DUMPREDUCER)
	fmt.Fprint(w, fs.FlagUsages())
}

func (o *OptionEntries) parse_arguments(fs *pflag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return err
	}
	if o.Common.Debug {
		o.Common.Verbose = 4
	}
	var err error
	if o.global.log_output, err = Set_verbose(o.CommonOptionEntries.LogFile, o.Common.Verbose, o.global.stderr); err != nil {
		return err
	}
	if err = Initialize_common_options(o.Common.DefaultsFile, DUMPREDUCER, fs); err != nil {
		return err
	}
	after_arguments_callback(o)
	display_arguments_callback(o)
	// the defaults file may change verbosity or the log file
	if o.global.log_output != nil {
		_ = o.global.log_output.Close()
	}
	if o.global.log_output, err = Set_verbose(o.CommonOptionEntries.LogFile, o.Common.Verbose, o.global.stderr); err != nil {
		return err
	}
	if o.CommonOptionEntries.Help || o.Common.ProgramVersion {
		return filter_arguments_callback(o)
	}
	if err = positional_arguments_callback(o, fs.Args()); err != nil {
		return err
	}
	return filter_arguments_callback(o)
}

func (o *OptionEntries) new_progress() *Progress {
	if o.Display.NoProgress {
		return nil
	}
	return NewProgress(o.global.stdout, o.global.total_lines, o.Display.ProgressInterval, o.global.is_terminal)
}

// Reduce runs both passes for the files named in o and prints the console
// report. The row counting pass always completes before the output is
// opened, since a table may cross the limit anywhere in the dump.
func Reduce(o *OptionEntries) (*Result, error) {
	var (
		w           = o.global.stdout
		styles      = o.global.styles
		input_file  = o.CommonOptionEntries.InputFile
		output_file = o.CommonOptionEntries.OutputFile
		start       = time.Now()
		err         error
	)
	color_print(w, styles.Success, "Starting to process %s", input_file)
	color_print(w, styles.Notice, "Max rows per table: %d", o.Filter.MaxRows)

	var content_size int64
	if o.global.total_lines, content_size, err = Count_lines(input_file); err != nil {
		return nil, fmt.Errorf("count lines of %s: %w", input_file, err)
	}
	log.Infof("Input %s has %d lines", input_file, o.global.total_lines)

	color_print(w, styles.Phase, "Phase 1: Counting rows in tables")
	var counter = NewRowCounter(o.Filter.MaxRows)
	// tables on the omit list are reported as omitted even when they are also
	// over the limit
	if o.global.regex != nil || len(o.global.tables_skiplist) > 0 {
		counter.Candidate = func(table string) bool {
			return !Check_skiplist(o.global.tables_skiplist, table) && Eval_regex(o.global.regex, table)
		}
	}
	if err = count_rows_from_file(input_file, counter, o.new_progress()); err != nil {
		return nil, err
	}
	counter.Omit(o.global.tables_skiplist)
	var result = &Result{
		Ledger:      counter.Ledger,
		Excluded:    counter.Excluded,
		TotalLines:  o.global.total_lines,
		ContentSize: content_size,
	}
	if result.InputSize, err = File_size(input_file); err != nil {
		return nil, err
	}
	log.Infof("Row count finished: %d tables with data, %d excluded", len(result.Ledger), len(result.Excluded))

	if o.CommonOptionEntries.DryRun {
		print_ledger(w, result.Ledger, result.Excluded)
		print_excluded_tables(w, styles, result.Ledger, result.Excluded)
		color_print(w, styles.Notice, "Dry run: no output written")
		return result, nil
	}

	if o.CommonOptionEntries.DiskCheck {
		o.check_disk_space(output_file, disk_space_needed(output_file, result))
	}

	color_print(w, styles.Phase, "Phase 2: Writing filtered dump")
	stats, err := filter_dump_to_file(input_file, output_file, result.Excluded, o.new_progress())
	if err != nil {
		return nil, err
	}
	result.LinesDropped = stats.LinesDropped
	result.RowsDropped = stats.RowsDropped
	if result.OutputSize, err = File_size(output_file); err != nil {
		return nil, err
	}
	log.Infof("Dropped %d lines holding %d rows in %s", stats.LinesDropped, stats.RowsDropped, time.Since(start).Round(time.Millisecond))

	color_print(w, styles.Success, "Filtered dump saved to %s", output_file)
	print_excluded_tables(w, styles, result.Ledger, result.Excluded)
	print_size_reduction(w, styles, result.InputSize, result.OutputSize)
	color_print(w, styles.Success, "Process completed successfully")
	return result, nil
}

// disk_space_needed estimates the output size before any line is dropped. A
// compressed output is assumed to compress like the input.
func disk_space_needed(output_file string, result *Result) int64 {
	if Get_compress_method(output_file) != "" {
		return result.InputSize
	}
	return result.ContentSize
}

func (o *OptionEntries) check_disk_space(output_file string, need int64) {
	var directory = filepath.Dir(output_file)
	ok, free, err := Is_disk_space_ok(directory, uint64(need))
	if err != nil {
		log.Warnf("Skipping disk space check for %s: %v", directory, err)
		return
	}
	if !ok {
		log.Warnf("Only %s free at %s, the output may need %s", units.HumanSize(float64(free)), directory, units.HumanSize(float64(need)))
		return
	}
	log.Debugf("%s free at %s", units.HumanSize(float64(free)), directory)
}
