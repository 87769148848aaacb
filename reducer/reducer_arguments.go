package reducer

import (
	"errors"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	. "go-dumpreducer/src"
	"golang.org/x/term"
)

var errUsage = errors.New("usage: " + DUMPREDUCER + " [OPTION…] input_file output_file")

func before_arguments_callback(o *OptionEntries) bool {
	o.global.stdout = os.Stdout
	o.global.stderr = os.Stderr
	return true
}

func after_arguments_callback(o *OptionEntries) bool {
	if o.Common.Debug {
		o.Common.Verbose = 4
	}
	if o.Display.ProgressInterval <= 0 {
		o.Display.ProgressInterval = DEFAULT_PROGRESS_INTERVAL
	}
	return true
}

func display_arguments_callback(o *OptionEntries) bool {
	o.global.is_terminal = false
	if f, ok := o.global.stdout.(*os.File); ok {
		o.global.is_terminal = term.IsTerminal(int(f.Fd()))
	}
	o.global.styles = NewDisplayStyles(!o.Display.NoColor && o.global.is_terminal)
	return true
}

func positional_arguments_callback(o *OptionEntries, args []string) error {
	switch {
	case len(args) == 2:
		o.CommonOptionEntries.InputFile = args[0]
		o.CommonOptionEntries.OutputFile = args[1]
	case len(args) == 1 && o.CommonOptionEntries.DryRun:
		o.CommonOptionEntries.InputFile = args[0]
	default:
		return errUsage
	}
	if !G_file_test(o.CommonOptionEntries.InputFile) {
		return fmt.Errorf("input file %s does not exist", o.CommonOptionEntries.InputFile)
	}
	if o.CommonOptionEntries.OutputFile != "" && same_file(o.CommonOptionEntries.InputFile, o.CommonOptionEntries.OutputFile) {
		return fmt.Errorf("output file %s is the input file", o.CommonOptionEntries.OutputFile)
	}
	return nil
}

// same_file is true when both names resolve to the same file. The input is
// read twice, so writing over it would destroy the second pass.
func same_file(a, b string) bool {
	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}

func filter_arguments_callback(o *OptionEntries) error {
	var err error
	if o.Filter.TablesSkiplistFile != "" {
		o.global.tables_skiplist, err = Read_tables_skiplist(o.Filter.TablesSkiplistFile)
		if err != nil {
			return fmt.Errorf("omit-from-file: %w", err)
		}
	}
	if o.Filter.Regex != "" {
		o.global.regex, err = Init_regex(o.Filter.Regex)
		if err != nil {
			return fmt.Errorf("regex: %w", err)
		}
	}
	if o.Filter.MaxRows < 0 {
		log.Warnf("Negative max-rows %d drops the data of every table with inserts", o.Filter.MaxRows)
	}
	return nil
}

func print_options(o *OptionEntries) {
	var w = o.global.stdout
	Print_string(w, "logfile", o.CommonOptionEntries.LogFile)
	Print_bool(w, "dry-run", o.CommonOptionEntries.DryRun)
	Print_bool(w, "disk-check", o.CommonOptionEntries.DiskCheck)
	Print_int64(w, "max-rows", o.Filter.MaxRows)
	Print_string(w, "omit-from-file", o.Filter.TablesSkiplistFile)
	Print_list(w, "omitted-tables", o.global.tables_skiplist)
	Print_string(w, "regex", o.Filter.Regex)
	Print_bool(w, "no-color", o.Display.NoColor)
	Print_bool(w, "no-progress", o.Display.NoProgress)
	Print_int(w, "progress-interval", o.Display.ProgressInterval)
	Print_int(w, "verbose", o.Common.Verbose)
	Print_bool(w, "debug", o.Common.Debug)
	Print_string(w, "defaults-file", o.Common.DefaultsFile)
}
