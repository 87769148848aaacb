package reducer

import (
	"io"
	"os"
	"regexp"

	"github.com/spf13/pflag"
)

const (
	DUMPREDUCER      = "dumpreducer"
	DEFAULT_MAX_ROWS = 1000000
	DEFAULT_VERBOSE  = 2
)

type OptionEntries struct {
	global              *globalEntries       // run internal variables
	CommonOptionEntries *CommonOptionEntries // positional arguments and run mode
	Filter              *FilterEntries       // Filter module
	Display             *DisplayEntries      // Display module
	Common              *CommonEntries       // Common module
}

type CommonOptionEntries struct {
	InputFile  string // Dump file to read, .gz and .zst are decompressed
	OutputFile string // Dump file to write, .gz and .zst are compressed
	Help       bool   // Show help options
	LogFile    string // Log file name to use, by default stderr is used
	DryRun     bool   // Count rows and report, do not write the output file
	DiskCheck  bool   // Warn when the output filesystem has less free space than the output may need
}

type FilterEntries struct {
	MaxRows            int64  // Tables with more rows than this lose their data
	TablesSkiplistFile string // File with tables whose data is always dropped
	Regex              string // Only tables matching it are dropped by row count
}

type DisplayEntries struct {
	NoColor          bool
	NoProgress       bool
	ProgressInterval int
}

type CommonEntries struct {
	Verbose        int
	Debug          bool
	ProgramVersion bool
	DefaultsFile   string
}

type globalEntries struct {
	flag_set        *pflag.FlagSet
	tables_skiplist []string
	regex           *regexp.Regexp
	styles          *DisplayStyles
	stdout          io.Writer
	stderr          io.Writer
	is_terminal     bool
	log_output      *os.File
	total_lines     int
}

func newEntries() *OptionEntries {
	o := new(OptionEntries)
	o.global = new(globalEntries)
	o.CommonOptionEntries = new(CommonOptionEntries)
	o.Filter = new(FilterEntries)
	o.Display = new(DisplayEntries)
	o.Common = new(CommonEntries)
	return o
}

// NewDefaultEntries returns entries holding the defaults the command line
// would give, writing to the process stdout and stderr.
func NewDefaultEntries() *OptionEntries {
	o := newEntries()
	before_arguments_callback(o)
	o.Filter.MaxRows = DEFAULT_MAX_ROWS
	o.Display.ProgressInterval = DEFAULT_PROGRESS_INTERVAL
	o.Common.Verbose = DEFAULT_VERBOSE
	after_arguments_callback(o)
	display_arguments_callback(o)
	return o
}

func commandEntries(o *OptionEntries, fs *pflag.FlagSet) {
	// option
	fs.BoolVarP(&o.CommonOptionEntries.Help, "help", "?", false, "Show help options")
	fs.StringVarP(&o.CommonOptionEntries.LogFile, "logfile", "L", "", "Log file name to use, by default stderr is used")
	fs.BoolVar(&o.CommonOptionEntries.DryRun, "dry-run", false, "Count rows and list the tables that would be excluded, do not write the output file")
	fs.BoolVar(&o.CommonOptionEntries.DiskCheck, "disk-check", false, "Warn when the output filesystem has less free space than the uncompressed input size")

	// Filter module
	fs.Int64VarP(&o.Filter.MaxRows, "max-rows", "m", DEFAULT_MAX_ROWS, "Maximum number of rows per table, tables above it keep only their schema")
	fs.StringVarP(&o.Filter.TablesSkiplistFile, "omit-from-file", "O", "", "File containing a list of tables whose data is always dropped, one per line")
	fs.StringVarP(&o.Filter.Regex, "regex", "x", "", "Regular expression for table names that may be dropped by row count")

	// Display module
	fs.BoolVar(&o.Display.NoColor, "no-color", false, "Do not color status messages")
	fs.BoolVar(&o.Display.NoProgress, "no-progress", false, "Do not show progress bars")
	fs.IntVar(&o.Display.ProgressInterval, "progress-interval", DEFAULT_PROGRESS_INTERVAL, "Number of lines between progress bar updates")

	// Common module
	fs.IntVarP(&o.Common.Verbose, "verbose", "v", DEFAULT_VERBOSE, "Verbosity of output, 0 = silent, 1 = errors, 2 = warnings, 3 = info, 4 = debug")
	fs.BoolVar(&o.Common.Debug, "debug", false, "Turn on debugging output (automatically sets verbosity to 4)")
	fs.BoolVarP(&o.Common.ProgramVersion, "version", "V", false, "Show the program version and exit")
	fs.StringVar(&o.Common.DefaultsFile, "defaults-file", "", "Use a specific defaults file. Default: /etc/dumpreducer.cnf")
	o.global.flag_set = fs
}
