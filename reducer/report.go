package reducer

import (
	"cmp"
	"fmt"
	"io"
	"slices"

	units "github.com/docker/go-units"
	"github.com/fatih/color"
)

type DisplayStyles struct {
	Phase   *color.Color
	Success *color.Color
	Notice  *color.Color
	Failure *color.Color
}

// NewDisplayStyles builds the console palette. Color is forced on or off per
// style so the result does not depend on color.NoColor.
func NewDisplayStyles(enabled bool) *DisplayStyles {
	style := func(attr color.Attribute) *color.Color {
		c := color.New(attr)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return &DisplayStyles{
		Phase:   style(color.FgHiCyan),
		Success: style(color.FgHiGreen),
		Notice:  style(color.FgHiYellow),
		Failure: style(color.FgHiRed),
	}
}

func color_print(w io.Writer, c *color.Color, format string, args ...any) {
	_, _ = c.Fprint(w, fmt.Sprintf(format, args...))
	fmt.Fprintln(w)
}

// size_reduction is the percentage of input bytes the output saves.
func size_reduction(input_size, output_size int64) float64 {
	if input_size <= 0 {
		return 0
	}
	return (1 - float64(output_size)/float64(input_size)) * 100
}

func print_excluded_tables(w io.Writer, styles *DisplayStyles, ledger Ledger, excluded ExclusionSet) {
	color_print(w, styles.Notice, "Excluded tables:")
	for _, table := range excluded.Tables() {
		switch excluded[table] {
		case THRESHOLD:
			fmt.Fprintf(w, "- %s (%d rows)\n", table, ledger[table])
		default:
			fmt.Fprintf(w, "- %s (%s)\n", table, excluded[table])
		}
	}
}

func print_size_reduction(w io.Writer, styles *DisplayStyles, input_size, output_size int64) {
	color_print(w, styles.Success, "Size reduction: %.2f%%", size_reduction(input_size, output_size))
	fmt.Fprintf(w, "Input: %s, output: %s\n", units.HumanSize(float64(input_size)), units.HumanSize(float64(output_size)))
}

func print_ledger(w io.Writer, ledger Ledger, excluded ExclusionSet) {
	tables := make([]string, 0, len(ledger))
	for table := range ledger {
		tables = append(tables, table)
	}
	slices.SortFunc(tables, func(a, b string) int {
		if c := cmp.Compare(ledger[b], ledger[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	for _, table := range tables {
		var mark = " "
		if excluded.Contains(table) {
			mark = "x"
		}
		fmt.Fprintf(w, "[%s] %-40s %12d\n", mark, table, ledger[table])
	}
}
