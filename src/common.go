package src

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	DEFAULTS_FILE  = "/etc/dumpreducer.cnf"
	VERSION        = "0.2.0"
	EXIT_FAILURE   = 1
	EXIT_SUCCESS   = 0
	WIDTH          = 40
	ZSTD_EXTENSION = ".zst"
	GZIP_EXTENSION = ".gz"
	GZIP           = "GZIP"
	ZSTD           = "ZSTD"
)

func G_file_test(filename string) bool {
	_, err := os.Stat(filename)
	if err == nil {
		return true
	}
	return false
}

func G_get_current_dir() string {
	current_dir, _ := os.Getwd()
	return current_dir
}

// Read_data reads the next line of infile into data, line terminator
// included. The last line of a file may not have one. eof is set once the
// reader is exhausted; data is empty at that point unless an unterminated
// last line was returned together with it.
func Read_data(infile *bufio.Reader, data *bytes.Buffer, eof *bool, line *int) error {
	data.Reset()
	for {
		chunk, err := infile.ReadSlice('\n')
		data.Write(chunk)
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if errors.Is(err, io.EOF) {
			*eof = true
			if data.Len() > 0 {
				*line++
			}
			return nil
		}
		if err != nil {
			return err
		}
		*line++
		return nil
	}
}

// Count_lines counts lines the way a line iterator would: every terminator
// ends a line and trailing bytes without one are a line of their own. It also
// returns the decompressed size of the content.
func Count_lines(filename string) (int, int64, error) {
	f, err := M_open_reader(filename)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()
	var (
		buf   = make([]byte, 64*1024)
		total int
		size  int64
		last  byte = '\n'
	)
	for {
		n, rerr := f.Read(buf)
		if n > 0 {
			total += bytes.Count(buf[:n], []byte{'\n'})
			size += int64(n)
			last = buf[n-1]
		}
		if errors.Is(rerr, io.EOF) {
			break
		}
		if rerr != nil {
			return 0, 0, fmt.Errorf("read %s: %w", filename, rerr)
		}
	}
	if last != '\n' {
		total++
	}
	return total, size, nil
}

func File_size(filename string) (int64, error) {
	fi, err := os.Stat(filename)
	if err != nil {
		return 0, err
	}
	return fi.Size(), nil
}

func widthCompletion(width int, key string) string {
	if len(key) >= width {
		return key
	}
	return key + strings.Repeat(" ", width-len(key))
}

func Print_int(w io.Writer, key string, val int) {
	fmt.Fprintf(w, "%s= %d\n", widthCompletion(WIDTH, key), val)
}

func Print_int64(w io.Writer, key string, val int64) {
	fmt.Fprintf(w, "%s= %d\n", widthCompletion(WIDTH, key), val)
}

func Print_string(w io.Writer, key string, val string) {
	if val == "" {
		fmt.Fprintf(w, "# %s=\n", widthCompletion(WIDTH-2, key))
		return
	}
	fmt.Fprintf(w, "%s= %s\n", widthCompletion(WIDTH, key), val)
}

func Print_bool(w io.Writer, key string, val bool) {
	if val {
		fmt.Fprintf(w, "%s= TRUE\n", widthCompletion(WIDTH, key))
		return
	}
	fmt.Fprintf(w, "# %s= FALSE\n", widthCompletion(WIDTH-2, key))
}

func Print_list(w io.Writer, key string, val []string) {
	Print_string(w, key, strings.Join(val, ","))
}

func Print_version(w io.Writer, program string) {
	fmt.Fprintf(w, "%s v%s, MySQL dump table data reducer\n", program, VERSION)
}
