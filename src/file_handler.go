package src

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	log "github.com/sirupsen/logrus"
)

const WRITE_BUFFER_SIZE = 1 << 20

type write_fun func(p []byte) (int, error)
type read_fun func(p []byte) (int, error)
type close_fun func() error
type flush_fun func() error

type File_write struct {
	write write_fun
	close close_fun
	flush flush_fun
}

func (f *File_write) Write(p []byte) (int, error) {
	return f.write(p)
}

func (f *File_write) Flush() error {
	return f.flush()
}

func (f *File_write) Close() error {
	return f.close()
}

type File_read struct {
	read  read_fun
	close close_fun
}

func (f *File_read) Read(p []byte) (int, error) {
	return f.read(p)
}

func (f *File_read) Close() error {
	return f.close()
}

// Get_compress_method maps a dump file name to the compression applied to
// its content, or "" for plain text.
func Get_compress_method(filename string) string {
	switch {
	case strings.HasSuffix(filename, GZIP_EXTENSION):
		return GZIP
	case strings.HasSuffix(filename, ZSTD_EXTENSION):
		return ZSTD
	}
	return ""
}

func M_open_reader(filename string) (*File_read, error) {
	sql_file, err := os.Open(filename)
	if err != nil {
		log.Errorf("cannot read/open file %s, %v", filename, err)
		return nil, err
	}
	f := new(File_read)
	switch Get_compress_method(filename) {
	case GZIP:
		var out *gzip.Reader
		out, err = gzip.NewReader(sql_file)
		if err != nil {
			_ = sql_file.Close()
			return nil, fmt.Errorf("open gzip stream %s: %w", filename, err)
		}
		f.read = out.Read
		f.close = func() error {
			cerr := out.Close()
			if err := sql_file.Close(); err != nil {
				return err
			}
			return cerr
		}
	case ZSTD:
		var out *zstd.Decoder
		out, err = zstd.NewReader(sql_file)
		if err != nil {
			_ = sql_file.Close()
			return nil, fmt.Errorf("open zstd stream %s: %w", filename, err)
		}
		f.read = out.Read
		f.close = func() error {
			out.Close()
			return sql_file.Close()
		}
	default:
		f.read = sql_file.Read
		f.close = sql_file.Close
	}
	return f, nil
}

// M_open_writer creates or truncates filename. Writes are buffered, and
// compressed when the name carries a compression extension; Close flushes
// every layer before closing the file.
func M_open_writer(filename string) (*File_write, error) {
	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0660)
	if err != nil {
		log.Errorf("open file %s failed: %v", filename, err)
		return nil, err
	}
	f := new(File_write)
	switch Get_compress_method(filename) {
	case GZIP:
		var compressFile *gzip.Writer
		compressFile, err = gzip.NewWriterLevel(file, gzip.DefaultCompression)
		if err != nil {
			_ = file.Close()
			return nil, err
		}
		bw := bufio.NewWriterSize(compressFile, WRITE_BUFFER_SIZE)
		f.write = bw.Write
		f.flush = bw.Flush
		f.close = chain_close(bw.Flush, compressFile.Close, file.Close)
	case ZSTD:
		var compressEncode *zstd.Encoder
		compressEncode, err = zstd.NewWriter(file)
		if err != nil {
			_ = file.Close()
			return nil, err
		}
		bw := bufio.NewWriterSize(compressEncode, WRITE_BUFFER_SIZE)
		f.write = bw.Write
		f.flush = bw.Flush
		f.close = chain_close(bw.Flush, compressEncode.Close, file.Close)
	default:
		bw := bufio.NewWriterSize(file, WRITE_BUFFER_SIZE)
		f.write = bw.Write
		f.flush = bw.Flush
		f.close = chain_close(bw.Flush, file.Close)
	}
	return f, nil
}

// chain_close runs every step and keeps the first error, so the file handle
// is released even when a flush fails.
func chain_close(steps ...close_fun) close_fun {
	return func() error {
		var first error
		for _, step := range steps {
			if err := step(); err != nil && first == nil {
				first = err
			}
		}
		return first
	}
}
