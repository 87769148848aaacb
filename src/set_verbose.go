package src

import (
	"fmt"
	"io"
	"os"
	"path"
	"runtime"
	"time"

	log "github.com/sirupsen/logrus"
)

// Set_verbose points logrus at logfile (stderr when empty) and maps the
// 0..4 verbosity scale onto logrus levels. The returned file, when not nil,
// must be closed by the caller.
func Set_verbose(logfile string, verbose int, stderr io.Writer) (*os.File, error) {
	var log_output *os.File
	if logfile != "" {
		var err error
		log_output, err = os.OpenFile(logfile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			log.Errorf("Could not open log file '%s' for writing: %v", logfile, err)
			return nil, err
		}
		log.SetOutput(log_output)
	} else {
		log.SetOutput(stderr)
	}
	switch verbose {
	case 0:
		log.SetLevel(log.FatalLevel)
	case 1:
		log.SetLevel(log.ErrorLevel)
	case 2:
		log.SetLevel(log.WarnLevel)
	case 3:
		log.SetLevel(log.InfoLevel)
	case 4:
		log.SetLevel(log.DebugLevel)
	default:
		log.SetLevel(log.FatalLevel)
	}
	if log.IsLevelEnabled(log.DebugLevel) {
		log.SetReportCaller(true)
		log.SetFormatter(&log.TextFormatter{
			DisableColors:   true,
			FullTimestamp:   true,
			TimestampFormat: time.DateTime,
			CallerPrettyfier: func(frame *runtime.Frame) (function string, file string) {
				fileName := path.Base(frame.File)
				fileNameLine := fmt.Sprintf("%s:%d", fileName, frame.Line)
				return frame.Function, fileNameLine
			},
		})
	} else {
		log.SetReportCaller(false)
		log.SetFormatter(&log.TextFormatter{
			DisableColors:   true,
			FullTimestamp:   true,
			TimestampFormat: time.DateTime,
		})
	}
	return log_output, nil
}
