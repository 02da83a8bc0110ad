package logger

import (
	"fmt"
	"io"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sanity-io/litter"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New returns a new well configured logger writing to out.
// When filename is not empty, entries are also written to a rotated log file.
func New(out io.Writer, debug bool, filename string) *logrus.Logger {
	formatter := new(logFormatter)

	log := logrus.New()
	log.SetOutput(out)
	log.SetFormatter(formatter)
	log.SetLevel(logrus.InfoLevel)
	if debug {
		log.SetLevel(logrus.DebugLevel)
	}

	if filename != "" {
		log.Hooks.Add(&fileHook{
			rotate: &lumberjack.Logger{
				Filename:   filename,
				MaxSize:    20, // megabytes
				MaxBackups: 2,
				MaxAge:     10, //days
			},
			formatter: formatter,
		})
	}

	return log
}

// Dump logs a pretty-printed representation of v at debug level.
func Dump(log *logrus.Logger, message string, v any) {
	if !log.IsLevelEnabled(logrus.DebugLevel) {
		return
	}
	log.Debugf("%s: %s", message, litter.Sdump(v))
}

////////////////////
//                //
// File hook      //
//                //
////////////////////

type fileHook struct {
	sync.Mutex
	rotate    io.Writer
	formatter logrus.Formatter
}

// Fire writes the formatted entry to the rotated file.
func (hook *fileHook) Fire(entry *logrus.Entry) error {
	hook.Lock()
	defer hook.Unlock()

	// use our formatter instead of entry.String()
	msg, err := hook.formatter.Format(entry)
	if err != nil {
		log.Println("failed to generate string for entry:", err)
		return err
	}

	_, err = hook.rotate.Write(msg)
	return err
}

// Levels returns configured log levels.
func (hook *fileHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

////////////////////
//                //
// Log formatter  //
//                //
////////////////////

type logFormatter struct{}

// Format implements Logrus formatter.
func (f *logFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	fields := ""
	if len(entry.Data) > 0 {
		fs := []string{}
		for k, v := range entry.Data {
			fs = append(fs, fmt.Sprintf("%s=%v", k, v))
		}
		sort.Strings(fs)
		fields = fmt.Sprintf(" (%s)", strings.Join(fs, ", "))
	}

	data := fmt.Sprintf("[%s] %+5s: %s%s\n",
		entry.Time.Format(time.RFC3339),
		strings.ToUpper(entry.Level.String()),
		entry.Message,
		fields,
	)
	return []byte(data), nil
}
