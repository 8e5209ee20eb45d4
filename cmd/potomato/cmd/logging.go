package cmd

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

var verbosityLevels = []logrus.Level{
	logrus.ErrorLevel,
	logrus.WarnLevel,
	logrus.InfoLevel,
	logrus.DebugLevel,
}

func verbosityLevel(v int) (logrus.Level, error) {
	if v < 0 || v >= len(verbosityLevels) {
		return logrus.InfoLevel, fmt.Errorf("invalid verbosity %d, must be 0-%d", v, len(verbosityLevels)-1)
	}
	return verbosityLevels[v], nil
}

// levelFormatter writes entries as "[LEVEL] message key=value ..."
type levelFormatter struct{}

func (levelFormatter) Format(e *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer
	fmt.Fprintf(&b, "[%s] %s", strings.ToUpper(e.Level.String()), e.Message)
	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, e.Data[k])
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}

func setupLogging(log *logrus.Logger, level logrus.Level, out io.Writer) {
	log.SetOutput(out)
	log.SetLevel(level)
	log.SetFormatter(levelFormatter{})
}

// stopwatch logs how long a stage took when the returned func is called
func stopwatch(log logrus.FieldLogger, stage string) func() {
	start := time.Now()
	return func() {
		log.WithField("elapsed", time.Since(start).Round(time.Microsecond)).Debugf("%s finished", stage)
	}
}
