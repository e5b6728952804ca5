package log

import (
	"fmt"
	"log"
	"strings"
	"time"
)

// Info takes a pointer subLogger struct and string and writes it if the info level is enabled
func Info(sl *SubLogger, data string) {
	stage(sl, infoLevel, func() string { return data })
}

// Infoln takes a pointer subLogger struct and interface and writes it if the info level is enabled
func Infoln(sl *SubLogger, v ...any) {
	stage(sl, infoLevel, func() string { return fmt.Sprint(v...) })
}

// Infof takes a pointer subLogger struct, string and interface formats and writes it if the info level is enabled
func Infof(sl *SubLogger, data string, v ...any) {
	stage(sl, infoLevel, func() string { return fmt.Sprintf(data, v...) })
}

// Debug takes a pointer subLogger struct and string and writes it if the debug level is enabled
func Debug(sl *SubLogger, data string) {
	stage(sl, debugLevel, func() string { return data })
}

// Debugln takes a pointer subLogger struct and interface and writes it if the debug level is enabled
func Debugln(sl *SubLogger, v ...any) {
	stage(sl, debugLevel, func() string { return fmt.Sprint(v...) })
}

// Debugf takes a pointer subLogger struct, string and interface formats and writes it if the debug level is enabled
func Debugf(sl *SubLogger, data string, v ...any) {
	stage(sl, debugLevel, func() string { return fmt.Sprintf(data, v...) })
}

// Warn takes a pointer subLogger struct and string and writes it if the warn level is enabled
func Warn(sl *SubLogger, data string) {
	stage(sl, warnLevel, func() string { return data })
}

// Warnln takes a pointer subLogger struct and interface and writes it if the warn level is enabled
func Warnln(sl *SubLogger, v ...any) {
	stage(sl, warnLevel, func() string { return fmt.Sprint(v...) })
}

// Warnf takes a pointer subLogger struct, string and interface formats and writes it if the warn level is enabled
func Warnf(sl *SubLogger, data string, v ...any) {
	stage(sl, warnLevel, func() string { return fmt.Sprintf(data, v...) })
}

// Error takes a pointer subLogger struct and string and writes it if the error level is enabled
func Error(sl *SubLogger, data string) {
	stage(sl, errorLevel, func() string { return data })
}

// Errorln takes a pointer subLogger struct and interface and writes it if the error level is enabled
func Errorln(sl *SubLogger, v ...any) {
	stage(sl, errorLevel, func() string { return fmt.Sprint(v...) })
}

// Errorf takes a pointer subLogger struct, string and interface formats and writes it if the error level is enabled
func Errorf(sl *SubLogger, data string, v ...any) {
	stage(sl, errorLevel, func() string { return fmt.Sprintf(data, v...) })
}

func displayError(err error) {
	if err != nil {
		log.Printf("Logger write error: %v\n", err)
	}
}

func (l *Logger) header(lvl level) string {
	switch lvl {
	case debugLevel:
		return l.DebugHeader
	case infoLevel:
		return l.InfoHeader
	case warnLevel:
		return l.WarnHeader
	default:
		return l.ErrorHeader
	}
}

// stage formats and writes a log line. The message is only built when the
// level is enabled for the sub logger.
func stage(sl *SubLogger, lvl level, deferred func() string) {
	if sl == nil {
		return
	}
	mu.RLock()
	defer mu.RUnlock()
	if !enabled || !sl.levels.allows(lvl) || sl.output == nil {
		return
	}
	header := logger.header(lvl)
	msg := deferred()
	if customLogHook != nil && customLogHook(header, sl.name, msg) {
		return
	}
	var b strings.Builder
	b.WriteString(header)
	if logger.ShowLogSystemName {
		b.WriteString(logger.Spacer)
		b.WriteString(sl.name)
	}
	b.WriteString(logger.Spacer)
	b.WriteString(time.Now().Format(logger.TimestampFormat))
	b.WriteString(logger.Spacer)
	b.WriteString(msg)
	if !strings.HasSuffix(msg, "\n") {
		b.WriteByte('\n')
	}
	_, err := sl.output.Write([]byte(b.String()))
	displayError(err)
}
