package logger

import (
	"fmt"
	"strings"
)

// Printf adapts a Logger to the Errorf/Warnf/Debugf interface used by
// printf-style libraries such as resty.
type Printf struct {
	L *Logger
}

func (p Printf) Errorf(format string, v ...interface{}) {
	p.L.Error(trim(format, v...))
}

func (p Printf) Warnf(format string, v ...interface{}) {
	p.L.Warn(trim(format, v...))
}

func (p Printf) Debugf(format string, v ...interface{}) {
	p.L.Debug(trim(format, v...))
}

func trim(format string, v ...interface{}) string {
	return strings.TrimRight(fmt.Sprintf(format, v...), "\n")
}
