package log

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	bannerLength = 72

	prefixInfo  = "[INFO] "
	prefixWarn  = "[WARN] "
	prefixError = "[ERROR] "
	prefixSSH   = "[SSH] "
)

// Logger is the user-facing log sink. Workflows write their progress here so
// it ends up in the CI build console; it shouldn't be used for debug logging
// purposes, that is what the zap logger is for.
type Logger struct {
	out io.Writer
}

func New(out io.Writer) *Logger {
	return &Logger{out: out}
}

// Default returns a logger writing to stdout, which CI systems capture as
// the build log.
func Default() *Logger {
	return New(os.Stdout)
}

func (l *Logger) Info(message string) {
	l.println(prefixInfo + message)
}

func (l *Logger) Infof(format string, args ...any) {
	l.Info(fmt.Sprintf(format, args...))
}

func (l *Logger) Warn(message string) {
	l.println(prefixWarn + message)
}

func (l *Logger) Warnf(format string, args ...any) {
	l.Warn(fmt.Sprintf(format, args...))
}

func (l *Logger) Error(message string) {
	l.println(prefixError + message)
}

func (l *Logger) Errorf(format string, args ...any) {
	l.Error(fmt.Sprintf(format, args...))
}

func (l *Logger) SSH(message string) {
	l.println(prefixSSH + message)
}

func (l *Logger) SSHf(format string, args ...any) {
	l.SSH(fmt.Sprintf(format, args...))
}

// Banner announces a workflow run:
//
//	[INFO] ------------------------------------ ...
//	[INFO] Cleanup Channel 'jboss-dev'
//	[INFO] ------------------------------------ ...
func (l *Logger) Banner(workflow, subject string) {
	line := prefixInfo + strings.Repeat("-", bannerLength)

	title := cases.Title(language.English).String(workflow)
	l.println(line)
	if subject == "" {
		l.println(prefixInfo + title)
	} else {
		l.println(fmt.Sprintf("%s%s '%s'", prefixInfo, title, subject))
	}
	l.println(line)
}

// Raw exposes the underlying writer for output that is already formatted,
// e.g. mirrored stdout of a remote script.
func (l *Logger) Raw() io.Writer {
	return l.out
}

func (l *Logger) println(message string) {
	fmt.Fprintln(l.out, message)
}
