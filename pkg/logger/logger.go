package logger

import (
	"io"
	"os"
	"strings"

	"github.com/labstack/gommon/log"
)

var std = newLogger(os.Stdout)

func newLogger(out io.Writer) *log.Logger {
	l := log.New("storefront")
	l.SetOutput(out)
	l.SetHeader("${time_rfc3339} ${level} ${prefix}")
	l.SetLevel(log.INFO)
	return l
}

// Configure applies the loaded configuration. An empty level means debug in
// development and info everywhere else.
func Configure(level, environment string) {
	configure(std, level, environment)
}

func configure(l *log.Logger, level, environment string) {
	switch strings.ToLower(level) {
	case "debug":
		l.SetLevel(log.DEBUG)
	case "info":
		l.SetLevel(log.INFO)
	case "warn", "warning":
		l.SetLevel(log.WARN)
	case "error":
		l.SetLevel(log.ERROR)
	case "off":
		l.SetLevel(log.OFF)
	case "":
		if environment == "development" {
			l.SetLevel(log.DEBUG)
		} else {
			l.SetLevel(log.INFO)
		}
	}
}

// Logger exposes the underlying logger so echo can share it.
func Logger() *log.Logger {
	return std
}

func Info(format string, v ...interface{}) {
	std.Infof(format, v...)
}

func Error(format string, v ...interface{}) {
	std.Errorf(format, v...)
}

func Debug(format string, v ...interface{}) {
	std.Debugf(format, v...)
}

func Warn(format string, v ...interface{}) {
	std.Warnf(format, v...)
}

// Helper for payment logs
func LogPaymentError(orderID, action string, err error) {
	Warn("Payment log error: action=%s, orderID=%s, error=%v", action, orderID, err)
}
