package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	InfoLogger  = logrus.New()
	WarnLogger  = logrus.New()
	ErrorLogger = logrus.New()
)

func init() {
	configure(InfoLogger, logrus.InfoLevel)
	configure(WarnLogger, logrus.WarnLevel)
	configure(ErrorLogger, logrus.ErrorLevel)
}

func configure(l *logrus.Logger, level logrus.Level) {
	l.SetLevel(level)
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetOutput(os.Stdout)
}

// EnableRotation mirrors all loggers into a rotated file in dir.
func EnableRotation(dir, service string) {
	writer := &lumberjack.Logger{
		Filename:   dir + "/" + service + ".log",
		MaxSize:    50, // megabytes
		MaxBackups: 5,
		MaxAge:     14, // days
		Compress:   true,
	}
	for _, l := range []*logrus.Logger{InfoLogger, WarnLogger, ErrorLogger} {
		l.SetOutput(io.MultiWriter(os.Stdout, writer))
	}
}
