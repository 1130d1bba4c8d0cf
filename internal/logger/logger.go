package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

var logger *logrus.Logger

func init() {
	logger = logrus.New()
}

// Init sets the level and formatter of the process-wide logger.
func Init(level string) (err error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return
	}
	logger.SetLevel(lvl)
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})
	return nil
}

func NewSublogger(tag string) *logrus.Entry {
	return logger.WithFields(logrus.Fields{"module": "funnel." + tag})
}
