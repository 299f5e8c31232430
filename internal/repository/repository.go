package repository

import (
	"errors"

	"github.com/sirupsen/logrus"
)

var ErrNotFound = errors.New("record not found")

func newRepoLogger(logger *logrus.Logger) *logrus.Logger {
	if logger != nil {
		return logger
	}
	logger = logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return logger
}
