package logger

import (
	"errors"
)

var (
	// ErrAppNameIsEmpty is returned when Log.AppName is missing from the config.
	ErrAppNameIsEmpty = errors.New("config Log.AppName can not be empty")

	// ErrServiceNameIsEmpty is returned when Log.ServiceName is missing from
	// the config. It labels the log-level metrics, so it must be set.
	ErrServiceNameIsEmpty = errors.New("config Log.ServiceName can not be empty")
)
