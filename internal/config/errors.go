package config

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig wraps every validation failure.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrLoadConfig wraps failures reading a config file or the environment.
	ErrLoadConfig = errors.New("load config failed")

	// ErrUnknownSource is returned when source is not file, http or generate.
	ErrUnknownSource = fmt.Errorf("%w: unknown source", ErrInvalidConfig)
	// ErrSourceSettings is returned when the chosen source lacks a required setting.
	ErrSourceSettings = fmt.Errorf("%w: incomplete source settings", ErrInvalidConfig)
)
