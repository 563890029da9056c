package tui

import "errors"

// ErrMissingReadService is returned when the read service is not provided.
var ErrMissingReadService = errors.New("tui: read service is required")
