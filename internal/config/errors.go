package config

import "errors"

// ErrInvalidConfig is returned by [Load] when the merged configuration fails
// validation. The validation details are wrapped alongside it.
var ErrInvalidConfig = errors.New("invalid configuration")

// ErrUnsupportedDSN is returned when a DSN names a URL scheme that no bundled
// driver understands.
var ErrUnsupportedDSN = errors.New("unsupported dsn")
