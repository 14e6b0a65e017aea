// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const maxRetryCount = 10

// validate checks that the final merged [StructuredConfig] satisfies all
// application constraints before it is used at startup. Nested groups are
// validated through their own Validate methods.
func (cfg *StructuredConfig) validate() error {
	err := validation.ValidateStruct(cfg,
		validation.Field(&cfg.Adapter),
		validation.Field(&cfg.Storage),
		validation.Field(&cfg.Workers),
		validation.Field(&cfg.Log),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

// Validate implements validation.Validatable.
func (a Adapter) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.RequestTimeout, validation.Min(time.Duration(0))),
		validation.Field(&a.RetryCount, validation.Min(0), validation.Max(maxRetryCount)),
	)
}

// Validate implements validation.Validatable.
func (s Storage) Validate() error {
	return validation.ValidateStruct(&s.DB,
		validation.Field(&s.DB.DSN, validation.By(validateDSN)),
	)
}

// Validate implements validation.Validatable.
func (w Workers) Validate() error {
	return validation.ValidateStruct(&w,
		validation.Field(&w.RefreshInterval, validation.Required, validation.Min(time.Second)),
		validation.Field(&w.RefreshMargin, validation.Min(time.Duration(0))),
	)
}

// Validate implements validation.Validatable.
func (l Log) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Level, validation.In("trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled")),
		validation.Field(&l.Format, validation.In(LogFormatConsole, LogFormatJSON)),
	)
}

// validateDSN accepts the DSNs [ClassifyDSN] accepts.
func validateDSN(value any) error {
	dsn, _ := value.(string)
	_, err := ClassifyDSN(dsn)
	return err
}
