// Package errors defines the error taxonomy shared by every hymod package.
//
// Each failure category has a sentinel that callers test with errors.Is. The more
// specific sentinels wrap their category, so errors.Is(ErrNoInstallRoot, ErrConfig)
// holds.
package errors

import (
	"errors"
	"fmt"
)

// Failure categories.
var (
	ErrConfig            = fmt.Errorf("configuration error")
	ErrNotFound          = fmt.Errorf("not found")
	ErrTransport         = fmt.Errorf("transport error")
	ErrParse             = fmt.Errorf("malformed response")
	ErrIO                = fmt.Errorf("filesystem error")
	ErrBusy              = fmt.Errorf("operation already in progress")
	ErrInvalidIdentifier = fmt.Errorf("invalid identifier")
)

// Refined failures.
var (
	ErrNoInstallRoot       = fmt.Errorf("%w: game folder is not set", ErrConfig)
	ErrNoDownloadURL       = fmt.Errorf("%w: version has no download url", ErrConfig)
	ErrNoCredential        = fmt.Errorf("%w: no api key configured", ErrConfig)
	ErrNotLocallyInstalled = fmt.Errorf("%w: item is not installed", ErrNotFound)
	ErrInvalidFilename     = fmt.Errorf("%w: invalid package filename", ErrParse)
	ErrNoMatchingVersion   = fmt.Errorf("%w: no version matches", ErrNotFound)
)

// Config file errors.
var (
	ErrEmptyConfigPath  = fmt.Errorf("%w: config file path cannot be empty", ErrConfig)
	ErrConfigParse      = fmt.Errorf("%w: failed to parse config", ErrConfig)
	ErrConfigValidation = fmt.Errorf("%w: invalid configuration", ErrConfig)
	ErrConfigEncode     = fmt.Errorf("%w: failed to encode config", ErrConfig)
	ErrConfigFileExists = fmt.Errorf("%w: configuration file already exists", ErrConfig)
	ErrUnknownConfigKey = fmt.Errorf("%w: unknown configuration key", ErrConfig)
)

// Hook errors.
var (
	ErrHookExecution = fmt.Errorf("error executing hook")
	ErrHookScript    = fmt.Errorf("hook script error")
	ErrHookLoad      = fmt.Errorf("failed to load hook")
)

// OpError attaches the failing operation and item id to an error.
type OpError struct {
	Op     string
	ItemID string
	Err    error
}

func (e *OpError) Error() string {
	if e.ItemID == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.ItemID, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

// Op wraps err with the operation name and item id. A nil err stays nil.
func Op(op, itemID string, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: op, ItemID: itemID, Err: err}
}

// StatusError is a non-success HTTP response.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d: %s", e.StatusCode, e.URL)
}

// Unwrap reports 404 responses as not found and everything else as a transport failure.
func (e *StatusError) Unwrap() []error {
	if e.StatusCode == 404 {
		return []error{ErrTransport, ErrNotFound}
	}
	return []error{ErrTransport}
}

// ItemID extracts the item id carried by an OpError in the chain, if any.
func ItemID(err error) string {
	var opErr *OpError
	if errors.As(err, &opErr) {
		return opErr.ItemID
	}
	return ""
}

// Is is errors.Is, re-exported so callers need only this package.
func Is(err, target error) bool { return errors.Is(err, target) }

// As is errors.As, re-exported so callers need only this package.
func As(err error, target any) bool { return errors.As(err, target) }

// Join is errors.Join, re-exported so callers need only this package.
func Join(errs ...error) error { return errors.Join(errs...) }

// Wrap wraps an error with additional context.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf wraps an error with additional formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Kind wraps err so it matches the given category as well as its own chain.
func Kind(kind, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", kind, err)
}
