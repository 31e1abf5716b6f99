package manager

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// ConfigLoadError wraps a failure from the config provider itself.
type ConfigLoadError struct {
	Err error
}

func (e *ConfigLoadError) Error() string {
	return fmt.Sprintf("config provider failed: %s", e.Err)
}

func (e *ConfigLoadError) Unwrap() error {
	return e.Err
}

// multiError aliases multierror.Error so it can be embedded under a field
// name other than "Error" below, letting *multierror.Error's own Error()
// method promote onto ReloadFailure instead of being shadowed by the
// embedded field's name.
type multiError = multierror.Error

// ReloadFailure aggregates every FilterError, ValidationError and
// ConfigLoadError collected during one reload attempt. It is built on
// *multierror.Error so callers can use multierror.Errors(err) or range over
// .Errors directly in tests.
type ReloadFailure struct {
	*multiError
}

func newReloadFailure() *ReloadFailure {
	return &ReloadFailure{multiError: &multierror.Error{}}
}

func (f *ReloadFailure) add(errs ...error) {
	for _, e := range errs {
		if e != nil {
			f.multiError = multierror.Append(f.multiError, e)
		}
	}
}

func (f *ReloadFailure) isEmpty() bool {
	return f.multiError == nil || len(f.multiError.Errors) == 0
}

const topLevelFailureMessage = "Unable to load or apply the proxy configuration."

// topLevelError wraps a ReloadFailure with the fixed message required for
// a failed initial load.
type topLevelError struct {
	cause *ReloadFailure
}

func (e *topLevelError) Error() string {
	return topLevelFailureMessage
}

func (e *topLevelError) Unwrap() error {
	return e.cause
}
