package inventory

import (
	"errors"
	"fmt"
	"runtime/debug"
)

// ClientLibrary names the collaborator the fetcher cannot work without.
const ClientLibrary = "gns3"

var ErrMissingDependency = errors.New("missing required library")

// DependencyError reports a missing client library together with the stack
// at the point the absence was detected.
type DependencyError struct {
	Library string
	Trace   string
}

func newDependencyError(library string) *DependencyError {
	return &DependencyError{
		Library: library,
		Trace:   string(debug.Stack()),
	}
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingDependency.Error(), e.Library)
}

func (e *DependencyError) Unwrap() error {
	return ErrMissingDependency
}
