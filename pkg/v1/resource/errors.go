package resource

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownService matches any *UnknownServiceError via errors.Is.
	ErrUnknownService = errors.New("unknown service")

	// ErrUnmappedResource matches any *UnmappedResourceError via errors.Is.
	ErrUnmappedResource = errors.New("unmapped resource")

	// ErrReservedAction matches any *ReservedActionError via errors.Is.
	ErrReservedAction = errors.New("reserved member action")
)

// UnknownServiceError is returned when no plugin is registered for the service
// being built. The whole registration pass is aborted.
type UnknownServiceError struct {
	Service string
	Err     error
}

func (e *UnknownServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("no plugin registered for service %q: %v", e.Service, e.Err)
	}
	return fmt.Sprintf("no plugin registered for service %q", e.Service)
}

// Unwrap returns the underlying registry error for use with errors.Is / errors.As.
func (e *UnknownServiceError) Unwrap() error { return e.Err }

// Is reports whether target is ErrUnknownService.
func (e *UnknownServiceError) Is(target error) bool { return target == ErrUnknownService }

// UnmappedResourceError is returned when a catalog collection has no entry in the
// plural mapping. It signals a caller bug: the mapping was not built from the
// same catalog.
type UnmappedResourceError struct {
	Collection string
}

func (e *UnmappedResourceError) Error() string {
	return fmt.Sprintf("collection %q has no singular mapping", e.Collection)
}

// Is reports whether target is ErrUnmappedResource.
func (e *UnmappedResourceError) Is(target error) bool { return target == ErrUnmappedResource }

// ReservedActionError is returned when a member action reuses a CRUD action
// name, which would give two routes the same action.
type ReservedActionError struct {
	Resource string
	Action   string
}

func (e *ReservedActionError) Error() string {
	return fmt.Sprintf("member action %q of resource %q collides with a CRUD action", e.Action, e.Resource)
}

// Is reports whether target is ErrReservedAction.
func (e *ReservedActionError) Is(target error) bool { return target == ErrReservedAction }
