package domain

import "errors"

var (
	// ErrNotFound is returned when the requested resource does not exist.
	// Keeping this sentinel in domain allows adapters to map it consistently to 404/NOT_FOUND.
	ErrNotFound = errors.New("resource not found")
	// ErrUnauthenticated signals that no identity could be resolved for the request.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden signals a resolved identity without mutation rights on the resource.
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
	// ErrUploadFailed is returned when the object store rejects an attachment write.
	// Callers decide whether it is fatal: Submit aborts, Update keeps the previous photo.
	ErrUploadFailed = errors.New("upload failed")
	// ErrDependency covers unreachable or misconfigured external providers.
	ErrDependency = errors.New("dependency unavailable")
)
