package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors carry no infrastructure dependency.
// The text of the user-facing errors is printed verbatim by the console.

var (
	// Argument errors, reported in this order by instance-addressing verbs
	ErrClassNameMissing  = errors.New("class name missing")
	ErrClassNotFound     = errors.New("class doesn't exist")
	ErrInstanceIDMissing = errors.New("instance id missing")
	ErrInstanceNotFound  = errors.New("no instance found")
	ErrAttrNameMissing   = errors.New("attribute name missing")
	ErrValueMissing      = errors.New("value missing")

	// Input errors
	ErrMalformedQuoting = errors.New("malformed quoting")
	ErrUnknownVerb      = errors.New("unknown syntax")
	ErrLiteralSyntax    = errors.New("not a literal")

	// Entity errors
	ErrReadOnlyAttribute = errors.New("attribute is read-only")

	// Storage errors
	ErrUnknownStoredClass = errors.New("stored object references an unregistered class")
	ErrCorruptRecord      = errors.New("stored object is malformed")
	ErrStorageLocked      = errors.New("storage is in use by another shell")
)

// IsUserError reports whether err is one of the fixed-text argument errors
// that the console prints as-is.
func IsUserError(err error) bool {
	switch {
	case errors.Is(err, ErrClassNameMissing),
		errors.Is(err, ErrClassNotFound),
		errors.Is(err, ErrInstanceIDMissing),
		errors.Is(err, ErrInstanceNotFound),
		errors.Is(err, ErrAttrNameMissing),
		errors.Is(err, ErrValueMissing):
		return true
	}
	return false
}
