package usecase

// Kind classifies a failure for the API boundary. Handlers map each kind to
// exactly one HTTP status, so every route reports failures the same way.
type Kind string

const (
	KindInvalid      Kind = "invalid"      // 400
	KindUnauthorized Kind = "unauthorized" // 401
	KindNotFound     Kind = "not_found"    // 404
	KindConflict     Kind = "conflict"     // 409
	KindUnavailable  Kind = "unavailable"  // 500, dependency missing or down
	KindInternal     Kind = "internal"     // 500
)

type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NewError(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// KindOf extracts the kind from an error, defaulting to internal for
// anything that did not come through this package.
func KindOf(err error) Kind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return KindInternal
}

func CodeOf(err error) string {
	if e, ok := err.(*Error); ok {
		return e.Code
	}
	return "INTERNAL"
}
