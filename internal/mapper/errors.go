package mapper

// ErrorKind tags the construction failure categories so callers can branch
// on the kind without string matching.
type ErrorKind string

// Known error kinds.
const (
	KindInvalidDomain ErrorKind = "invalid_domain"
	KindInvalidConfig ErrorKind = "invalid_config"
)

// Error is the typed error returned by New for unusable construction input.
type Error struct {
	Kind    ErrorKind
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Is reports whether target carries the same kind, so errors.Is works with
// the exported sentinels below.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

// ErrInvalidDomain is returned when the seed domain does not match
// DomainPattern. The message is fixed and user-facing.
var ErrInvalidDomain = &Error{
	Kind:    KindInvalidDomain,
	Message: "URL fornecida não é válida.",
}

func errInvalidConfig(msg string) *Error {
	return &Error{Kind: KindInvalidConfig, Message: msg}
}
