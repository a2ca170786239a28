package types

import "errors"

// ErrorKind classifies workflow failures so callers can react without
// inspecting message text.
type ErrorKind string

const (
	ErrorKindConflict     ErrorKind = "conflict"
	ErrorKindInvalidState ErrorKind = "invalid_state"
	ErrorKindValidation   ErrorKind = "validation"
	ErrorKindNotFound     ErrorKind = "not_found"
	ErrorKindDependency   ErrorKind = "dependency"
)

// Error is the single error type crossing the workflow boundary. Kind drives
// caller behavior, Message is safe to show to the caller.
type Error struct {
	Kind    ErrorKind
	Message string
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func NewConflict(msg string) *Error {
	return &Error{Kind: ErrorKindConflict, Message: msg}
}

func NewInvalidState(msg string) *Error {
	return &Error{Kind: ErrorKindInvalidState, Message: msg}
}

func NewValidation(msg string) *Error {
	return &Error{Kind: ErrorKindValidation, Message: msg}
}

func NewNotFound(msg string) *Error {
	return &Error{Kind: ErrorKindNotFound, Message: msg}
}

// NewDependency marks a collaborator failure the caller may retry later. The
// underlying error stays attached for logging.
func NewDependency(msg string, cause error) *Error {
	return &Error{Kind: ErrorKindDependency, Message: msg, cause: cause}
}

// KindOf returns the kind of err, or empty string for untyped errors.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}

var (
	ErrOnboardingNotFound = NewNotFound("onboarding not found")
	ErrDocumentNotFound   = NewNotFound("document not found")
	ErrUserNotFound       = NewNotFound("user not found")
	ErrNoActiveOnboarding = NewNotFound("no active onboarding found")
)
