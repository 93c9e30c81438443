package domain

import "errors"

// Kind classifies a domain failure. The transport layer maps each kind to a
// single status code.
type Kind int

const (
	KindInternal Kind = iota
	KindInvalidInput
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindConflict
	KindInvalidToken
	KindDeliveryFailed
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid input"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not found"
	case KindConflict:
		return "conflict"
	case KindInvalidToken:
		return "invalid token"
	case KindDeliveryFailed:
		return "delivery failed"
	default:
		return "internal error"
	}
}

// Error is a tagged domain error.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return e.Msg
}

// Is lets a kind-only sentinel (empty Msg) match every error of that kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Msg == "" && t.Kind == e.Kind
}

// E builds a domain error of the given kind.
func E(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// KindOf returns the kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// Kind-only sentinels.
var (
	ErrInvalidInput    = &Error{Kind: KindInvalidInput}
	ErrUnauthenticated = &Error{Kind: KindUnauthenticated}
	ErrForbidden       = &Error{Kind: KindForbidden}
	ErrNotFound        = &Error{Kind: KindNotFound}
	ErrConflict        = &Error{Kind: KindConflict}
	ErrInvalidToken    = &Error{Kind: KindInvalidToken}
	ErrDeliveryFailed  = &Error{Kind: KindDeliveryFailed}
)

var (
	ErrInvalidCredentials = E(KindUnauthenticated, "invalid credentials")
	ErrUserNotFound       = E(KindNotFound, "user not found")
	ErrUserExists         = E(KindConflict, "user already exists")
	ErrBootcampNotFound   = E(KindNotFound, "bootcamp not found")
	ErrBootcampPublished  = E(KindConflict, "user has already published a bootcamp")
	ErrBootcampNameTaken  = E(KindConflict, "bootcamp name already exists")
	ErrLocationNotFound   = E(KindNotFound, "no location found for that address")
	ErrCourseNotFound     = E(KindNotFound, "course not found")
	ErrReviewNotFound     = E(KindNotFound, "review not found")
	ErrReviewExists       = E(KindConflict, "user has already reviewed this bootcamp")
	ErrResetInProgress    = E(KindConflict, "password reset already in progress")
	ErrEmailNotSent       = E(KindDeliveryFailed, "email could not be sent")
)
